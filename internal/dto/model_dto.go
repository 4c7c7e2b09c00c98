package dto

// ModelForm carries the text fields of the model upload and edit forms.
// The file part is handled separately by the handler.
type ModelForm struct {
	Name        string `form:"name" binding:"required"`
	Framework   string `form:"framework" binding:"required"`
	Description string `form:"desc" binding:"required"`
	Instruction string `form:"instruction" binding:"required"`
}

// ModelResponse is a model row prepared for the view layer.
type ModelResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Framework   string `json:"framework"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Filename    string `json:"filename"`
	Owner       string `json:"owner"`
	CreatedAt   string `json:"created_at"`
}
