package dto

// DatasetForm carries the text fields of the dataset upload form.
type DatasetForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"desc" binding:"required"`
}

// DatasetResponse is a dataset row prepared for the view layer.
type DatasetResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Filename    string `json:"filename"`
	Owner       string `json:"owner"`
	CreatedAt   string `json:"created_at"`
}
