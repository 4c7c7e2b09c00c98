package dto

// ProfileForm is the edit-profile form submission.
type ProfileForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"desc"`
}

// UserResponse is a user profile prepared for the view layer, together
// with the records the user owns.
type UserResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
	Models      []ModelResponse   `json:"models"`
	Datasets    []DatasetResponse `json:"datasets"`
}
