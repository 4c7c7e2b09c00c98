package dto

// RegisterForm is the registration form submission.
type RegisterForm struct {
	Name           string `form:"name" binding:"required"`
	Password       string `form:"password" binding:"required"`
	RepeatPassword string `form:"repeat-password" binding:"required"`
}

// LoginForm is the login form submission.
type LoginForm struct {
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember_me"`
}

// IdentityInfo is the authenticated identity exposed to the view layer.
type IdentityInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
