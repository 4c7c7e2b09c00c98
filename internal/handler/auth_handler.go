package handler

import (
	"net/http"

	"mlhub-go/internal/dto"
	"mlhub-go/internal/middleware"
	"mlhub-go/internal/service"
	"mlhub-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *service.SessionManager
	logger      *logrus.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(authService *service.AuthService, sessions *service.SessionManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// RegistrationPage hands the registration form to the view layer.
func (h *AuthHandler) RegistrationPage(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"page": "registration"})
}

// Register creates an account and redirects home.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	if _, err := h.authService.Register(&form); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// LoginPage hands the login form to the view layer.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"page": "login",
		"next": c.Query("next"),
	})
}

// Login authenticates, sets the session cookie, and redirects back to
// the originally requested path when one was preserved.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	user, err := h.authService.Authenticate(&form)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	cookie, maxAge, err := h.sessions.Login(c.Request.Context(), user, form.Remember)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.SetCookie(middleware.SessionCookieName, cookie, maxAge, "/", "", false, true)

	next := c.Query("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.sessions.Logout(c.Request.Context(), cookie); err != nil {
			h.logger.WithError(err).Warn("revoking session failed")
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
