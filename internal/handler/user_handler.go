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

// UserHandler serves the public profile page, profile editing and
// account deletion.
type UserHandler struct {
	userService *service.UserService
	sessions    *service.SessionManager
	logger      *logrus.Logger
}

// NewUserHandler creates a user handler.
func NewUserHandler(userService *service.UserService, sessions *service.SessionManager, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Get returns a user profile with everything they own.
func (h *UserHandler) Get(c *gin.Context) {
	user, owned, datasets, err := h.userService.GetProfile(c.Param("name"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	resp := dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Description: user.Description,
		CreatedAt:   user.CreatedAt.Format("2006-01-02 15:04:05"),
		Models:      make([]dto.ModelResponse, 0, len(owned)),
		Datasets:    make([]dto.DatasetResponse, 0, len(datasets)),
	}
	for i := range owned {
		m := modelResponse(&owned[i])
		m.Owner = user.Name
		resp.Models = append(resp.Models, m)
	}
	for i := range datasets {
		d := datasetResponse(&datasets[i])
		d.Owner = user.Name
		resp.Datasets = append(resp.Datasets, d)
	}

	utils.SuccessResponse(c, resp)
}

// EditProfilePage hands the edit-profile form to the view layer.
func (h *UserHandler) EditProfilePage(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	utils.SuccessResponse(c, gin.H{
		"page": "edit_profile",
		"user": dto.IdentityInfo{ID: identity.UserID, Name: identity.Name},
	})
}

// EditProfile renames the current identity and updates its
// description, then redirects to the profile under the new name.
func (h *UserHandler) EditProfile(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var form dto.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	user, err := h.userService.UpdateProfile(identity.UserID, &form)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/user/"+user.Name)
}

// DeleteAccount removes the current identity, its records and blobs,
// ends the session, and redirects home.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	if err := h.userService.DeleteAccount(identity.UserID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.sessions.Logout(c.Request.Context(), cookie); err != nil {
			h.logger.WithError(err).Warn("revoking session failed")
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	c.Redirect(http.StatusFound, "/")
}
