package handler

import (
	"errors"

	"mlhub-go/internal/service"
	"mlhub-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// handleServiceError maps service errors onto HTTP responses. Validation
// and ownership errors carry their message to the user; anything else is
// a persistence failure whose detail goes to the log only.
func handleServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNameTaken):
		utils.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNoSuchAccount), errors.Is(err, service.ErrWrongCredentials):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrPasswordMismatch), errors.Is(err, service.ErrMissingFile):
		utils.BadRequest(c, err.Error())
	default:
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		utils.InternalError(c, "something went wrong, try again later")
	}
}
