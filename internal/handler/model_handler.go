package handler

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"mlhub-go/internal/dto"
	"mlhub-go/internal/middleware"
	"mlhub-go/internal/models"
	"mlhub-go/internal/service"
	"mlhub-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MLModelHandler serves the model listing, upload, edit, delete and
// download routes.
type MLModelHandler struct {
	modelService *service.MLModelService
	logger       *logrus.Logger
}

// NewMLModelHandler creates a model handler.
func NewMLModelHandler(modelService *service.MLModelService, logger *logrus.Logger) *MLModelHandler {
	return &MLModelHandler{
		modelService: modelService,
		logger:       logger,
	}
}

func modelResponse(m *models.MLModel) dto.ModelResponse {
	return dto.ModelResponse{
		ID:          m.ID,
		Name:        m.Name,
		Framework:   m.Framework,
		Description: m.Description,
		Instruction: m.Instruction,
		Filename:    m.Filename,
		Owner:       m.User.Name,
		CreatedAt:   m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// List returns all models, most recent first.
func (h *MLModelHandler) List(c *gin.Context) {
	list, err := h.modelService.List()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	resp := make([]dto.ModelResponse, 0, len(list))
	for i := range list {
		resp = append(resp, modelResponse(&list[i]))
	}
	utils.SuccessResponse(c, resp)
}

// Get returns one model.
func (h *MLModelHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no model with this id")
		return
	}

	m, err := h.modelService.Get(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, modelResponse(m))
}

// UploadPage hands the upload form to the view layer.
func (h *MLModelHandler) UploadPage(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"page": "load_model", "action": "load"})
}

// Upload creates a model from the multipart form and redirects to the
// listing.
func (h *MLModelHandler) Upload(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var form dto.ModelForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	upload, err := c.FormFile("model_file")
	if err != nil {
		utils.BadRequest(c, service.ErrMissingFile.Error())
		return
	}

	if _, err := h.modelService.Create(identity.UserID, &form, upload); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/models")
}

// EditPage hands the edit form, prefilled with the model, to the view
// layer. Only the owner may edit.
func (h *MLModelHandler) EditPage(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no model with this id")
		return
	}

	m, err := h.modelService.Get(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	if m.UserID != identity.UserID {
		utils.Forbidden(c, "you cannot edit someone else's model")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"page":   "load_model",
		"action": "edit",
		"model":  modelResponse(m),
	})
}

// Edit overwrites a model and its blob, then redirects to the listing.
func (h *MLModelHandler) Edit(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no model with this id")
		return
	}

	var form dto.ModelForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	upload, err := c.FormFile("model_file")
	if err != nil {
		utils.BadRequest(c, service.ErrMissingFile.Error())
		return
	}

	if _, err := h.modelService.Update(identity.UserID, id, &form, upload); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/models")
}

// Delete removes a model and redirects to the listing.
func (h *MLModelHandler) Delete(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no model with this id")
		return
	}

	if err := h.modelService.Delete(identity.UserID, id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/models")
}

// Download streams the stored blob under its original filename.
func (h *MLModelHandler) Download(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no model with this id")
		return
	}

	m, f, size, err := h.modelService.OpenBlob(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	defer f.Close()

	streamBlob(c, size, m.Filename, f)
}

// parseID parses a decimal route id.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

// streamBlob writes a download response with a UTF-8-safe filename.
func streamBlob(c *gin.Context, size int64, filename string, r io.Reader) {
	encoded := url.QueryEscape(filename)
	c.DataFromReader(http.StatusOK, size, "application/octet-stream", r, map[string]string{
		"Content-Disposition": "attachment; filename=\"" + filename + "\"; filename*=UTF-8''" + encoded,
	})
}
