package handler

import (
	"net/http"

	"mlhub-go/internal/dto"
	"mlhub-go/internal/middleware"
	"mlhub-go/internal/models"
	"mlhub-go/internal/service"
	"mlhub-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DatasetHandler serves the dataset listing, upload, delete and
// download routes.
type DatasetHandler struct {
	datasetService *service.DatasetService
	logger         *logrus.Logger
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(datasetService *service.DatasetService, logger *logrus.Logger) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
		logger:         logger,
	}
}

func datasetResponse(d *models.Dataset) dto.DatasetResponse {
	return dto.DatasetResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Filename:    d.Filename,
		Owner:       d.User.Name,
		CreatedAt:   d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// List returns all datasets, most recent first.
func (h *DatasetHandler) List(c *gin.Context) {
	list, err := h.datasetService.List()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	resp := make([]dto.DatasetResponse, 0, len(list))
	for i := range list {
		resp = append(resp, datasetResponse(&list[i]))
	}
	utils.SuccessResponse(c, resp)
}

// Get returns one dataset.
func (h *DatasetHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no dataset with this id")
		return
	}

	d, err := h.datasetService.Get(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, datasetResponse(d))
}

// UploadPage hands the upload form to the view layer.
func (h *DatasetHandler) UploadPage(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"page": "load_dataset"})
}

// Upload creates a dataset from the multipart form and redirects to
// the listing.
func (h *DatasetHandler) Upload(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var form dto.DatasetForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err).Error())
		return
	}

	upload, err := c.FormFile("model_file")
	if err != nil {
		utils.BadRequest(c, service.ErrMissingFile.Error())
		return
	}

	if _, err := h.datasetService.Create(identity.UserID, &form, upload); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/datasets")
}

// Delete removes a dataset and redirects to the listing.
func (h *DatasetHandler) Delete(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no dataset with this id")
		return
	}

	if err := h.datasetService.Delete(identity.UserID, id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/datasets")
}

// Download streams the stored blob under its original filename.
func (h *DatasetHandler) Download(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "no dataset with this id")
		return
	}

	d, f, size, err := h.datasetService.OpenBlob(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	defer f.Close()

	streamBlob(c, size, d.Filename, f)
}
