// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/upload"
)

// UploadHandler handles admin media uploads
type UploadHandler struct {
	uploadService *upload.Service
	logger        *logrus.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(cfg *config.Config, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: upload.NewService(cfg),
		logger:        logger,
	}
}

// UploadImage handles POST /admin/uploads
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadImage(file, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Media uploads are not configured",
			})
		case errors.Is(err, upload.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": err.Error(),
			})
		default:
			h.logger.WithError(err).Error("media upload failed")
			c.JSON(http.StatusBadGateway, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"data":    result,
	})
}
