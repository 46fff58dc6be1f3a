package routes

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"study-spark-backend/internal/config"
	"study-spark-backend/internal/logger"
	"study-spark-backend/models"
	"study-spark-backend/services"
	"study-spark-backend/utils"
)

// SetupUploadRoutes registers the PDF upload endpoint. A document only
// enters the store after extraction yields non-empty text.
func SetupUploadRoutes(router *gin.Engine, cfg *config.Config, store *services.DocumentStore) {
	api := router.Group("/api")

	api.POST("/upload", func(c *gin.Context) {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "no_file", "No PDF file provided", nil)
			return
		}
		defer file.Close()

		ct := header.Header.Get("Content-Type")
		if !strings.Contains(ct, "pdf") && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
			utils.RespondWithError(c, http.StatusBadRequest, "invalid_file_type", "Only PDF files are allowed", nil)
			return
		}

		if header.Size > cfg.MaxFileSize {
			utils.RespondWithError(c, http.StatusBadRequest, "file_too_large", "File size exceeds maximum limit", gin.H{
				"max_size": cfg.MaxFileSize,
			})
			return
		}

		// Basic PDF header validation before reading the whole file
		headerBuf := make([]byte, 5)
		if _, err := io.ReadFull(file, headerBuf); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "invalid_file", "Cannot read file header", nil)
			return
		}
		if string(headerBuf[:4]) != "%PDF" {
			utils.RespondWithError(c, http.StatusBadRequest, "invalid_pdf", "File does not appear to be a valid PDF", nil)
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			utils.RespondWithInternalError(c, "Failed to reset file for reading", nil)
			return
		}

		content, err := io.ReadAll(io.LimitReader(file, cfg.MaxFileSize))
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded file", nil)
			return
		}

		text := services.ExtractPDFText(content)
		if !services.HasExtractableText(text) {
			utils.RespondWithError(c, http.StatusBadRequest, "extraction_empty",
				"Could not extract text from the PDF", gin.H{"name": header.Filename})
			return
		}

		doc := models.Document{
			ID:           "pdf-" + uuid.NewString(),
			Name:         header.Filename,
			Text:         text,
			Size:         header.Size,
			LastModified: time.Now().Unix(),
		}
		store.Put(doc)

		logger.Info("Document uploaded",
			"id", doc.ID,
			"name", doc.Name,
			"size", doc.Size,
			"text_chars", len(doc.Text),
		)

		c.JSON(http.StatusOK, models.UploadResponse{
			ID:           doc.ID,
			Name:         doc.Name,
			Size:         doc.Size,
			LastModified: doc.LastModified,
		})
	})
}
