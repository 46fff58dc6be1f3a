package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"study-spark-backend/models"
	"study-spark-backend/services"
	"study-spark-backend/utils"
)

// SetupExportRoutes registers the conversation export endpoint. The
// transcript comes from the client; the server only renders it.
func SetupExportRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/export", func(c *gin.Context) {
		var req models.ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		if len(req.Messages) == 0 {
			utils.RespondWithBadRequest(c, "No messages to export", nil)
			return
		}

		format := req.Format
		if format == "" {
			format = services.ExportFormatText
		}

		date := time.Now().Format("2006-01-02")

		switch format {
		case services.ExportFormatText:
			content := services.ExportConversationText(req.Messages)
			c.Header("Content-Disposition",
				fmt.Sprintf("attachment; filename=study-spark-conversation-%s.txt", date))
			c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))

		case services.ExportFormatExcel:
			workbook, err := services.ExportConversationExcel(req.Messages)
			if err != nil {
				utils.RespondWithInternalError(c, "Failed to build export file", gin.H{"error": err.Error()})
				return
			}
			c.Header("Content-Disposition",
				fmt.Sprintf("attachment; filename=study-spark-conversation-%s.xlsx", date))
			c.Data(http.StatusOK,
				"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)

		default:
			utils.RespondWithBadRequest(c, "Unsupported export format", gin.H{"format": format})
		}
	})
}
