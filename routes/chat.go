package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-spark-backend/internal/logger"
	"study-spark-backend/middleware"
	"study-spark-backend/models"
	"study-spark-backend/services"
	"study-spark-backend/utils"
)

// Generator is the single-shot text generation capability the chat
// pipeline depends on.
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// SetupChatRoutes registers the chat endpoint. The handler stays thin:
// resolve documents, compose, generate, shape.
func SetupChatRoutes(router *gin.Engine, store *services.DocumentStore, generator Generator) {
	api := router.Group("/api")

	api.POST("/chat", func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		settings := req.EffectiveSettings()

		// Unknown ids contribute no context; that is not an error.
		documents := store.Resolve(req.PDFIDs)

		profile := services.BuildBehaviorProfile(settings)
		prompt := services.BuildPrompt(req.Message, documents)

		text, err := generator.Generate(c.Request.Context(), prompt, profile)
		if err != nil {
			logger.Error("Generation failed",
				"request_id", middleware.GetRequestID(c),
				"error", err,
			)
		}

		// Failure stays in-band: the endpoint always answers 200 with a
		// well-formed response body.
		resp := services.ShapeResponse(
			services.GenerationResult{Text: text, Err: err},
			settings,
			len(documents) > 0,
		)

		c.JSON(http.StatusOK, resp)
	})
}
