package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"study-spark-backend/models"
)

// GenerationResult is the tagged outcome of a generation call. Handlers
// keep success and failure distinguishable until the final shaping step,
// where a failure is folded into response content for the client.
type GenerationResult struct {
	Text string
	Err  error
}

// GenerationFailurePhrase opens the in-band error content. The chat
// endpoint never surfaces generation failures as transport errors.
const GenerationFailurePhrase = "Sorry, I ran into a problem generating a response"

var (
	uploadedMaterialsSource = models.Source{
		Title:       "Uploaded study materials",
		Description: "Content extracted from your uploaded materials",
	}
	geminiSource = models.Source{
		Title:       "Google Gemini",
		URL:         "https://gemini.google.com",
		Description: "Response generated with Google Gemini",
	}
)

// ShapeResponse assembles the final ChatResponse from a generation result,
// the effective settings, and whether document context fed the prompt.
// It is total: any input yields a well-formed response.
func ShapeResponse(result GenerationResult, settings models.ChatSettings, contextUsed bool) models.ChatResponse {
	resp := models.ChatResponse{
		ID:   "ai-" + uuid.NewString(),
		Type: "ai",
		// Timestamp stays empty: the frontend stamps messages on receipt.
	}

	if result.Err != nil {
		resp.Content = fmt.Sprintf("%s: %v. Please try again in a moment.", GenerationFailurePhrase, result.Err)
		return resp
	}

	resp.Content = result.Text
	if settings.SimplifiedAnswers {
		resp.Content = firstSentence(result.Text)
	}

	// Steps are mined from the full generated text, not the truncated form.
	if settings.StepByStepSolutions {
		if steps := ExtractSteps(result.Text); len(steps) > 0 {
			resp.Steps = steps
		}
	}

	if settings.ShowSources {
		var sources []models.Source
		if contextUsed {
			sources = append(sources, uploadedMaterialsSource)
		}
		sources = append(sources, geminiSource)
		resp.Sources = sources
	}

	return resp
}

// firstSentence cuts text at the first period, keeping it. Text without a
// period comes back whole.
func firstSentence(text string) string {
	if i := strings.Index(text, "."); i >= 0 {
		return text[:i+1]
	}
	return text
}
