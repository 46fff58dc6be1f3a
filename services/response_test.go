package services

import (
	"errors"
	"strings"
	"testing"

	"study-spark-backend/models"
)

func TestShapeResponseBasics(t *testing.T) {
	resp := ShapeResponse(GenerationResult{Text: "An answer."}, models.DefaultChatSettings(), false)

	if resp.Type != "ai" {
		t.Fatalf("expected type ai, got %q", resp.Type)
	}
	if !strings.HasPrefix(resp.ID, "ai-") {
		t.Fatalf("expected ai- id prefix, got %q", resp.ID)
	}
	if resp.Timestamp != "" {
		t.Fatalf("expected empty timestamp, got %q", resp.Timestamp)
	}
	if resp.Content != "An answer." {
		t.Fatalf("unexpected content %q", resp.Content)
	}
}

func TestShapeResponseFreshIDs(t *testing.T) {
	a := ShapeResponse(GenerationResult{Text: "x"}, models.DefaultChatSettings(), false)
	b := ShapeResponse(GenerationResult{Text: "x"}, models.DefaultChatSettings(), false)
	if a.ID == b.ID {
		t.Fatalf("expected fresh id per response, got %q twice", a.ID)
	}
}

func TestShapeResponseGenerationFailure(t *testing.T) {
	settings := models.ChatSettings{StepByStepSolutions: true, ShowSources: true}
	resp := ShapeResponse(GenerationResult{Err: errors.New("quota exceeded")}, settings, true)

	if !strings.Contains(resp.Content, GenerationFailurePhrase) {
		t.Fatalf("expected failure phrase in content, got %q", resp.Content)
	}
	if !strings.Contains(resp.Content, "quota exceeded") {
		t.Fatalf("expected failure detail in content, got %q", resp.Content)
	}
	if resp.Steps != nil {
		t.Fatalf("expected no steps on failure, got %v", resp.Steps)
	}
	if resp.Sources != nil {
		t.Fatalf("expected no sources on failure, got %v", resp.Sources)
	}
}

func TestShapeResponseStepsDisabled(t *testing.T) {
	settings := models.ChatSettings{StepByStepSolutions: false, ShowSources: true}
	resp := ShapeResponse(GenerationResult{Text: "1. one\n2. two\n3. three"}, settings, false)
	if resp.Steps != nil {
		t.Fatalf("expected no steps when disabled, got %v", resp.Steps)
	}
}

func TestShapeResponseSourcesDisabled(t *testing.T) {
	settings := models.ChatSettings{StepByStepSolutions: true, ShowSources: false}
	resp := ShapeResponse(GenerationResult{Text: "answer"}, settings, true)
	if resp.Sources != nil {
		t.Fatalf("expected no sources when disabled, got %v", resp.Sources)
	}
}

func TestShapeResponseSimplifiedTruncation(t *testing.T) {
	settings := models.ChatSettings{SimplifiedAnswers: true}
	text := "The first sentence. The second sentence. The third."
	resp := ShapeResponse(GenerationResult{Text: text}, settings, false)
	if resp.Content != "The first sentence." {
		t.Fatalf("expected first-sentence truncation, got %q", resp.Content)
	}

	// No period: keep the whole text.
	resp = ShapeResponse(GenerationResult{Text: "no period here"}, settings, false)
	if resp.Content != "no period here" {
		t.Fatalf("expected whole text kept, got %q", resp.Content)
	}
}

func TestShapeResponseStepsFromFullText(t *testing.T) {
	// Simplified truncation must not starve step extraction.
	settings := models.ChatSettings{SimplifiedAnswers: true, StepByStepSolutions: true}
	text := "Summary sentence.\n1. do this\n2. then that"
	resp := ShapeResponse(GenerationResult{Text: text}, settings, false)

	if resp.Content != "Summary sentence." {
		t.Fatalf("expected truncated content, got %q", resp.Content)
	}
	if len(resp.Steps) != 2 {
		t.Fatalf("expected steps mined from full text, got %v", resp.Steps)
	}
}

func TestShapeResponseSourcesWithContext(t *testing.T) {
	settings := models.ChatSettings{ShowSources: true}

	resp := ShapeResponse(GenerationResult{Text: "answer"}, settings, true)
	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 sources with context, got %v", resp.Sources)
	}
	if resp.Sources[0].Title != "Uploaded study materials" {
		t.Fatalf("expected uploaded-materials entry first, got %v", resp.Sources[0])
	}
	if resp.Sources[len(resp.Sources)-1].Title != "Google Gemini" {
		t.Fatalf("expected generation-service entry last, got %v", resp.Sources)
	}
}

func TestShapeResponseSourcesWithoutContext(t *testing.T) {
	settings := models.ChatSettings{ShowSources: true}

	resp := ShapeResponse(GenerationResult{Text: "answer"}, settings, false)
	if len(resp.Sources) != 1 {
		t.Fatalf("expected only the generation-service entry, got %v", resp.Sources)
	}
	if resp.Sources[0].Title != "Google Gemini" {
		t.Fatalf("unexpected source %v", resp.Sources[0])
	}
}

func TestShapeResponseEmptyStepsOmitted(t *testing.T) {
	settings := models.ChatSettings{StepByStepSolutions: true}
	resp := ShapeResponse(GenerationResult{Text: "short answer"}, settings, false)
	if resp.Steps != nil {
		t.Fatalf("expected steps omitted when extraction yields nothing, got %v", resp.Steps)
	}
}
