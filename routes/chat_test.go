package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"study-spark-backend/models"
	"study-spark-backend/services"
)

type fakeGenerator struct {
	text       string
	err        error
	lastPrompt string
	lastSystem string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt, systemInstruction string) (string, error) {
	f.lastPrompt = prompt
	f.lastSystem = systemInstruction
	return f.text, f.err
}

func newChatRouter(store *services.DocumentStore, gen Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupChatRoutes(router, store, gen)
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, models.ChatResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp models.ChatResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v\nbody: %s", err, w.Body.String())
		}
	}
	return w, resp
}

func TestChatDefaults(t *testing.T) {
	gen := &fakeGenerator{text: "Answer line one.\n1. alpha step\n2. beta step"}
	router := newChatRouter(services.NewDocumentStore(), gen)

	w, resp := postChat(t, router, `{"message":"explain"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.Type != "ai" || !strings.HasPrefix(resp.ID, "ai-") {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	// stepByStepSolutions and showSources default to true
	if len(resp.Steps) != 2 {
		t.Fatalf("expected steps by default, got %v", resp.Steps)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Title != "Google Gemini" {
		t.Fatalf("expected generation-service source by default, got %v", resp.Sources)
	}
	// simplifiedAnswers defaults to false: content untouched
	if resp.Content != gen.text {
		t.Fatalf("expected full content, got %q", resp.Content)
	}
}

func TestChatSettingsDisableStepsAndSources(t *testing.T) {
	gen := &fakeGenerator{text: "1. alpha\n2. beta\n3. gamma"}
	router := newChatRouter(services.NewDocumentStore(), gen)

	_, resp := postChat(t, router,
		`{"message":"explain","settings":{"stepByStepSolutions":false,"showSources":false}}`)
	if resp.Steps != nil {
		t.Fatalf("expected no steps, got %v", resp.Steps)
	}
	if resp.Sources != nil {
		t.Fatalf("expected no sources, got %v", resp.Sources)
	}
}

func TestChatSimplifiedAnswers(t *testing.T) {
	gen := &fakeGenerator{text: "First sentence. Second sentence."}
	router := newChatRouter(services.NewDocumentStore(), gen)

	_, resp := postChat(t, router, `{"message":"explain","settings":{"simplifiedAnswers":true}}`)
	if resp.Content != "First sentence." {
		t.Fatalf("expected truncated content, got %q", resp.Content)
	}
	if !strings.Contains(gen.lastSystem, "beginner") {
		t.Fatalf("expected simplified clause in behavior profile, got %q", gen.lastSystem)
	}
}

func TestChatDocumentContext(t *testing.T) {
	store := services.NewDocumentStore()
	store.Put(models.Document{ID: "pdf-known", Name: "bio.pdf", Text: "Chlorophyll absorbs light."})

	gen := &fakeGenerator{text: "Grounded answer."}
	router := newChatRouter(store, gen)

	_, resp := postChat(t, router, `{"message":"explain","pdfIds":["pdf-known","pdf-unknown"]}`)

	// Exactly one document resolved; unknown id silently skipped.
	if !strings.Contains(gen.lastPrompt, "bio.pdf") || !strings.Contains(gen.lastPrompt, "Chlorophyll absorbs light.") {
		t.Fatalf("expected known document in prompt:\n%s", gen.lastPrompt)
	}
	if strings.Contains(gen.lastPrompt, "pdf-unknown") {
		t.Fatalf("unknown id leaked into prompt:\n%s", gen.lastPrompt)
	}
	if len(resp.Sources) != 2 || resp.Sources[0].Title != "Uploaded study materials" {
		t.Fatalf("expected uploaded-materials source first, got %v", resp.Sources)
	}
}

func TestChatEmptyPDFIDs(t *testing.T) {
	gen := &fakeGenerator{text: "Plain answer."}
	router := newChatRouter(services.NewDocumentStore(), gen)

	_, resp := postChat(t, router, `{"message":"explain","pdfIds":[]}`)
	if gen.lastPrompt != "explain" {
		t.Fatalf("expected bare question as prompt, got %q", gen.lastPrompt)
	}
	for _, src := range resp.Sources {
		if src.Title == "Uploaded study materials" {
			t.Fatalf("uploaded-materials source present without context: %v", resp.Sources)
		}
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("expected generation-service source, got %v", resp.Sources)
	}
}

func TestChatGenerationFailureInBand(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream timeout")}
	router := newChatRouter(services.NewDocumentStore(), gen)

	w, resp := postChat(t, router, `{"message":"explain"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite failure, got %d", w.Code)
	}
	if !strings.Contains(resp.Content, services.GenerationFailurePhrase) {
		t.Fatalf("expected failure phrase in content, got %q", resp.Content)
	}
	if resp.Steps != nil || resp.Sources != nil {
		t.Fatalf("expected no steps/sources on failure, got %+v", resp)
	}
}

func TestChatRejectsMissingMessage(t *testing.T) {
	router := newChatRouter(services.NewDocumentStore(), &fakeGenerator{})
	w, _ := postChat(t, router, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing message, got %d", w.Code)
	}
}
