package models

// ChatSettings controls how a single response is generated and shaped.
// All fields have server-side defaults applied when the client omits them.
type ChatSettings struct {
	SimplifiedAnswers   bool `json:"simplifiedAnswers"`
	StepByStepSolutions bool `json:"stepByStepSolutions"`
	ShowSources         bool `json:"showSources"`
}

// DefaultChatSettings returns the settings used when a request carries none.
func DefaultChatSettings() ChatSettings {
	return ChatSettings{
		SimplifiedAnswers:   false,
		StepByStepSolutions: true,
		ShowSources:         true,
	}
}

// ChatSettingsInput is the wire form of settings. Pointer fields distinguish
// "absent" from "false" so defaults only apply to omitted fields.
type ChatSettingsInput struct {
	SimplifiedAnswers   *bool `json:"simplifiedAnswers,omitempty"`
	StepByStepSolutions *bool `json:"stepByStepSolutions,omitempty"`
	ShowSources         *bool `json:"showSources,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message  string             `json:"message" binding:"required,min=1,max=2000"`
	Settings *ChatSettingsInput `json:"settings,omitempty"`
	PDFIDs   []string           `json:"pdfIds,omitempty"`
}

// EffectiveSettings merges the request's settings over the defaults.
func (r *ChatRequest) EffectiveSettings() ChatSettings {
	s := DefaultChatSettings()
	if r.Settings == nil {
		return s
	}
	if r.Settings.SimplifiedAnswers != nil {
		s.SimplifiedAnswers = *r.Settings.SimplifiedAnswers
	}
	if r.Settings.StepByStepSolutions != nil {
		s.StepByStepSolutions = *r.Settings.StepByStepSolutions
	}
	if r.Settings.ShowSources != nil {
		s.ShowSources = *r.Settings.ShowSources
	}
	return s
}

// Source is a citation attached to a response.
type Source struct {
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// ChatResponse is the body of a chat reply. Type is always "ai"; Timestamp
// is intentionally left empty (the frontend stamps messages on receipt).
type ChatResponse struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
	Steps     []string `json:"steps,omitempty"`
	Sources   []Source `json:"sources,omitempty"`
}
