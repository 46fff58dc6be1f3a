package models

// Document is one uploaded study material with its extracted text.
// Documents are immutable after creation and live for the process lifetime.
type Document struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Text         string `json:"-"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"lastModified"`
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"lastModified"`
}

// ExportMessage is one transcript entry in an export request. The frontend
// sends back the full conversation it holds, including user messages.
type ExportMessage struct {
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp,omitempty"`
	Steps     []string `json:"steps,omitempty"`
	Sources   []Source `json:"sources,omitempty"`
}

// ExportRequest is the body of POST /api/export.
type ExportRequest struct {
	Messages []ExportMessage `json:"messages" binding:"required"`
	Format   string          `json:"format,omitempty"` // "text" (default) or "excel"
}
