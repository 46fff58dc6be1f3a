package services

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"study-spark-backend/internal/logger"
)

// ExtractPDFText extracts plain text from PDF bytes, concatenating pages
// in document order with a separating line break. Decode faults are never
// propagated: a whole-document failure yields an empty string, and a page
// that fails to decode is skipped while the remaining pages still count
// as a successful (partial) extraction. Callers reject uploads whose
// result is whitespace-only.
func ExtractPDFText(content []byte) string {
	defer func() {
		// The pdf library panics on some malformed xref tables; treat
		// that the same as any other decode fault.
		if r := recover(); r != nil {
			logger.Warn("PDF extraction panic recovered", "cause", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		logger.Warn("Failed to create PDF reader", "error", err)
		return ""
	}

	var textBuilder strings.Builder
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Warn("Failed to extract text from page", "page", i, "error", err)
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(text)
	}

	return textBuilder.String()
}

// HasExtractableText reports whether extracted text contains anything
// beyond whitespace.
func HasExtractableText(text string) bool {
	return strings.TrimSpace(text) != ""
}
