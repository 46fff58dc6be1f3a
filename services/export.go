package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"study-spark-backend/internal/logger"
	"study-spark-backend/models"
)

// Export formats accepted by the export endpoint.
const (
	ExportFormatText  = "text"
	ExportFormatExcel = "excel"
)

// ExportConversationText renders a conversation transcript as plain text,
// mirroring the layout the frontend produces for local downloads.
func ExportConversationText(messages []models.ExportMessage) string {
	var b strings.Builder
	b.WriteString("Study Spark Genie - Conversation Export\n\n")
	b.WriteString(fmt.Sprintf("Date: %s\n\n", time.Now().Format("2006-01-02")))

	for _, msg := range messages {
		sender := "Study Spark"
		if msg.Type == "user" {
			sender = "You"
		}

		if msg.Timestamp != "" {
			b.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n", msg.Timestamp, sender, msg.Content))
		} else {
			b.WriteString(fmt.Sprintf("%s:\n%s\n\n", sender, msg.Content))
		}

		if len(msg.Steps) > 0 {
			b.WriteString("Step-by-step Solution:\n")
			for i, step := range msg.Steps {
				b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
			}
			b.WriteString("\n")
		}

		if len(msg.Sources) > 0 {
			b.WriteString("Sources:\n")
			for i, source := range msg.Sources {
				b.WriteString(fmt.Sprintf("%d. %s", i+1, source.Title))
				if source.URL != "" {
					b.WriteString(fmt.Sprintf(" (%s)", source.URL))
				}
				b.WriteString("\n")
				if source.Description != "" {
					b.WriteString(fmt.Sprintf("   %s\n", source.Description))
				}
			}
			b.WriteString("\n")
		}

		b.WriteString("-------------------------------------------\n\n")
	}

	return b.String()
}

// ExportConversationExcel renders a conversation transcript as an Excel
// workbook, one message per row.
func ExportConversationExcel(messages []models.ExportMessage) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Error closing Excel file", "error", err)
		}
	}()

	sheetName := "Conversation"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Sender", "Message", "Timestamp", "Steps", "Sources"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIdx, msg := range messages {
		row := rowIdx + 2 // Start from row 2 (after headers)

		sender := "Study Spark"
		if msg.Type == "user" {
			sender = "You"
		}

		var sourceTitles []string
		for _, source := range msg.Sources {
			sourceTitles = append(sourceTitles, source.Title)
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sender)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), msg.Content)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), msg.Timestamp)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), strings.Join(msg.Steps, "\n"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), strings.Join(sourceTitles, "; "))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
