// Package export serializes a conversation into a paginated PDF. Unlike the
// on-screen renderer it strips markdown markers instead of rendering them:
// the export is a plain-text document for print clarity.
package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/model"
)

const (
	title  = "NutriGenie Plan"
	footer = "Page %d of {nb} - NutriGenie AI Dietitian"

	pageMargin = 20.0
)

var (
	bulletMarkers  = regexp.MustCompile(`(?m)^\s*[*-]\s+`)
	headingMarkers = regexp.MustCompile(`#{1,6}\s?`)
)

// PDF renders the conversation in store order: a title block, the active
// dietary preference, a generation timestamp, then one role-labelled section
// per message. Pages break automatically and every page carries a numbered
// footer.
func PDF(messages []model.Message, preference model.DietaryPreference, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(156, 163, 175)
		pdf.CellFormat(0, 10, fmt.Sprintf(footer, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(5, 150, 105)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 8, fmt.Sprintf("Preference: %s", preference), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, "Generated on "+now.Format("Jan 2, 2006 at 3:04 PM"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	pdf.SetDrawColor(209, 213, 219)
	pdf.Line(pageMargin, pdf.GetY(), pageWidth-pageMargin, pdf.GetY())
	pdf.Ln(6)

	for _, msg := range messages {
		pdf.SetFont("Helvetica", "B", 12)
		if msg.Role == model.RoleUser {
			pdf.SetTextColor(79, 70, 229)
		} else {
			pdf.SetTextColor(5, 150, 105)
		}
		pdf.CellFormat(0, 6, msg.Role.DisplayName()+":", "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(31, 41, 55)
		pdf.MultiCell(0, 5, StripMarkdown(msg.Text), "", "L", false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// StripMarkdown removes bold markers, leading list markers and heading
// markers, and collapses doubled blank lines.
func StripMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = bulletMarkers.ReplaceAllString(text, "")
	text = headingMarkers.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\n\n", "\n")
	return text
}
