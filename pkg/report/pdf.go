package report

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// PDFConfig holds layout options for WritePDF
type PDFConfig struct {
	Font     string  // Core font name
	Size     float64 // Body font size in points
	KeyWidth float64 // Width of the key column in mm
}

// DefaultPDFConfig uses Helvetica like the OCR layers
var DefaultPDFConfig = PDFConfig{
	Font:     "Helvetica",
	Size:     10,
	KeyWidth: 60,
}

// WritePDF renders one A4 page per label with its fields as a two-column table
// followed by the raw lines.
func WritePDF(w io.Writer, summaries []Summary, cfg PDFConfig) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Label report", true)
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	valueWidth := pageWidth - left - right - cfg.KeyWidth
	lineHeight := cfg.Size * 0.5

	for _, s := range summaries {
		pdf.AddPage()

		pdf.SetFont(cfg.Font, "B", cfg.Size+4)
		pdf.CellFormat(0, lineHeight*2, latin1(s.ImageKey), "", 1, "L", false, 0, "")
		pdf.SetFont(cfg.Font, "", cfg.Size-2)
		pdf.CellFormat(0, lineHeight, latin1(fmt.Sprintf("Analyzed %s, %d blocks", s.AnalyzedAt, s.BlocksCount)), "", 1, "L", false, 0, "")
		pdf.Ln(lineHeight)

		pdf.SetFont(cfg.Font, "B", cfg.Size)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(cfg.KeyWidth, lineHeight*1.5, "Key", "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueWidth, lineHeight*1.5, "Value", "1", 1, "L", true, 0, "")

		pdf.SetFont(cfg.Font, "", cfg.Size)
		if s.KeyValues != nil {
			for _, k := range s.KeyValues.Keys() {
				v, _ := s.KeyValues.Get(k)
				pdf.CellFormat(cfg.KeyWidth, lineHeight*1.5, latin1(k), "1", 0, "L", false, 0, "")
				pdf.CellFormat(valueWidth, lineHeight*1.5, latin1(v), "1", 1, "L", false, 0, "")
			}
		}

		if len(s.AllText) > 0 {
			pdf.Ln(lineHeight)
			pdf.SetFont(cfg.Font, "B", cfg.Size)
			pdf.CellFormat(0, lineHeight*1.5, "Text", "", 1, "L", false, 0, "")
			pdf.SetFont(cfg.Font, "", cfg.Size)
			pdf.MultiCell(0, lineHeight, latin1(strings.Join(s.AllText, "\n")), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

// latin1 converts text to ISO-8859-1 for the core PDF fonts, replacing runes it cannot encode
func latin1(s string) string {
	enc := charmap.ISO8859_1.NewEncoder()
	if out, err := enc.String(s); err == nil {
		return out
	}

	var b strings.Builder
	for _, r := range s {
		if e, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b.WriteByte(e)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
