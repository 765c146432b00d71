// Package hocr reads hOCR documents, the HTML-based format produced by Tesseract and other OCR
// engines, and converts their lines and words into blocks.
//
// hOCR carries no form structure, so its blocks only feed line extraction. Each ocr_line (and
// the other line-level classes) becomes a LINE block whose CHILD edges point at its ocrx_word
// WORD blocks.
//
// Main Functions:
//
// - Parse: Parses hOCR HTML into pages, lines and words
// - Blocks: Converts a parsed document into blocks
package hocr

// Document is a parsed hOCR document
type Document struct {
	Title string
	Pages []Page
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID    string
	BBox  BoundingBox
	Lines []Line
}

// Line is one line of text
// Corresponds to hOCR elements with class 'ocr_line', 'ocr_header', 'ocr_caption' or 'ocr_textfloat'
type Line struct {
	ID    string
	BBox  BoundingBox
	Words []Word
}

// Word is a recognized word
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // x_wconf, 0-100
}

// BoundingBox is an hOCR 'bbox' property
type BoundingBox struct {
	X1, Y1, X2, Y2 float64
}
