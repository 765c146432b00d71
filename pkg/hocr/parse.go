package hocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

var lineClasses = []string{"ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"}

// headSniffLen bounds the charset search in documents without a head or body tag
const headSniffLen = 1024

// Parse converts raw hOCR data into a Document.
// Documents declaring a non UTF-8 charset are decoded as ISO-8859-1.
func Parse(data []byte) (*Document, error) {
	decoded, err := decode(data)
	if err != nil {
		return nil, err
	}

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR HTML: %w", err)
	}

	doc := &Document{}
	var page *Page
	var line *Line

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "title" && n.FirstChild != nil:
				doc.Title = strings.TrimSpace(n.FirstChild.Data)
			case hasClass(n, "ocr_page"):
				doc.Pages = append(doc.Pages, Page{ID: attr(n, "id"), BBox: parseBBox(attr(n, "title"))})
				page = &doc.Pages[len(doc.Pages)-1]
				line = nil
			case hasAnyClass(n, lineClasses) && page != nil:
				page.Lines = append(page.Lines, Line{ID: attr(n, "id"), BBox: parseBBox(attr(n, "title"))})
				line = &page.Lines[len(page.Lines)-1]
			case hasClass(n, "ocrx_word") && page != nil:
				if line == nil {
					// Words outside any line get a line of their own
					page.Lines = append(page.Lines, Line{})
					line = &page.Lines[len(page.Lines)-1]
				}
				title := attr(n, "title")
				line.Words = append(line.Words, Word{
					ID:         attr(n, "id"),
					Text:       strings.TrimSpace(textContent(n)),
					BBox:       parseBBox(title),
					Confidence: parseConfidence(title),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && hasAnyClass(n, lineClasses) {
			// Words after this element no longer belong to it
			line = nil
		}
	}
	walk(root)

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return doc, nil
}

// decode converts ISO-8859-1 hOCR to UTF-8 based on the charset declared in the document head
func decode(data []byte) ([]byte, error) {
	head := bytes.ToLower(data)
	if end := bytes.Index(head, []byte("</head")); end >= 0 {
		head = head[:end]
	} else if end := bytes.Index(head, []byte("<body")); end >= 0 {
		head = head[:end]
	} else if len(head) > headSniffLen {
		head = head[:headSniffLen]
	}

	i := bytes.Index(head, []byte("charset="))
	if i < 0 {
		return data, nil
	}

	rest := string(head[i+len("charset="):])
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 || fields[0] == "utf-8" || fields[0] == "utf8" {
		return data, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", fields[0], err)
	}
	return decoded, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func hasAnyClass(n *html.Node, classes []string) bool {
	for _, c := range classes {
		if hasClass(n, c) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

// parseTitle breaks down an hOCR title attribute into its properties
// Example input: "bbox 100 200 300 400; x_wconf 95"
func parseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

func parseBBox(title string) BoundingBox {
	values := parseTitle(title)["bbox"]
	if len(values) < 4 {
		return BoundingBox{}
	}
	var coords [4]float64
	for i := range coords {
		coords[i], _ = strconv.ParseFloat(values[i], 64)
	}
	return BoundingBox{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}
}

func parseConfidence(title string) float64 {
	values := parseTitle(title)["x_wconf"]
	if len(values) == 0 {
		return 0
	}
	c, _ := strconv.ParseFloat(values[0], 64)
	return c
}
