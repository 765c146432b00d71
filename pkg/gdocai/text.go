package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// span is a half-open rune range into the document text
type span struct {
	start, end int
}

// spansFromLayout returns the clamped text segments of a layout
func spansFromLayout(layout *documentaipb.Document_Page_Layout, totalRunes int) []span {
	if layout == nil || layout.TextAnchor == nil {
		return nil
	}

	spans := make([]span, 0, len(layout.TextAnchor.TextSegments))
	for _, seg := range layout.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > totalRunes {
			end = totalRunes
		}
		if start > end {
			start = end
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}

// textFromSpans concatenates the text covered by spans
func textFromSpans(spans []span, runes []rune) string {
	var result strings.Builder
	for _, s := range spans {
		result.WriteString(string(runes[s.start:s.end]))
	}
	return result.String()
}

// within reports whether child lies entirely inside one of the parent spans.
// Only the first child segment is compared, tokens and lines have one segment.
func within(child []span, parent []span) bool {
	if len(child) == 0 {
		return false
	}
	c := child[0]
	for _, p := range parent {
		if c.start >= p.start && c.end <= p.end {
			return true
		}
	}
	return false
}
