package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanField reduces an uploaded cell to plain text. Lead exports sometimes
// carry HTML fragments or entities in free-text columns; those are stripped
// to their text content and whitespace is collapsed.
func CleanField(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		if doc, err := html.Parse(strings.NewReader(s)); err == nil {
			s = extractText(doc)
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractText(c))
		sb.WriteByte(' ')
	}
	return sb.String()
}
