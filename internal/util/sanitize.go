package util

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes HTML tags from user-submitted text, keeping only the
// visible text content. Input pasted from web pages or rich editors is
// stored as plain text. Parse failures return the input unchanged.
func StripMarkup(input string) string {
	if !strings.ContainsRune(input, '<') {
		return strings.TrimSpace(input)
	}
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return strings.TrimSpace(input)
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.TrimSpace(strings.Join(strings.Fields(sb.String()), " "))
}
