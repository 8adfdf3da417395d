package fetch

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

// plainText reduces a feed text field that may carry markup or entities to a
// single line of plain text.
func plainText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return strings.Join(strings.Fields(raw), " ")
	}

	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return strings.Join(strings.Fields(html.UnescapeString(raw)), " ")
	}
	body := findBody(doc)
	if body == nil {
		return strings.Join(strings.Fields(html.UnescapeString(raw)), " ")
	}

	var b strings.Builder
	collectText(body, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func findBody(n *nethtml.Node) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *nethtml.Node, b *strings.Builder) {
	switch n.Type {
	case nethtml.TextNode:
		b.WriteString(n.Data)
		return
	case nethtml.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br", "p", "div", "li":
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
