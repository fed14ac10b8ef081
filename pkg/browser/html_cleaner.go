package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// CleanedHTML represents cleaned HTML content with metadata.
type CleanedHTML struct {
	HTML      string
	Title     string
	Truncated bool
}

// cleanHTML extracts and cleans HTML content, preserving semantic structure
// while removing scripts, styles, and other noise. The result is compact
// enough to feed a planner prompt.
func cleanHTML(rawHTML string, maxLength int) (*CleanedHTML, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &CleanedHTML{Title: documentTitle(doc)}

	var builder strings.Builder
	var length int
	result.Truncated = cleanNode(doc, &builder, &length, maxLength, 0)
	result.HTML = builder.String()
	return result, nil
}

// cleanNode recursively processes HTML nodes, dropping noise elements and
// keeping targeting attributes.
func cleanNode(n *html.Node, builder *strings.Builder, length *int, maxLength, depth int) bool {
	if *length >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false
	case html.TextNode:
		return writeText(n.Data, builder, length, maxLength)
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedElements[tag] {
			return false
		}
		return writeElement(n, tag, builder, length, maxLength, depth)
	default:
		return cleanChildren(n, builder, length, maxLength, depth)
	}
}

func writeText(data string, builder *strings.Builder, length *int, maxLength int) bool {
	text := strings.TrimSpace(data)
	if text == "" {
		return false
	}

	if *length+len(text) > maxLength {
		remaining := maxLength - *length
		builder.WriteString(text[:remaining])
		builder.WriteString("...")
		*length = maxLength
		return true
	}

	builder.WriteString(text)
	*length += len(text)
	return false
}

func writeElement(n *html.Node, tag string, builder *strings.Builder, length *int, maxLength, depth int) bool {
	if depth > 0 && blockElements[tag] {
		builder.WriteString("\n")
		builder.WriteString(strings.Repeat("  ", depth))
	}

	builder.WriteString("<")
	builder.WriteString(tag)
	for _, attr := range n.Attr {
		if preserveAttribute(tag, attr.Key) {
			fmt.Fprintf(builder, ` %s="%s"`, attr.Key, html.EscapeString(attr.Val))
		}
	}
	builder.WriteString(">")
	*length += len(tag) + 2

	truncated := cleanChildren(n, builder, length, maxLength, depth+1)

	if !voidElements[tag] {
		if blockElements[tag] {
			builder.WriteString("\n")
			builder.WriteString(strings.Repeat("  ", depth))
		}
		builder.WriteString("</")
		builder.WriteString(tag)
		builder.WriteString(">")
		*length += len(tag) + 3
	}

	return truncated
}

func cleanChildren(n *html.Node, builder *strings.Builder, length *int, maxLength, depth int) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if cleanNode(c, builder, length, maxLength, depth) {
			return true
		}
	}
	return false
}

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
}

var blockElements = map[string]bool{
	"div": true, "p": true, "section": true, "article": true,
	"header": true, "footer": true, "nav": true, "main": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
	"form": true, "fieldset": true, "blockquote": true, "pre": true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// preserveAttribute keeps attributes useful for element targeting and drops
// presentation noise.
func preserveAttribute(tag, name string) bool {
	name = strings.ToLower(name)

	switch name {
	case "id", "class", "role", "aria-label", "aria-describedby":
		return true
	}
	if strings.HasPrefix(name, "data-") {
		return true
	}

	switch tag {
	case "a":
		return name == "href" || name == "target"
	case "input", "textarea", "select":
		return name == "name" || name == "type" || name == "placeholder" || name == "value"
	case "button":
		return name == "type" || name == "name"
	case "form":
		return name == "action" || name == "method"
	}
	return false
}

func documentTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}
