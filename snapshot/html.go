// CLAUDE:SUMMARY HTMLDocument: Document implementation over a golang.org/x/net/html parse tree.
package snapshot

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLDocument implements Document over a parsed HTML tree.
type HTMLDocument struct {
	root *html.Node
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &HTMLDocument{root: root}, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(s))
}

// Title returns the text of the first <title> element, trimmed.
func (d *HTMLDocument) Title() string {
	return findTitle(d.root)
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// metaAttrPriority is the per-element key resolution order.
var metaAttrPriority = []string{"name", "property", "itemprop"}

// MetaTags scans <meta> elements carrying name, property, or itemprop
// attributes with non-empty content. Duplicate keys are last-write-wins in
// document order.
func (d *HTMLDocument) MetaTags() map[string]string {
	meta := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
			key := metaKey(n)
			content := attrValue(n, "content")
			if key != "" && content != "" {
				meta[key] = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return meta
}

func metaKey(n *html.Node) string {
	for _, name := range metaAttrPriority {
		if v := attrValue(n, name); v != "" {
			return v
		}
	}
	return ""
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// BodyText returns the visible body text. Script, style, noscript, svg and
// iframe subtrees are dropped; text nodes are concatenated without
// separators, then whitespace runs collapse to a single space.
func (d *HTMLDocument) BodyText() string {
	body := findBody(d.root)
	if body == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Svg, atom.Iframe:
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	return normalizeWhitespace(sb.String())
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return body
}

func normalizeWhitespace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
