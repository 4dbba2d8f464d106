package legis

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/avernik/doctrina/internal/law"
)

// Code is one legislative document published as HTML. Provisions are
// elements carrying an id attribute; their text is indexed at parse
// time so citation paths under the code's URI resolve to passages.
type Code struct {
	uri        string
	title      string
	text       string
	provisions map[string]string
}

// ReadCode parses the HTML publication of a legislative document.
// The uri is the citation path the document answers for, such as
// "/us/const".
func ReadCode(uri string, r io.Reader) (*Code, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse code document: %w", err)
	}
	c := &Code{
		uri:        strings.TrimRight(uri, "/"),
		provisions: make(map[string]string),
	}
	c.index(root)
	c.text = normalizeSpace(textContent(root))
	if c.title == "" {
		if h1 := findElement(root, "h1"); h1 != nil {
			c.title = normalizeSpace(textContent(h1))
		}
	}
	return c, nil
}

// URI returns the citation path this code answers for.
func (c *Code) URI() string { return c.uri }

// Title returns the document title, from <title> or the first <h1>.
func (c *Code) Title() string { return c.title }

// ProvisionText returns the full text of the cited provision. A source
// equal to the code's URI selects the whole document; otherwise the
// path below the URI must match a provision id, with slashes in the
// remainder folded to hyphens so "/us/const/article-I/8/8" finds an
// element with id "article-I-8-8".
func (c *Code) ProvisionText(source string) (string, error) {
	rest := strings.Trim(strings.TrimPrefix(source, c.uri), "/")
	if rest == "" {
		return c.text, nil
	}
	if text, ok := c.provisions[rest]; ok {
		return text, nil
	}
	if text, ok := c.provisions[strings.ReplaceAll(rest, "/", "-")]; ok {
		return text, nil
	}
	return "", fmt.Errorf("provision %q not found in %s", source, c.uri)
}

// Select resolves a citation into an Enactment, narrowing the cited
// provision to the passage the selector describes.
func (c *Code) Select(source string, sel TextQuoteSelector) (*law.Enactment, error) {
	text, err := c.ProvisionText(source)
	if err != nil {
		return nil, err
	}
	passage, err := sel.Select(text)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", source, err)
	}
	return law.NewEnactment(source, passage), nil
}

func (c *Code) index(n *html.Node) {
	if n.Type == html.ElementNode {
		if n.Data == "title" && c.title == "" {
			c.title = normalizeSpace(textContent(n))
		}
		if id := attribute(n, "id"); id != "" {
			c.provisions[id] = normalizeSpace(textContent(n))
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.index(child)
	}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return ""
	}
	var buf strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		buf.WriteString(textContent(child))
		buf.WriteString(" ")
	}
	return buf.String()
}

func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func attribute(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, name); found != nil {
			return found
		}
	}
	return nil
}
