package document

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is the fixed set of capabilities traversal code relies on. It hides the
// underlying parser so extraction rules only see tags, attributes, children
// and text.
type Node interface {
	// Tag returns the lowercase element name, or "" for non-element nodes.
	Tag() string
	// Attr returns the attribute value for key, or "" when absent.
	Attr(key string) string
	// Classes returns the whitespace-separated tokens of the class attribute.
	Classes() []string
	// HasClass reports whether the class attribute contains name as a token.
	HasClass(name string) bool
	// Children returns element and text children in document order.
	Children() []Node
	// Text returns the concatenated text of the node and its descendants.
	Text() string
	// IsText reports whether the node is a text node.
	IsText() bool
}

type htmlNode struct {
	n *html.Node
}

// Wrap adapts a parsed x/net/html node to Node.
func Wrap(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return htmlNode{n: n}
}

func (h htmlNode) Tag() string {
	if h.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(h.n.Data)
}

func (h htmlNode) Attr(key string) string {
	for _, a := range h.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func (h htmlNode) Classes() []string {
	return strings.Fields(h.Attr("class"))
}

func (h htmlNode) HasClass(name string) bool {
	for _, c := range h.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

func (h htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode, html.TextNode, html.DocumentNode:
			out = append(out, htmlNode{n: c})
		}
	}
	return out
}

func (h htmlNode) Text() string {
	var b strings.Builder
	collectText(&b, h.n)
	return b.String()
}

func (h htmlNode) IsText() bool {
	return h.n.Type == html.TextNode
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

// FindAll returns every descendant of n (n included) accepted by match, in
// document order. Matched nodes are still descended into.
func FindAll(n Node, match func(Node) bool) []Node {
	var out []Node
	var dfs func(Node)
	dfs = func(cur Node) {
		if match(cur) {
			out = append(out, cur)
		}
		for _, c := range cur.Children() {
			dfs(c)
		}
	}
	if n != nil {
		dfs(n)
	}
	return out
}

// FindFirst returns the first descendant of n (n included) accepted by match
// in document order, or nil.
func FindFirst(n Node, match func(Node) bool) Node {
	return FindFirstPruned(n, match, nil)
}

// FindFirstPruned is FindFirst that neither matches nor descends into nodes
// accepted by prune. A nil prune skips nothing.
func FindFirstPruned(n Node, match, prune func(Node) bool) Node {
	var res Node
	var dfs func(Node) bool
	dfs = func(cur Node) bool {
		if prune != nil && prune(cur) {
			return false
		}
		if match(cur) {
			res = cur
			return true
		}
		for _, c := range cur.Children() {
			if dfs(c) {
				return true
			}
		}
		return false
	}
	if n != nil {
		dfs(n)
	}
	return res
}

// Element matches elements named tag that carry every class in classes.
func Element(tag string, classes ...string) func(Node) bool {
	return func(n Node) bool {
		if n.Tag() != tag {
			return false
		}
		for _, c := range classes {
			if !n.HasClass(c) {
				return false
			}
		}
		return true
	}
}
