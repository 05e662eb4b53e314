package solutions

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoSVG is returned when the input holds no <svg> element.
var ErrNoSVG = errors.New("solutions: no svg element")

// dropped elements are removed together with their subtree.
var dropped = map[string]bool{
	"script":        true,
	"foreignobject": true,
	"iframe":        true,
	"style":         true,
	"a":             true,
}

// SanitizeSVG parses r, keeps the first <svg> element and strips scripts,
// foreign content, comments, event handlers and javascript: references. The
// result is marked decorative.
func SanitizeSVG(r io.Reader) (template.HTML, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return "", err
	}
	var root *html.Node
	for _, n := range nodes {
		if root = findSVG(n); root != nil {
			break
		}
	}
	if root == nil {
		return "", ErrNoSVG
	}
	if root.Parent != nil {
		root.Parent.RemoveChild(root)
	}
	clean(root)
	setAttr(root, "aria-hidden", "true")
	setAttr(root, "focusable", "false")

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func findSVG(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "svg" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findSVG(c); found != nil {
			return found
		}
	}
	return nil
}

func clean(n *html.Node) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if safeAttr(a) {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && dropped[strings.ToLower(c.Data)]:
			n.RemoveChild(c)
		case c.Type == html.ElementNode:
			clean(c)
		}
		c = next
	}
}

func safeAttr(a html.Attribute) bool {
	key := strings.ToLower(a.Key)
	if strings.HasPrefix(key, "on") {
		return false
	}
	if key == "href" || key == "src" || a.Namespace == "xlink" {
		v := strings.ToLower(strings.TrimSpace(a.Val))
		if strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "data:") {
			return false
		}
	}
	return true
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
