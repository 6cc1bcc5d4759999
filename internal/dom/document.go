// Package dom is a headless document: an x/net/html tree with CSS selector
// lookup, bubbling events, class lists, data attributes, inline styles and
// innerHTML. Every read and mutation is serialised on the document lock;
// listeners run outside it.
package dom

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

type Document struct {
	mu        sync.Mutex
	root      *html.Node
	location  *url.URL
	listeners map[*html.Node]map[string][]Listener
}

// Parse reads a full HTML document. location is the page URL the document
// was served from; only its path is used by the widgets.
func Parse(r io.Reader, location string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	loc, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", location, err)
	}
	return &Document{
		root:      root,
		location:  loc,
		listeners: map[*html.Node]map[string][]Listener{},
	}, nil
}

func ParseString(s, location string) (*Document, error) {
	return Parse(strings.NewReader(s), location)
}

// Location returns a copy of the page URL.
func (d *Document) Location() url.URL {
	return *d.location
}

func (d *Document) Body() *Element {
	return d.QuerySelector("body")
}

func (d *Document) GetElementByID(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
	return d.wrap(n)
}

// QuerySelector returns the first element matching sel, or nil.
// An invalid selector panics, as it is always a programming error.
func (d *Document) QuerySelector(sel string) *Element {
	m := compile(sel)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(cascadia.Query(d.root, m))
}

func (d *Document) QuerySelectorAll(sel string) []*Element {
	m := compile(sel)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrapAll(cascadia.QueryAll(d.root, m))
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	_ = html.Render(&b, d.root)
	return b.String()
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, n: n}
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Element{doc: d, n: n})
	}
	return out
}

var selectors sync.Map // string -> cascadia.Matcher

func compile(sel string) cascadia.Matcher {
	if m, ok := selectors.Load(sel); ok {
		return m.(cascadia.Matcher)
	}
	m, err := cascadia.ParseGroup(sel)
	if err != nil {
		panic(fmt.Sprintf("dom: invalid selector %q: %v", sel, err))
	}
	selectors.Store(sel, m)
	return m
}

func findNode(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if found := findNode(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
