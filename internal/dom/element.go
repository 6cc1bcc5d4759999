package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle on an element node. Two handles for the same node are
// interchangeable; compare them with Same.
type Element struct {
	doc *Document
	n   *html.Node
}

func (e *Element) Node() *html.Node { return e.n }

func (e *Element) Document() *Document { return e.doc }

func (e *Element) Same(o *Element) bool {
	return e != nil && o != nil && e.n == o.n
}

func (e *Element) Tag() string { return e.n.Data }

func (e *Element) ID() string { return e.Attr("id") }

func (e *Element) Attr(key string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return attr(e.n, key)
}

func (e *Element) HasAttr(key string) bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return hasAttr(e.n, key)
}

func (e *Element) SetAttr(key, val string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.n, key, val)
}

func (e *Element) RemoveAttr(key string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	removeAttr(e.n, key)
}

// Data reads data-{key}; key is in attribute form ("movie-id").
func (e *Element) Data(key string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	k := "data-" + key
	return attr(e.n, k), hasAttr(e.n, k)
}

func (e *Element) SetData(key, val string) {
	e.SetAttr("data-"+key, val)
}

func (e *Element) Classes() []string {
	return strings.Fields(e.Attr("class"))
}

func (e *Element) HasClass(c string) bool {
	for _, have := range e.Classes() {
		if have == c {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(classes ...string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	list := strings.Fields(attr(e.n, "class"))
	for _, c := range classes {
		if !contains(list, c) {
			list = append(list, c)
		}
	}
	setAttr(e.n, "class", strings.Join(list, " "))
}

func (e *Element) RemoveClass(classes ...string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	list := strings.Fields(attr(e.n, "class"))
	out := list[:0]
	for _, c := range list {
		if !contains(classes, c) {
			out = append(out, c)
		}
	}
	setAttr(e.n, "class", strings.Join(out, " "))
}

// ToggleClass adds c when on is true and removes it otherwise.
func (e *Element) ToggleClass(c string, on bool) {
	if on {
		e.AddClass(c)
	} else {
		e.RemoveClass(c)
	}
}

// Style returns one property of the inline style attribute.
func (e *Element) Style(prop string) string {
	for _, d := range parseStyle(e.Attr("style")) {
		if d[0] == prop {
			return d[1]
		}
	}
	return ""
}

// SetStyle sets one inline style property, keeping declaration order.
func (e *Element) SetStyle(prop, val string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	decls := parseStyle(attr(e.n, "style"))
	found := false
	for i := range decls {
		if decls[i][0] == prop {
			decls[i][1] = val
			found = true
		}
	}
	if !found {
		decls = append(decls, [2]string{prop, val})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1])
	}
	setAttr(e.n, "style", strings.Join(parts, "; "))
}

func (e *Element) Disabled() bool { return e.HasAttr("disabled") }

func (e *Element) SetDisabled(on bool) {
	if on {
		e.SetAttr("disabled", "")
	} else {
		e.RemoveAttr("disabled")
	}
}

func (e *Element) Checked() bool { return e.HasAttr("checked") }

// SetChecked checks or unchecks the control. Checking a radio button
// unchecks the other radios of its group.
func (e *Element) SetChecked(on bool) {
	if !on {
		e.RemoveAttr("checked")
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if name := attr(e.n, "name"); name != "" && strings.EqualFold(attr(e.n, "type"), "radio") {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.DataAtom == atom.Input && n != e.n && attr(n, "name") == name &&
				strings.EqualFold(attr(n, "type"), "radio") {
				removeAttr(n, "checked")
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(e.doc.root)
	}
	setAttr(e.n, "checked", "")
}

// Value is the form value: the text of a textarea, the value attribute
// of anything else.
func (e *Element) Value() string {
	if e.n.DataAtom == atom.Textarea {
		return e.Text()
	}
	return e.Attr("value")
}

func (e *Element) SetValue(v string) {
	if e.n.DataAtom != atom.Textarea {
		e.SetAttr("value", v)
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.detachChildren(e.n)
	if v != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: v})
	}
}

// Text is the concatenated text content of the subtree.
func (e *Element) Text() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

func (e *Element) InnerHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

func (e *Element) OuterHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	_ = html.Render(&b, e.n)
	return b.String()
}

// SetInnerHTML replaces the children with the parsed fragment.
func (e *Element) SetInnerHTML(s string) error {
	nodes, err := e.fragment(s)
	if err != nil {
		return err
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.detachChildren(e.n)
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// AppendHTML is innerHTML += s.
func (e *Element) AppendHTML(s string) error {
	nodes, err := e.fragment(s)
	if err != nil {
		return err
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// PrependHTML inserts the parsed fragment before the first child.
func (e *Element) PrependHTML(s string) error {
	nodes, err := e.fragment(s)
	if err != nil {
		return err
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	first := e.n.FirstChild
	for _, n := range nodes {
		if first == nil {
			e.n.AppendChild(n)
		} else {
			e.n.InsertBefore(n, first)
		}
	}
	return nil
}

func (e *Element) fragment(s string) ([]*html.Node, error) {
	ctxNode := &html.Node{Type: html.ElementNode, Data: e.n.Data, DataAtom: e.n.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctxNode)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

// Remove detaches the element from the tree and drops the listeners of its
// subtree. Removing a detached element is a no-op.
func (e *Element) Remove() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.n.Parent == nil {
		return
	}
	e.n.Parent.RemoveChild(e.n)
	e.doc.dropListeners(e.n)
}

// Connected reports whether the element is still attached to the document.
func (e *Element) Connected() bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.n; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

func (e *Element) Parent() *Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

func (e *Element) Children() []*Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

func (e *Element) QuerySelector(sel string) *Element {
	m := compile(sel)
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.wrap(cascadia.Query(e.n, m))
}

func (e *Element) QuerySelectorAll(sel string) []*Element {
	m := compile(sel)
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.wrapAll(cascadia.QueryAll(e.n, m))
}

func (e *Element) Is(sel string) bool {
	m := compile(sel)
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return m.Match(e.n)
}

// Closest returns the nearest inclusive ancestor matching sel, or nil.
func (e *Element) Closest(sel string) *Element {
	m := compile(sel)
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for n := e.n; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && m.Match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

func (d *Document) detachChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		d.dropListeners(c)
		c = next
	}
}

func parseStyle(s string) [][2]string {
	var out [][2]string
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out = append(out, [2]string{prop, strings.TrimSpace(val)})
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
