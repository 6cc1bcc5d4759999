package dom

import (
	"context"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Event struct {
	Type   string
	Target *Element
	// CurrentTarget is the element whose listener is running; nil while
	// document-level listeners run.
	CurrentTarget *Element

	stopped bool
}

func (ev *Event) StopPropagation() { ev.stopped = true }

type Listener func(ctx context.Context, ev *Event)

func (e *Element) AddEventListener(typ string, l Listener) {
	e.doc.addListener(e.n, typ, l)
}

// AddEventListener registers a document-level listener. It sees every
// event that bubbles up from an attached element.
func (d *Document) AddEventListener(typ string, l Listener) {
	d.addListener(d.root, typ, l)
}

func (d *Document) addListener(n *html.Node, typ string, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	byType := d.listeners[n]
	if byType == nil {
		byType = map[string][]Listener{}
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], l)
}

func (d *Document) dropListeners(n *html.Node) {
	delete(d.listeners, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.dropListeners(c)
	}
}

// Dispatch fires an event of type typ at e and bubbles it up to the
// document. Listeners are snapshotted before the first one runs.
func (e *Element) Dispatch(ctx context.Context, typ string) {
	type hop struct {
		n         *html.Node
		listeners []Listener
	}

	e.doc.mu.Lock()
	var path []hop
	for n := e.n; n != nil; n = n.Parent {
		if ls := e.doc.listeners[n][typ]; len(ls) > 0 {
			path = append(path, hop{n: n, listeners: append([]Listener(nil), ls...)})
		}
	}
	e.doc.mu.Unlock()

	ev := &Event{Type: typ, Target: e}
	for _, h := range path {
		ev.CurrentTarget = nil
		if h.n.Type == html.ElementNode {
			ev.CurrentTarget = e.doc.wrap(h.n)
		}
		for _, l := range h.listeners {
			l(ctx, ev)
		}
		if ev.stopped {
			return
		}
	}
}

// Click dispatches a click unless the element is a disabled form control.
func (e *Element) Click(ctx context.Context) {
	switch e.n.DataAtom {
	case atom.Button, atom.Input, atom.Select, atom.Textarea:
		if e.Disabled() {
			return
		}
	}
	e.Dispatch(ctx, "click")
}

// Input sets the value as a user typing would and fires an input event.
func (e *Element) Input(ctx context.Context, value string) {
	e.SetValue(value)
	e.Dispatch(ctx, "input")
}
