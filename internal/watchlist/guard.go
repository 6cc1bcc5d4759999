package watchlist

import (
	"sync"

	"golang.org/x/net/html"

	"flicksy/internal/dom"
)

// inflight allows one outstanding mutation per button. A busy button is
// disabled and marked aria-busy until its request settles.
type inflight struct {
	mu    sync.Mutex
	nodes map[*html.Node]struct{}
}

func (g *inflight) acquire(btn *dom.Element) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.nodes == nil {
		g.nodes = map[*html.Node]struct{}{}
	}
	if _, busy := g.nodes[btn.Node()]; busy || btn.Disabled() {
		return false
	}
	g.nodes[btn.Node()] = struct{}{}
	btn.SetDisabled(true)
	btn.SetAttr("aria-busy", "true")
	return true
}

func (g *inflight) release(btn *dom.Element, keepDisabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.nodes, btn.Node())
	btn.RemoveAttr("aria-busy")
	if !keepDisabled {
		btn.SetDisabled(false)
	}
}
