package dom

import (
	"fmt"
	"io"
	"sync"
)

// Window is the part of the browser window the widgets talk to.
type Window interface {
	Alert(msg string)
	Navigate(href string)
}

// HeadlessWindow records alerts and navigations. When Out is set each one
// is also echoed there.
type HeadlessWindow struct {
	Out io.Writer

	mu          sync.Mutex
	alerts      []string
	navigations []string
}

func (w *HeadlessWindow) Alert(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alerts = append(w.alerts, msg)
	if w.Out != nil {
		fmt.Fprintf(w.Out, "alert: %s\n", msg)
	}
}

func (w *HeadlessWindow) Navigate(href string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.navigations = append(w.navigations, href)
	if w.Out != nil {
		fmt.Fprintf(w.Out, "navigate: %s\n", href)
	}
}

func (w *HeadlessWindow) Alerts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.alerts...)
}

func (w *HeadlessWindow) Navigations() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.navigations...)
}
