// Package gui provides the graphical front-end for adding Datapantry
// catalogs: a local path browser and a remote URL entry composed behind
// tabs, plus the lazily-constructed application root.
package gui

import (
	"fyne.io/fyne/v2"
)

// Subscription is an explicit watcher registration handle. Detaching removes
// the callback; components collect their subscriptions and detach them when
// visibility transitions to false instead of relying on garbage collection.
type Subscription struct {
	detach func()
}

// Detach removes the watcher. Safe to call more than once.
func (s *Subscription) Detach() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

// watcher is one registered change callback.
type watcher struct {
	id int
	fn func(string)
}

// changeSignal dispatches a value change to its watchers in registration
// order. It backs the change-notification mechanism of the widget groups.
type changeSignal struct {
	nextID   int
	watchers []watcher
}

// Watch registers fn and returns its subscription handle.
func (s *changeSignal) Watch(fn func(string)) Subscription {
	s.nextID++
	id := s.nextID
	s.watchers = append(s.watchers, watcher{id: id, fn: fn})
	return Subscription{detach: func() {
		for i, w := range s.watchers {
			if w.id == id {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				return
			}
		}
	}}
}

// Emit delivers v to every attached watcher. The watcher list is copied so
// a watcher may detach itself during dispatch.
func (s *changeSignal) Emit(v string) {
	for _, w := range append([]watcher(nil), s.watchers...) {
		w.fn(v)
	}
}

// WidgetGroup is the shared lifecycle base of the catalog-adding components.
// It owns the renderable panel, the list of watcher subscriptions attached at
// setup, and the visible flag. Hiding tears every subscription down; showing
// re-attaches them through the component's attach hook.
type WidgetGroup struct {
	panel    fyne.CanvasObject
	watchers []Subscription
	visible  bool

	// attach re-registers the component's watchers. Set once during
	// component construction, before the first show.
	attach func() []Subscription
}

// initGroup wires the base and performs the initial attach. Components call
// this exactly once at the end of their constructor.
func (g *WidgetGroup) initGroup(panel fyne.CanvasObject, attach func() []Subscription) {
	g.panel = panel
	g.attach = attach
	g.visible = true
	g.watchers = attach()
}

// Panel returns the component's renderable container.
func (g *WidgetGroup) Panel() fyne.CanvasObject {
	return g.panel
}

// Visible reports whether the component is currently shown.
func (g *WidgetGroup) Visible() bool {
	return g.visible
}

// SetVisible shows or hides the panel. The false transition detaches every
// registered watcher; the true transition re-attaches them.
func (g *WidgetGroup) SetVisible(visible bool) {
	if visible == g.visible {
		return
	}
	g.visible = visible
	if visible {
		g.watchers = g.attach()
		g.panel.Show()
		return
	}
	g.teardown()
	g.panel.Hide()
}

// teardown detaches all registered watchers.
func (g *WidgetGroup) teardown() {
	for i := range g.watchers {
		g.watchers[i].Detach()
	}
	g.watchers = nil
}

// WatcherCount reports the number of live subscriptions. Used by tests to
// verify teardown.
func (g *WidgetGroup) WatcherCount() int {
	return len(g.watchers)
}
