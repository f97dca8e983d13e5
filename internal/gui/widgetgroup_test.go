package gui

import (
	"testing"

	"fyne.io/fyne/v2/widget"
)

// TestChangeSignalDispatchOrder tests that watchers fire in registration order
func TestChangeSignalDispatchOrder(t *testing.T) {
	var sig changeSignal
	var order []string

	sig.Watch(func(string) { order = append(order, "first") })
	sig.Watch(func(string) { order = append(order, "second") })
	sig.Emit("x")

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("dispatch order = %v, want [first second]", order)
	}
}

// TestChangeSignalDetach tests that a detached watcher no longer fires
func TestChangeSignalDetach(t *testing.T) {
	var sig changeSignal
	calls := 0

	sub := sig.Watch(func(string) { calls++ })
	sig.Emit("a")
	sub.Detach()
	sub.Detach() // second detach is a no-op
	sig.Emit("b")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// TestChangeSignalDetachDuringDispatch tests self-detaching watchers
func TestChangeSignalDetachDuringDispatch(t *testing.T) {
	var sig changeSignal
	calls := 0

	var sub Subscription
	sub = sig.Watch(func(string) {
		calls++
		sub.Detach()
	})
	other := 0
	sig.Watch(func(string) { other++ })

	sig.Emit("a")
	sig.Emit("b")

	if calls != 1 {
		t.Errorf("self-detaching watcher fired %d times, want 1", calls)
	}
	if other != 2 {
		t.Errorf("remaining watcher fired %d times, want 2", other)
	}
}

// TestWidgetGroupVisibilityLifecycle tests attach/teardown across visibility
func TestWidgetGroupVisibilityLifecycle(t *testing.T) {
	var sig changeSignal
	fired := 0

	g := &WidgetGroup{}
	g.initGroup(widget.NewLabel("panel"), func() []Subscription {
		return []Subscription{sig.Watch(func(string) { fired++ })}
	})

	if !g.Visible() {
		t.Fatal("group should start visible")
	}
	if g.WatcherCount() != 1 {
		t.Fatalf("WatcherCount = %d, want 1", g.WatcherCount())
	}

	sig.Emit("a")
	g.SetVisible(false)
	if g.WatcherCount() != 0 {
		t.Errorf("WatcherCount after hide = %d, want 0", g.WatcherCount())
	}
	if g.Panel().Visible() {
		t.Error("panel should be hidden")
	}
	sig.Emit("b") // no watcher attached

	g.SetVisible(true)
	sig.Emit("c")

	if fired != 2 {
		t.Errorf("watcher fired %d times, want 2 (hidden emit dropped)", fired)
	}
	if !g.Panel().Visible() {
		t.Error("panel should be visible again")
	}
}

// TestWidgetGroupSetVisibleIdempotent tests that repeated transitions to the
// same state do not stack watchers
func TestWidgetGroupSetVisibleIdempotent(t *testing.T) {
	var sig changeSignal
	g := &WidgetGroup{}
	g.initGroup(widget.NewLabel("panel"), func() []Subscription {
		return []Subscription{sig.Watch(func(string) {})}
	})

	g.SetVisible(true)
	g.SetVisible(true)
	if g.WatcherCount() != 1 {
		t.Errorf("WatcherCount = %d, want 1", g.WatcherCount())
	}
	if len(sig.watchers) != 1 {
		t.Errorf("signal has %d watchers, want 1", len(sig.watchers))
	}
}
