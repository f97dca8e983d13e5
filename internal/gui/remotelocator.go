package gui

import (
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RemoteState is the plain-data snapshot of a RemoteLocator.
type RemoteState struct {
	URL string `json:"url" yaml:"url"`
}

// RemoteLocator is the widget group for entering a remote catalog location:
// a single URL entry. Unlike the path browser there is no validity check;
// any text, including empty, counts as a candidate location.
type RemoteLocator struct {
	WidgetGroup

	entry      *widget.Entry
	urlChanged changeSignal
}

// NewRemoteLocator creates the remote location entry.
func NewRemoteLocator() *RemoteLocator {
	r := &RemoteLocator{}

	r.entry = widget.NewEntry()
	r.entry.SetPlaceHolder("Full URL with protocol")

	panel := container.NewVBox(
		widget.NewLabel("Catalog URL:"),
		r.entry,
		VerticalSpacer(8),
	)

	r.initGroup(panel, r.attachWatchers)
	return r
}

func (r *RemoteLocator) attachWatchers() []Subscription {
	r.entry.OnChanged = r.urlChanged.Emit
	return []Subscription{
		{detach: func() { r.entry.OnChanged = nil }},
	}
}

// Location returns the entered URL as typed.
func (r *RemoteLocator) Location() string {
	return r.entry.Text
}

// SetLocation replaces the entered URL, notifying watchers.
func (r *RemoteLocator) SetLocation(url string) {
	r.entry.SetText(url)
}

// WatchURL registers a watcher for URL edits; used by the owning component
// to clear its error indicator.
func (r *RemoteLocator) WatchURL(fn func(string)) Subscription {
	return r.urlChanged.Watch(fn)
}

// CaptureState snapshots the entered URL.
func (r *RemoteLocator) CaptureState() RemoteState {
	return RemoteState{URL: r.entry.Text}
}

// RestoreState applies a snapshot without notifying watchers.
func (r *RemoteLocator) RestoreState(state RemoteState) {
	r.entry.Text = state.URL
	r.entry.Refresh()
}
