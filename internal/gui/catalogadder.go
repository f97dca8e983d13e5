package gui

import (
	"fmt"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/datapantry/pantry-gui/internal/catalog"
	"github.com/datapantry/pantry-gui/internal/fsx"
	"github.com/datapantry/pantry-gui/internal/logging"
)

// AdderState is the plain-data snapshot of a CatalogAdder, including the
// snapshots of its child components.
type AdderState struct {
	Visible bool        `json:"visible" yaml:"visible"`
	Active  int         `json:"active" yaml:"active"`
	Local   BrowseState `json:"local" yaml:"local"`
	Remote  RemoteState `json:"remote" yaml:"remote"`
}

// AdderPhase is the observable interaction state of the adder.
type AdderPhase int

const (
	// PhaseHidden means the adder panel is not shown.
	PhaseHidden AdderPhase = iota
	// PhaseNoSelection means the panel is shown but nothing addable is chosen.
	PhaseNoSelection
	// PhaseReady means the confirm button is armed.
	PhaseReady
	// PhaseError means the last confirm attempt failed.
	PhaseError
)

// Opener resolves a catalog location to a loaded catalog.
type Opener func(location string) (*catalog.Catalog, error)

// CatalogAdder composes the local path browser and the remote URL entry
// behind tabs, with a confirm button that loads the chosen catalog and hands
// it to the done callback. A failed load shows the error indicator and keeps
// the panel open; a successful one hides the panel.
type CatalogAdder struct {
	WidgetGroup

	local  *PathBrowser
	remote *RemoteLocator

	tabs      *container.AppTabs
	confirm   *widget.Button
	indicator *widget.Icon

	open Opener
	done func(*catalog.Catalog)

	// OnError, when set, receives the error of a failed confirm after the
	// indicator is shown. The GUI uses it to pop a dialog.
	OnError func(error)

	logger *logging.Logger
}

// NewCatalogAdder creates the adder. opener may be nil, in which case the
// default catalog opener is used; done, if non-nil, receives each
// successfully added catalog.
func NewCatalogAdder(fs fsx.Filesystem, suffixes []string, opener Opener, done func(*catalog.Catalog)) *CatalogAdder {
	a := &CatalogAdder{
		open:   opener,
		done:   done,
		logger: logging.NewLogger("catalog-adder"),
	}
	if a.open == nil {
		a.open = catalog.Open
	}

	a.confirm = NewPrimaryButton("Add Catalog", nil)
	a.confirm.Disable()

	a.indicator = widget.NewIcon(theme.ErrorIcon())
	a.indicator.Hide()

	// The browser's selection notification drives the confirm button while
	// the local tab is up.
	a.local = NewPathBrowser(fs, suffixes, a.onLocalSelection)
	a.remote = NewRemoteLocator()

	a.tabs = container.NewAppTabs(
		container.NewTabItem("Local", a.local.Panel()),
		container.NewTabItem("Remote", a.remote.Panel()),
	)

	bottom := container.NewBorder(
		nil, nil, nil,
		container.NewHBox(a.indicator, HorizontalSpacer(4), a.confirm),
	)
	panel := container.NewBorder(nil, bottom, nil, nil, a.tabs)

	a.initGroup(panel, a.attachWatchers)
	return a
}

func (a *CatalogAdder) attachWatchers() []Subscription {
	a.confirm.OnTapped = a.onConfirmTapped
	a.tabs.OnSelected = a.onTabSelected

	return []Subscription{
		{detach: func() { a.confirm.OnTapped = nil }},
		{detach: func() { a.tabs.OnSelected = nil }},
		a.local.WatchSelection(a.clearError),
		a.remote.WatchURL(a.clearError),
	}
}

// onLocalSelection enables the confirm button when the browser reports a
// selected file and disables it when the selection clears.
func (a *CatalogAdder) onLocalSelection(selected bool) {
	if selected {
		a.confirm.Enable()
	} else {
		a.confirm.Disable()
	}
}

// onTabSelected clears any stale error and arms the confirm button on the
// remote tab, where free-form text is always a candidate location. Switching
// back to the local tab leaves the button state alone.
func (a *CatalogAdder) onTabSelected(*container.TabItem) {
	a.clearError("")
	if a.tabs.SelectedIndex() == 1 {
		a.confirm.Enable()
	}
}

func (a *CatalogAdder) clearError(string) {
	a.indicator.Hide()
}

func (a *CatalogAdder) onConfirmTapped() {
	if err := a.Confirm(); err != nil && a.OnError != nil {
		a.OnError(err)
	}
}

// location returns the candidate catalog location of the active tab.
func (a *CatalogAdder) location() (string, error) {
	if a.tabs.SelectedIndex() == 1 {
		return a.remote.Location(), nil
	}
	loc, ok := a.local.Location()
	if !ok {
		return "", fmt.Errorf("no catalog file selected")
	}
	return loc, nil
}

// Confirm loads the catalog at the active tab's location. On failure the
// error indicator is shown, the panel stays open, and the error is returned;
// on success the done callback fires and the panel hides.
func (a *CatalogAdder) Confirm() error {
	loc, err := a.location()
	if err != nil {
		a.indicator.Show()
		return err
	}

	cat, err := a.open(loc)
	if err != nil {
		a.logger.Error().Err(err).Str("location", loc).Msg("Adding catalog failed")
		a.indicator.Show()
		return err
	}

	a.indicator.Hide()
	a.logger.Info().Str("name", cat.Name).Str("location", loc).Msg("Catalog added")
	if a.done != nil {
		a.done(cat)
	}
	a.SetVisible(false)
	return nil
}

// ErrorSet reports whether the failed-confirm indicator is showing.
func (a *CatalogAdder) ErrorSet() bool {
	return a.indicator.Visible()
}

// SetVisible cascades the visibility transition to both child components
// before switching the adder's own watchers.
func (a *CatalogAdder) SetVisible(visible bool) {
	a.local.SetVisible(visible)
	a.remote.SetVisible(visible)
	a.WidgetGroup.SetVisible(visible)
}

// Phase derives the adder's observable interaction state.
func (a *CatalogAdder) Phase() AdderPhase {
	switch {
	case !a.Visible():
		return PhaseHidden
	case a.indicator.Visible():
		return PhaseError
	case a.confirm.Disabled():
		return PhaseNoSelection
	default:
		return PhaseReady
	}
}

// CaptureState snapshots the adder and its children.
func (a *CatalogAdder) CaptureState() AdderState {
	return AdderState{
		Visible: a.Visible(),
		Active:  a.tabs.SelectedIndex(),
		Local:   a.local.CaptureState(),
		Remote:  a.remote.CaptureState(),
	}
}

// RestoreState applies a snapshot as a pure assignment. Child states restore
// without re-firing notifications; the active tab index is applied only when
// the restored state is visible. The confirm button is armed from the
// restored state rather than from notifications.
func (a *CatalogAdder) RestoreState(state AdderState) {
	a.local.RestoreState(state.Local)
	a.remote.RestoreState(state.Remote)
	a.SetVisible(state.Visible)
	if state.Visible {
		a.tabs.SelectIndex(state.Active)
	}

	a.indicator.Hide()
	if state.Active == 1 || a.local.Selected() != "" {
		a.confirm.Enable()
	} else {
		a.confirm.Disable()
	}
}
