// Local filesystem browser component for picking catalog files.
package gui

import (
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/datapantry/pantry-gui/internal/fsx"
	"github.com/datapantry/pantry-gui/internal/logging"
)

// BrowseState is the plain-data snapshot of a PathBrowser.
type BrowseState struct {
	Dir      string `json:"dir" yaml:"dir"`
	Selected string `json:"selected" yaml:"selected"`
}

// PathBrowser is a widget group for browsing the local filesystem and
// selecting a catalog file. The current directory is always
// trailing-separator-normalized; entries list non-hidden subdirectories
// (suffixed with the separator) and files matching the configured suffixes.
type PathBrowser struct {
	WidgetGroup

	fs       fsx.Filesystem
	suffixes []string
	// done is the selection-changed notification: true when a file is
	// selected, false when the selection is cleared.
	done func(bool)

	// UI components
	pathEntry *widget.Entry
	homeBtn   *widget.Button
	upBtn     *widget.Button
	list      *widget.List
	indicator *widget.Icon

	entries   []string // visible entries, directories suffixed with separator
	selected  string
	restoring bool

	pathChanged      changeSignal
	selectionChanged changeSignal

	logger *logging.Logger
}

// NewPathBrowser creates a local browser rooted at the process working
// directory. suffixes lists accepted catalog file suffixes (nil means
// yaml/yml); done, if non-nil, is invoked with true when a file is selected
// and false whenever the selection is cleared.
func NewPathBrowser(fs fsx.Filesystem, suffixes []string, done func(bool)) *PathBrowser {
	if fs == nil {
		fs = fsx.OS{}
	}
	if len(suffixes) == 0 {
		suffixes = []string{"yaml", "yml"}
	}
	normalized := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		normalized = append(normalized, strings.TrimPrefix(s, "."))
	}

	b := &PathBrowser{
		fs:       fs,
		suffixes: normalized,
		done:     done,
		logger:   logging.NewLogger("path-browser"),
	}

	b.pathEntry = widget.NewEntry()
	b.pathEntry.SetPlaceHolder("Enter path...")
	b.pathEntry.Text = fsx.EnsureTrailingSeparator(fs.WorkingDir())

	b.indicator = widget.NewIcon(theme.ErrorIcon())
	b.indicator.Hide()

	b.homeBtn = widget.NewButtonWithIcon("", theme.HomeIcon(), nil)
	b.upBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), nil)

	b.list = widget.NewList(
		func() int { return len(b.entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(b.entries) {
				obj.(*widget.Label).SetText(b.entries[id])
			}
		},
	)

	navBar := container.NewBorder(
		nil, nil,
		container.NewHBox(HorizontalSpacer(4), b.homeBtn, b.upBtn, HorizontalSpacer(8)),
		container.NewHBox(HorizontalSpacer(8), b.indicator, HorizontalSpacer(4)),
		b.pathEntry,
	)
	panel := container.NewBorder(navBar, nil, nil, nil, b.list)

	b.initGroup(panel, b.attachWatchers)

	// Initial validation and listing; fires the cleared notification once,
	// leaving the owner in its no-selection state.
	b.validate("")
	b.notifyAndReload("")

	return b
}

// attachWatchers registers every widget callback and internal watcher,
// returning their subscription handles for teardown.
func (b *PathBrowser) attachWatchers() []Subscription {
	b.pathEntry.OnChanged = b.pathChanged.Emit
	b.homeBtn.OnTapped = b.NavigateHome
	b.upBtn.OnTapped = b.NavigateUp
	b.list.OnSelected = b.onListSelect

	return []Subscription{
		{detach: func() { b.pathEntry.OnChanged = nil }},
		{detach: func() { b.homeBtn.OnTapped = nil }},
		{detach: func() { b.upBtn.OnTapped = nil }},
		{detach: func() { b.list.OnSelected = nil }},
		b.pathChanged.Watch(b.validate),
		b.pathChanged.Watch(b.notifyAndReload),
	}
}

// Path returns the current directory, trailing-separator-normalized.
func (b *PathBrowser) Path() string {
	return fsx.EnsureTrailingSeparator(b.pathEntry.Text)
}

// Selected returns the selected entry name, or empty when none.
func (b *PathBrowser) Selected() string {
	return b.selected
}

// Entries returns the currently visible entries.
func (b *PathBrowser) Entries() []string {
	return append([]string(nil), b.entries...)
}

// ErrorSet reports whether the invalid-directory indicator is showing.
func (b *PathBrowser) ErrorSet() bool {
	return b.indicator.Visible()
}

// SetDirectory navigates to path. The entry text change triggers validation,
// relisting, and the cleared-selection notification through the watchers.
func (b *PathBrowser) SetDirectory(path string) {
	b.pathEntry.SetText(fsx.EnsureTrailingSeparator(path))
}

// NavigateUp moves the current directory to its parent.
func (b *PathBrowser) NavigateUp() {
	b.SetDirectory(fsx.Parent(b.Path()))
}

// NavigateHome moves the current directory to the process working directory.
func (b *PathBrowser) NavigateHome() {
	b.SetDirectory(b.fs.WorkingDir())
}

// validate sets the error indicator when the current directory is not a
// valid directory and clears it otherwise. Runs on every path change.
func (b *PathBrowser) validate(string) {
	if b.fs.IsDir(b.Path()) {
		b.indicator.Hide()
	} else {
		b.indicator.Show()
	}
}

// notifyAndReload clears the selection (notifying the owner) and relists
// the current directory.
func (b *PathBrowser) notifyAndReload(string) {
	if b.done != nil {
		b.done(false)
	}
	b.reloadEntries()
}

// reloadEntries lists the current directory: hidden entries are skipped,
// subdirectories are annotated with the separator, files are kept when a
// configured suffix matches, and the result is sorted lexicographically.
// An invalid directory produces an empty list. The selection is reset.
func (b *PathBrowser) reloadEntries() {
	dir := b.Path()
	var visible []string

	if b.fs.IsDir(dir) {
		listed, err := b.fs.List(dir)
		if err != nil {
			b.logger.Warn().Err(err).Str("path", dir).Msg("Directory listing failed")
		}
		names := make([]fsx.Entry, 0, len(listed))
		for _, e := range listed {
			if strings.HasPrefix(e.Name, ".") {
				continue
			}
			names = append(names, e)
		}
		sort.Slice(names, func(i, j int) bool { return names[i].Name < names[j].Name })

		for _, e := range names {
			switch {
			case e.IsDir:
				visible = append(visible, e.Name+fsx.Separator())
			case b.suffixMatches(e.Name):
				visible = append(visible, e.Name)
			}
		}
	}

	b.entries = visible
	b.selected = ""
	b.list.UnselectAll()
	b.list.Refresh()
}

func (b *PathBrowser) suffixMatches(name string) bool {
	for _, suffix := range b.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// onListSelect handles a list row selection.
func (b *PathBrowser) onListSelect(id widget.ListItemID) {
	if id < 0 || id >= len(b.entries) {
		return
	}
	b.onEntrySelected(b.entries[id])
}

// onEntrySelected applies a new selection: a directory marker navigates into
// the directory, a file fires the selection-changed notification with true.
func (b *PathBrowser) onEntrySelected(name string) {
	if b.restoring {
		b.selected = name
		return
	}
	b.selectionChanged.Emit(name)

	if strings.HasSuffix(name, fsx.Separator()) {
		b.selected = ""
		b.SetDirectory(b.Path() + name)
		return
	}

	b.selected = name
	if loc, ok := b.Location(); ok && b.fs.IsFile(loc) && b.done != nil {
		b.done(true)
	}
}

// WatchSelection registers a watcher for raw selection events; used by the
// owning component to clear its error indicator on edits.
func (b *PathBrowser) WatchSelection(fn func(string)) Subscription {
	return b.selectionChanged.Watch(fn)
}

// Location returns the current directory joined with the selected entry,
// or absent when nothing is selected.
func (b *PathBrowser) Location() (string, bool) {
	if b.selected == "" {
		return "", false
	}
	return fsx.Join(b.Path(), b.selected), true
}

// CaptureState snapshots the essential browser state.
func (b *PathBrowser) CaptureState() BrowseState {
	return BrowseState{Dir: b.Path(), Selected: b.selected}
}

// RestoreState applies a snapshot as a pure state assignment: no
// selection-changed notification is re-triggered.
func (b *PathBrowser) RestoreState(state BrowseState) {
	b.restoring = true
	defer func() { b.restoring = false }()

	b.pathEntry.Text = fsx.EnsureTrailingSeparator(state.Dir)
	b.pathEntry.Refresh()
	b.validate("")
	b.reloadEntries()

	b.selected = state.Selected
	if state.Selected == "" {
		return
	}
	for i, name := range b.entries {
		if name == state.Selected {
			b.list.Select(i)
			break
		}
	}
}
