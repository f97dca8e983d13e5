package gui

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/datapantry/pantry-gui/internal/catalog"
)

// MinToolkitVersion is the oldest graphics toolkit release the GUI supports.
const MinToolkitVersion = "2.6.0"

// App is the graphical application surface. The full implementation lives in
// GUI; a construction failure yields an unavailable stub instead.
type App interface {
	// Run shows the main window and blocks until it closes.
	Run() error
	// AddCatalog loads the catalog at location and appends it to the session.
	AddCatalog(location string) (*catalog.Catalog, error)
	// Catalogs returns the catalogs added during this session.
	Catalogs() []*catalog.Catalog
}

// Lazy defers constructing the App until first use and caches the result.
// Construction runs at most once; a failure is remembered and every later
// access yields the same unavailable stub.
type Lazy struct {
	once    sync.Once
	factory func() (App, error)
	app     App
}

// NewLazy wraps factory. A nil factory builds the default GUI.
func NewLazy(factory func() (App, error)) *Lazy {
	if factory == nil {
		factory = func() (App, error) { return NewGUI("") }
	}
	return &Lazy{factory: factory}
}

// Instance returns the App, constructing it on first call.
func (l *Lazy) Instance() App {
	l.once.Do(func() {
		app, err := l.factory()
		if err != nil {
			l.app = unavailable{cause: err}
			return
		}
		l.app = app
	})
	return l.app
}

// unavailable is the stub installed when GUI construction fails. Every
// operation fails with a diagnostic naming the minimum toolkit version.
type unavailable struct {
	cause error
}

func (u unavailable) err() error {
	return fmt.Errorf("the GUI requires graphics toolkit >= %s and a working display: %w",
		MinToolkitVersion, u.cause)
}

func (u unavailable) Run() error { return u.err() }

func (u unavailable) AddCatalog(string) (*catalog.Catalog, error) {
	return nil, u.err()
}

func (u unavailable) Catalogs() []*catalog.Catalog { return nil }

// CheckDisplay reports whether a display server is reachable. Only Linux
// headless environments are detectable up front.
func CheckDisplay() error {
	if runtime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("GUI mode requires a display. No display detected.\n" +
				"DISPLAY and WAYLAND_DISPLAY are not set.\n" +
				"Use the pantry subcommands for CLI mode")
		}
	}
	return nil
}
