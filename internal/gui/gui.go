package gui

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/datapantry/pantry-gui/internal/catalog"
	"github.com/datapantry/pantry-gui/internal/config"
	"github.com/datapantry/pantry-gui/internal/fsx"
	"github.com/datapantry/pantry-gui/internal/logging"
)

// GUI is the main graphical application: a toolbar toggling the catalog
// adder, the list of added catalogs with their sources, and a status bar.
type GUI struct {
	app    fyne.App
	window fyne.Window
	cfg    config.Config
	opener *catalog.Opener

	adder  *CatalogAdder
	status *StatusBar

	catalogs    []*catalog.Catalog
	catalogList *widget.List
	sourceList  *widget.List
	selected    int // index into catalogs, -1 when none

	logger *logging.Logger
}

// NewGUI constructs the application. configFile may be empty, in which case
// the default config location is tried. Construction fails when no display
// is reachable; the lazy holder turns that into an unavailable stub.
func NewGUI(configFile string) (*GUI, error) {
	logger := logging.NewLogger("gui")

	// GUI mode keeps the console quiet unless debugging is requested.
	if os.Getenv("PANTRY_DEBUG") != "" {
		logging.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		logging.SetGlobalLevel(zerolog.WarnLevel)
	}

	if err := CheckDisplay(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load config, using defaults")
		cfg = config.DefaultConfig()
	}

	g := &GUI{
		cfg:      cfg,
		selected: -1,
		logger:   logger,
	}

	g.app = app.NewWithID("io.datapantry.pantry-gui")
	g.app.Settings().SetTheme(&pantryTheme{})
	g.window = g.app.NewWindow("Datapantry")
	g.window.SetMaster()

	g.opener = catalog.NewOpener(catalog.Options{
		S3Region:     cfg.Remote.S3Region,
		S3AccessKey:  cfg.Remote.S3AccessKey,
		S3SecretKey:  cfg.Remote.S3SecretKey,
		AzureAccount: cfg.Remote.AzureAccount,
	})

	g.status = NewStatusBar()

	g.adder = NewCatalogAdder(fsx.OS{}, cfg.Browse.Suffixes, g.openCatalog, g.onCatalogAdded)
	g.adder.OnError = func(err error) {
		g.status.SetError("Adding catalog failed")
		dialog.ShowError(err, g.window)
	}
	if cfg.Browse.StartDir != "" {
		g.adder.local.SetDirectory(cfg.Browse.StartDir)
	}
	g.adder.SetVisible(false)

	g.catalogList = widget.NewList(
		func() int { return len(g.catalogs) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(g.catalogs) {
				obj.(*widget.Label).SetText(g.catalogs[id].Name)
			}
		},
	)
	g.catalogList.OnSelected = func(id widget.ListItemID) {
		g.selected = id
		g.sourceList.Refresh()
	}

	g.sourceList = widget.NewList(
		func() int { return len(g.selectedSources()) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			names := g.selectedSources()
			if id < len(names) {
				obj.(*widget.Label).SetText(names[id])
			}
		},
	)

	return g, nil
}

func (g *GUI) openCatalog(location string) (*catalog.Catalog, error) {
	return g.opener.Open(context.Background(), location)
}

// selectedSources returns the source names of the selected catalog.
func (g *GUI) selectedSources() []string {
	if g.selected < 0 || g.selected >= len(g.catalogs) {
		return nil
	}
	return g.catalogs[g.selected].SourceNames()
}

// onCatalogAdded receives each catalog confirmed through the adder.
func (g *GUI) onCatalogAdded(cat *catalog.Catalog) {
	g.catalogs = append(g.catalogs, cat)
	g.catalogList.Refresh()
	g.catalogList.Select(len(g.catalogs) - 1)
	g.status.SetSuccess(fmt.Sprintf("Added catalog %q (%d sources)", cat.Name, len(cat.Sources)))
}

// toggleAdder shows or hides the add-catalog panel.
func (g *GUI) toggleAdder() {
	g.adder.SetVisible(!g.adder.Visible())
	if g.adder.Visible() {
		g.status.SetInfo("Choose a catalog to add")
	} else {
		g.status.SetInfo("Ready")
	}
}

// build assembles the window content.
func (g *GUI) build() fyne.CanvasObject {
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), g.toggleAdder),
	)

	browse := container.NewHSplit(
		container.NewBorder(widget.NewLabel("Catalogs"), nil, nil, nil, g.catalogList),
		container.NewBorder(widget.NewLabel("Sources"), nil, nil, nil, g.sourceList),
	)
	browse.SetOffset(0.35)

	main := container.NewVSplit(browse, g.adder.Panel())
	main.SetOffset(0.45)

	return container.NewBorder(toolbar, g.status, nil, nil, main)
}

// Run shows the main window and blocks until it closes.
func (g *GUI) Run() error {
	g.window.SetContent(g.build())
	g.window.Resize(fyne.NewSize(900, 600))
	g.window.CenterOnScreen()
	g.window.ShowAndRun()
	return nil
}

// AddCatalog loads the catalog at location and appends it to the session,
// bypassing the adder panel.
func (g *GUI) AddCatalog(location string) (*catalog.Catalog, error) {
	cat, err := g.openCatalog(location)
	if err != nil {
		g.status.SetError("Adding catalog failed")
		return nil, err
	}
	g.onCatalogAdded(cat)
	return cat, nil
}

// Catalogs returns the catalogs added during this session.
func (g *GUI) Catalogs() []*catalog.Catalog {
	return append([]*catalog.Catalog(nil), g.catalogs...)
}
