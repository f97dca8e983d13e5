// Datapantry - GUI and CLI for browsing and adding data catalogs
//
// - No args + display available → GUI mode
// - No args + no display → CLI help
// - --gui → GUI mode
// - --cli → CLI mode (force)
// - CLI subcommands/flags → CLI mode
package main

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/datapantry/pantry-gui/internal/cli"
	"github.com/datapantry/pantry-gui/internal/gui"
)

func main() {
	if isCLIMode() {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	// GUI mode. Construction is deferred to first use so a broken display
	// environment reports one diagnostic instead of crashing the toolkit.
	configFile := configFileArg(os.Args[1:])
	lazy := gui.NewLazy(func() (gui.App, error) {
		return gui.NewGUI(configFile)
	})
	if err := lazy.Instance().Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFileArg extracts an optional --config/-c value from GUI-mode args.
func configFileArg(args []string) string {
	for i, arg := range args {
		if (arg == "--config" || arg == "-c") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// isCLIMode determines whether to run in CLI mode based on arguments and
// environment.
//
// CLI mode when:
// - --cli flag is present (force CLI mode)
// - CLI subcommands are present (show, fetch, auth)
// - CLI flags are present (--help, --version, -h)
// - No display available (DISPLAY/WAYLAND_DISPLAY not set on Linux)
//
// GUI mode when:
// - --gui flag is present (force GUI mode)
// - No arguments (beyond --config) and display is available
func isCLIMode() bool {
	if slices.Contains(os.Args, "--cli") {
		return true
	}
	if slices.Contains(os.Args, "--gui") {
		return false
	}

	cliPatterns := []string{
		// Subcommands
		"show", "fetch", "auth", "completion",
		// Flags
		"--help", "-h", "--version",
	}

	for _, arg := range os.Args[1:] {
		for _, pattern := range cliPatterns {
			if arg == pattern || strings.HasPrefix(arg, pattern+" ") {
				return true
			}
		}
	}

	// Only config flags or nothing: check for display
	if guiCompatibleArgs(os.Args[1:]) {
		if runtime.GOOS == "linux" {
			if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
				return true // No display, default to CLI
			}
		}
		return false
	}

	// Unknown arguments - let CLI handle (might be typos or new commands)
	return true
}

// guiCompatibleArgs reports whether args contain nothing but a config flag.
func guiCompatibleArgs(args []string) bool {
	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			i++ // skip the value
			continue
		}
		return false
	}
	return true
}
