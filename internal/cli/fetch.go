package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/datapantry/pantry-gui/internal/catalog"
)

// newFetchCmd creates the fetch command: mirror a catalog document locally.
func newFetchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <location>",
		Short: "Download a catalog document to a local file",
		Long: `Download the raw catalog document at a remote location and write it to
a local file. The document is validated as a catalog before writing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := args[0]
			opener, err := newCatalogOpener()
			if err != nil {
				return err
			}

			data, err := opener.Fetch(GetContext(), location)
			if err != nil {
				return err
			}
			// Reject documents that are not catalogs before touching disk.
			cat, err := catalog.Parse(data, location)
			if err != nil {
				return err
			}

			if output == "" {
				output = cat.Name + ".yaml"
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			bar := progressbar.DefaultBytes(int64(len(data)), "writing "+filepath.Base(output))
			if _, err := io.Copy(io.MultiWriter(f, bar), bytes.NewReader(data)); err != nil {
				return err
			}

			GetLogger().Info().
				Str("location", location).
				Str("output", output).
				Int("sources", len(cat.Sources)).
				Msg("Catalog fetched")
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d sources)\n", output, len(cat.Sources))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <catalog name>.yaml)")
	return cmd
}
