package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datapantry/pantry-gui/internal/catalog"
	"github.com/datapantry/pantry-gui/internal/config"
)

// newCatalogOpener builds an opener from the loaded configuration.
func newCatalogOpener() (*catalog.Opener, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	return catalog.NewOpener(catalog.Options{
		S3Region:     cfg.Remote.S3Region,
		S3AccessKey:  cfg.Remote.S3AccessKey,
		S3SecretKey:  cfg.Remote.S3SecretKey,
		AzureAccount: cfg.Remote.AzureAccount,
	}), nil
}

// newShowCmd creates the show command: open a catalog and print its sources.
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <location>",
		Short: "Open a catalog and list its data sources",
		Long: `Open the catalog at a local path or remote URL and print its name,
description, and data sources.

Supported locations:
  /path/to/catalog.yaml         local file
  https://host/catalog.yaml     HTTP(S)
  s3://bucket/key.yaml          Amazon S3
  az://container/blob.yaml      Azure Blob Storage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opener, err := newCatalogOpener()
			if err != nil {
				return err
			}

			cat, err := opener.Open(GetContext(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog:  %s\n", cat.Name)
			if cat.Description != "" {
				fmt.Fprintf(out, "About:    %s\n", cat.Description)
			}
			fmt.Fprintf(out, "Location: %s\n", cat.Location)
			fmt.Fprintf(out, "Sources:  %d\n", len(cat.Sources))
			for _, name := range cat.SourceNames() {
				src := cat.Sources[name]
				fmt.Fprintf(out, "  %-20s %s", name, src.Driver)
				if src.Description != "" {
					fmt.Fprintf(out, "  (%s)", src.Description)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
