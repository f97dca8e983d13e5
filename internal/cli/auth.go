package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/datapantry/pantry-gui/internal/config"
)

// newAuthCmd creates the auth command: store an API token for catalog hosts.
func newAuthCmd() *cobra.Command {
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Store an API token for authenticated catalog hosts",
		Long: `Prompt for an API token and store it with owner-only permissions.
The token file location defaults to ~/.config/pantry-gui/token and can be
overridden with --token-file or the token_file config key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := tokenFile
			if path == "" {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				path = cfg.TokenFile
			}
			if path == "" {
				path = config.DefaultTokenPath()
			}

			token, err := promptToken(cmd)
			if err != nil {
				return err
			}
			if token == "" {
				return fmt.Errorf("empty token")
			}

			if err := config.WriteTokenFile(path, token); err != nil {
				return fmt.Errorf("write token file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token stored in %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFile, "token-file", "", "Path to write the token to")
	return cmd
}

// promptToken reads a token without echo when stdin is a terminal and falls
// back to a plain line read otherwise (pipes, tests).
func promptToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.OutOrStdout(), "API token: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var token string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &token); err != nil {
		return "", err
	}
	return strings.TrimSpace(token), nil
}
