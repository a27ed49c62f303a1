// Package cli holds the portfolio-web command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"portfolio-bff/internal/config"
)

// NewRootCommand builds the command tree around cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio-web",
		Short: "Serve the portfolio site and its admin console",
		Long: `portfolio-web renders the public portfolio pages and the admin console
from the content held by the portfolio REST backend.

Run "portfolio-web serve" to start the web server.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "base URL of the portfolio REST backend")

	root.AddCommand(newServeCommand(cfg), newSectionsCommand(cfg))
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(cfg *config.Config) {
	if err := NewRootCommand(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
