package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"portfolio-bff/internal/config"
	"portfolio-bff/internal/models"
	"portfolio-bff/internal/sections"
	"portfolio-bff/internal/services"
)

func newSectionsCommand(cfg *config.Config) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Inspect and change which sections the site shows",
	}
	cmd.PersistentFlags().StringVar(&token, "token", "", "admin bearer token; prompts for credentials when empty")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every section and whether it is shown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := services.NewAPI(services.NewServiceClient(cfg))
			all, err := api.Sections.GetAll(cmd.Context())
			if err != nil {
				return pkgerrors.Wrap(err, "list sections")
			}
			return printSections(cmd.OutOrStdout(), all)
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <name>",
		Short: "Show a hidden section or hide a shown one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := services.NewAPI(services.NewServiceClient(cfg))
			ctx, err := authenticate(cmd, api, token)
			if err != nil {
				return err
			}
			sec, err := api.Sections.Toggle(ctx, args[0])
			if err != nil {
				return pkgerrors.Wrapf(err, "toggle %s", args[0])
			}
			state := "hidden"
			if sec.IsEnabled {
				state = "shown"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", sections.Label(sec.Name), state)
			return err
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

// authenticate returns a context carrying an admin token, logging in
// interactively when none was given.
func authenticate(cmd *cobra.Command, api *services.API, token string) (context.Context, error) {
	ctx := cmd.Context()
	if token != "" {
		return services.WithToken(ctx, token), nil
	}

	out := cmd.ErrOrStderr()
	email, err := prompt(bufio.NewReader(cmd.InOrStdin()), out, "Email")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read email")
	}
	password, err := promptPassword(out)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read password")
	}

	resp, err := api.Auth.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "login")
	}
	return services.WithToken(ctx, resp.Token), nil
}

func printSections(w io.Writer, all []models.Section) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tSTATUS")
	for _, s := range all {
		status := "hidden"
		if s.IsEnabled {
			status = "shown"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, sections.Label(s.Name), status)
	}
	return tw.Flush()
}
