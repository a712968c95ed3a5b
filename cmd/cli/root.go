package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/client/api"
	"github.com/dmitrijs2005/movieapi/internal/client/cli"
	"github.com/dmitrijs2005/movieapi/internal/client/config"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	serverURL  string
	timeout    time.Duration
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "movieapi-cli",
		Short:        "Interactive client for the movieapi server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			cli.NewApp(cfg).Run(cmd.Context())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&f.configFile, "config", "c", "", "config file path")
	cmd.PersistentFlags().StringVarP(&f.serverURL, "server", "a", "", "server base URL")
	cmd.PersistentFlags().DurationVarP(&f.timeout, "timeout", "t", 0, "request timeout")

	cmd.AddCommand(newHealthCmd(f))
	cmd.AddCommand(newMoviesCmd(f))

	return cmd
}

// load applies explicitly set flags on top of the file and environment.
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = f.serverURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.RequestTimeout = f.timeout
	}
	return cfg, nil
}

func (f *rootFlags) client(cmd *cobra.Command) (*api.Client, context.Context, error) {
	cfg, err := f.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(cfg.ServerURL, cfg.RequestTimeout), cmd.Context(), nil
}

func newHealthCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server and its database are up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, ctx, err := f.client(cmd)
			if err != nil {
				return err
			}
			if err := c.Health(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func newMoviesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "List the movie catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, ctx, err := f.client(cmd)
			if err != nil {
				return err
			}
			list, err := c.Movies(ctx)
			if err != nil {
				return err
			}
			for _, m := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", m.ID, m.Title, m.ReleaseDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}
