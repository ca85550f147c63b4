package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/heroes-client/internal/app"
	"github.com/vovakirdan/heroes-client/internal/config"
	"github.com/vovakirdan/heroes-client/internal/hero"
	"github.com/vovakirdan/heroes-client/internal/log"
)

type rootOptions struct {
	configPath string
	baseURL    string
	logLevel   string
	timeout    time.Duration

	app *app.App
}

// newRootCmd builds the command tree. Results go to out, diagnostics to diag.
func newRootCmd(out, diag io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "heroes",
		Short: "heroes manages the hero collection of a REST backend",
		Long: `heroes lists, fetches, adds, updates and deletes heroes on a REST backend.

Failed requests never abort a command: the result falls back to an empty value
and the failure is reported in the message log printed after the result.

Configuration can be provided via flags, HEROES_* environment variables, or a
config.yaml file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd, out, diag)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "heroes collection URL")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (0 means none)")

	root.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newAddCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}

func (o *rootOptions) setup(cmd *cobra.Command, out, diag io.Writer) error {
	bootLogger := log.NewWithWriter(diag, o.logLevel)

	cfg, path, err := config.Load(bootLogger, o.configPath, config.Config{
		BaseURL:  o.baseURL,
		LogLevel: o.logLevel,
		Timeout:  o.timeout,
	})
	if err != nil {
		return err
	}

	logger := log.NewWithWriter(diag, cfg.LogLevel)
	logger.Debug().Str("config", path).Str("command", cmd.Name()).Msg("configuration loaded")

	o.app, err = app.New(cfg, logger, out)
	return err
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all heroes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.app.Report(opts.app.Heroes().List(cmd.Context()))
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single hero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.app.Report(opts.app.Heroes().Get(cmd.Context(), id))
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a hero; the server assigns the id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := hero.Hero{Name: strings.Join(args, " ")}
			return opts.app.Report(opts.app.Heroes().Create(cmd.Context(), h))
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Replace a hero's name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			h := hero.Hero{ID: id, Name: strings.Join(args[1:], " ")}
			return opts.app.Report(opts.app.Heroes().Update(cmd.Context(), h))
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a hero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.app.Report(opts.app.Heroes().Delete(cmd.Context(), hero.HeroID(id)))
		},
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid hero id %q", raw)
	}
	return id, nil
}
