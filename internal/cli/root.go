// any-notify - Portable desktop notifications
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/any-notify

// Package cli provides the Cobra-based command line for any-notify: flag
// parsing, configuration resolution, and mapping dispatch results to exit codes.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/any-notify/internal/config"
	"github.com/ariel-frischer/any-notify/internal/notify"
	"github.com/spf13/cobra"
)

// runtimeEnv bundles the process-level collaborators the command talks to
type runtimeEnv struct {
	runner      notify.Runner
	environ     notify.Environ
	queryServer func(notify.Environ) (*notify.ServerInfo, error)
}

func osRuntime() runtimeEnv {
	return runtimeEnv{
		runner:      notify.ExecRunner{},
		environ:     notify.OSEnviron(),
		queryServer: notify.QueryServer,
	}
}

// rootFlags holds raw flag values; only flags the user changed are applied
// on top of the configuration.
type rootFlags struct {
	configPath   string
	title        string
	urgency      string
	icon         string
	timeoutMS    int
	backend      string
	verbose      bool
	listBackends bool
}

func newRootCmd(rt runtimeEnv) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "any-notify <message>",
		Short: "Send a desktop notification in a portable way",
		Long: `Send a desktop notification in a portable way.

Backends are tried in order until one succeeds: notify-send, gdbus, a
PowerShell popup (WSL only), and finally a line on stdout. Use --backend
to force one; a forced backend that fails exits with status 1.`,
		Example: `  # Notify with defaults
  any-notify "Build finished"

  # Critical notification with title and icon, shown for 10 seconds
  any-notify -t "CI" -u critical -i dialog-error -T 10000 "Tests failed"

  # Force the D-Bus backend and explain failures
  any-notify -b message-bus -v "hello"

  # See what this host supports
  any-notify --list-backends`,
		Args: func(cmd *cobra.Command, args []string) error {
			if f.listBackends {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rt, &f, args)
		},
	}

	cmd.SetVersionTemplate(versionTemplate())

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "Path to a config file (.toml or .json)")
	flags.StringVarP(&f.title, "title", "t", notify.AppName, "Notification title")
	flags.StringVarP(&f.urgency, "urgency", "u", string(notify.UrgencyNormal), "Urgency level: low, normal or critical")
	flags.StringVarP(&f.icon, "icon", "i", "", "Icon name or absolute path")
	flags.IntVarP(&f.timeoutMS, "timeout", "T", 0, "Timeout in milliseconds (backend dependent)")
	flags.StringVarP(&f.backend, "backend", "b", string(notify.Auto),
		"Backend: auto, native-daemon, message-bus, compat-popup or text-fallback")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log backend attempts to stderr")
	flags.BoolVar(&f.listBackends, "list-backends", false, "List backends and whether they are usable here, then exit")

	return cmd
}

// overrides returns the config keys for flags the user set explicitly.
func (f *rootFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	out := make(map[string]interface{})
	changed := cmd.Flags().Changed
	if changed("title") {
		out["title"] = f.title
	}
	if changed("urgency") {
		out["urgency"] = f.urgency
	}
	if changed("icon") {
		out["icon"] = f.icon
	}
	if changed("timeout") {
		out["timeout_ms"] = f.timeoutMS
	}
	if changed("backend") {
		out["backend"] = f.backend
	}
	if changed("verbose") {
		out["verbose"] = f.verbose
	}
	return out
}

func run(cmd *cobra.Command, rt runtimeEnv, f *rootFlags, args []string) error {
	cfg, err := config.Load(f.configPath, f.overrides(cmd))
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	profile := notify.Detect(rt.environ)
	backends := notify.DefaultBackends(rt.runner, profile, cmd.OutOrStdout())

	logger.Debug().Bool("wsl", profile.CompatLayer).Str("backend", cfg.Backend).Msg("resolved configuration")

	if f.listBackends {
		return listBackends(cmd.OutOrStdout(), rt, backends)
	}

	req, err := newRequest(cfg, args[0])
	if err != nil {
		return err
	}
	sel, err := notify.ParseSelector(cfg.Backend)
	if err != nil {
		return err
	}

	d := notify.NewDispatcher(profile, backends, notify.WithLogger(logger))
	out, err := d.Dispatch(req, sel)
	if err != nil {
		ev := logger.Warn().Err(err).Int("attempts", len(out.Attempts))
		var ae *notify.AttemptError
		if errors.As(err, &ae) {
			ev = ev.Str("backend", string(ae.Backend)).Stringer("kind", ae.Kind)
		}
		ev.Msg("notification not delivered")
		return NewExitError(ExitBackendFailed)
	}

	logger.Debug().Str("backend", string(out.Delivered)).Int("attempts", len(out.Attempts)).Msg("notification sent")
	return nil
}

func newRequest(cfg *config.Configuration, body string) (notify.Request, error) {
	opts := []notify.RequestOption{
		notify.WithTitle(cfg.Title),
		notify.WithUrgency(notify.Urgency(cfg.Urgency)),
		notify.WithIcon(cfg.Icon),
	}
	if cfg.TimeoutMS != nil {
		opts = append(opts, notify.WithTimeout(*cfg.TimeoutMS))
	}
	return notify.NewRequest(body, opts...)
}

// Execute runs the root command. The returned error carries the process exit
// code; see ExitCode.
func Execute() error {
	return execute(newRootCmd(osRuntime()), os.Args[1:])
}

func execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	return NewExitError(ExitInvalidArguments)
}
