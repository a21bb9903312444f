package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GlobalFlags holds persistent flags shared by all commands.
type GlobalFlags struct {
	ConfigPath string
}

// APIFlags holds daemon connection flags for the client commands.
type APIFlags struct {
	URL     string
	Timeout time.Duration
}

// ServeFlags holds flags for the serve command.
type ServeFlags struct {
	ConfigPath string
	Daemonize  bool
	PIDFile    string
	LogFile    string
}

func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}

	root := &cobra.Command{
		Use:   "sidekick",
		Short: "Sidecar process supervision daemon",
		Long: `Sidekick supervises a single companion ("sidecar") process for a host
application: start it, stop it, and report whether it is alive.

Examples:
  sidekick serve --config=sidekick.toml   # Start the daemon
  sidekick start                          # Ask the daemon to start the sidecar
  sidekick status                         # Show sidecar status
  sidekick stop --api-url=http://remote:8080/api`,
	}

	root.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", "", "path to TOML config file")

	root.AddCommand(
		createServeCommand(globalFlags),
		createStartCommand(),
		createStopCommand(),
		createStatusCommand(),
	)

	return root
}

func createServeCommand(globalFlags *GlobalFlags) *cobra.Command {
	serveFlags := &ServeFlags{}

	cmd := &cobra.Command{
		Use:   "serve [config.toml]",
		Short: "Start the sidekick daemon",
		Long: `Start the sidekick daemon: load the config, supervise the configured
sidecar, and expose the HTTP control API.

Examples:
  sidekick serve --config=sidekick.toml
  sidekick serve sidekick.toml
  sidekick serve sidekick.toml --daemonize --pidfile=/run/sidekick.pid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			serveFlags.ConfigPath = globalFlags.ConfigPath
			return runServe(serveFlags, args)
		},
	}

	cmd.Flags().BoolVar(&serveFlags.Daemonize, "daemonize", false, "run as daemon in background")
	cmd.Flags().StringVar(&serveFlags.PIDFile, "pidfile", "", "write daemon PID to file")
	cmd.Flags().StringVar(&serveFlags.LogFile, "logfile", "", "redirect daemon logs to file")

	return cmd
}

func createStartCommand() *cobra.Command {
	apiFlags := &APIFlags{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the sidecar",
		Long: `Ask a running sidekick daemon to start the sidecar.
Starting an already-running sidecar is a no-op.

Examples:
  sidekick start
  sidekick start --api-url=http://remote:8080/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(*apiFlags)
		},
	}
	addAPIFlags(cmd, apiFlags)
	return cmd
}

func createStopCommand() *cobra.Command {
	apiFlags := &APIFlags{}

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the sidecar",
		Long: `Ask a running sidekick daemon to stop the sidecar.
Stopping when nothing is running is a no-op.

Examples:
  sidekick stop
  sidekick stop --api-url=http://remote:8080/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop(*apiFlags)
		},
	}
	addAPIFlags(cmd, apiFlags)
	return cmd
}

func createStatusCommand() *cobra.Command {
	apiFlags := &APIFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show sidecar status",
		Long: `Show whether the daemon currently tracks a live sidecar.

Examples:
  sidekick status
  sidekick status --api-url=http://remote:8080/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(*apiFlags)
		},
	}
	addAPIFlags(cmd, apiFlags)
	return cmd
}

func addAPIFlags(cmd *cobra.Command, flags *APIFlags) {
	cmd.Flags().StringVar(&flags.URL, "api-url", "", "daemon URL (default http://localhost:8080/api)")
	cmd.Flags().DurationVar(&flags.Timeout, "api-timeout", 10*time.Second, "request timeout")
}
