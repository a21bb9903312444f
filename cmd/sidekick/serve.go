package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/loykin/sidekick"
	"github.com/loykin/sidekick/internal/logger"
)

func runServe(flags *ServeFlags, args []string) error {
	configPath := flags.ConfigPath
	if len(args) > 0 {
		configPath = args[0]
	}
	if configPath == "" {
		return fmt.Errorf("config file required for serve command. Use --config=sidekick.toml or provide as argument")
	}

	cfg, err := sidekick.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if flags.Daemonize {
		return daemonize(flags.PIDFile, flags.LogFile)
	}

	log := logger.New(os.Stderr, cfg.Log)
	slog.SetDefault(log)

	var sink sidekick.HistorySink
	if cfg.History != nil && cfg.History.Enabled {
		sink, err = sidekick.NewHistorySink(cfg.History.DSN)
		if err != nil {
			return fmt.Errorf("failed to open history sink: %w", err)
		}
		if closer, ok := sink.(io.Closer); ok {
			defer func() { _ = closer.Close() }()
		}
	}

	supv := sidekick.New(cfg.Sidecar.Spec(), sidekick.Options{Logger: log, History: sink})

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		if err := sidekick.RegisterMetricsDefault(); err != nil {
			log.Warn("failed to register metrics", "error", err)
		}
		if cfg.Metrics.Listen != "" {
			go func() {
				if err := sidekick.ServeMetrics(cfg.Metrics.Listen); err != nil {
					log.Error("metrics server error", "error", err)
				}
			}()
		}
	}

	if cfg.Server == nil {
		return fmt.Errorf("server must be configured to run serve command")
	}
	server, err := sidekick.NewHTTPServer(cfg.Server.Listen, cfg.Server.BasePath, supv)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Sidecar.AutoStart {
		supv.AutoStart(ctx, cfg.Sidecar.AutoStartDelay)
	}

	log.Info("sidekick daemon listening",
		"listen", cfg.Server.Listen,
		"base_path", cfg.Server.BasePath,
		"sidecar", cfg.Sidecar.Name)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	cancel()
	if _, err := supv.Stop(); err != nil {
		log.Warn("sidecar stop on shutdown failed", "error", err)
	}
	return server.Close()
}
