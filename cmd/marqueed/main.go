// Package main is the entry point for the marqueed banner daemon.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/marqueekit/marquee/internal/config"
	"github.com/marqueekit/marquee/internal/daemon"
)

const appID = "io.github.marqueekit.marqueed"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/marquee/marqueed.toml)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("marqueed version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting marqueed", "version", version)

	path := *configPath
	if path == "" {
		var err error
		path, err = config.DaemonConfigPath()
		if err != nil {
			logger.Warn("failed to resolve config path, hot reload disabled", "error", err)
			path = ""
		}
	}

	cfg, err := config.LoadDaemonConfig(path)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app := adw.NewApplication(appID, 0)

	var (
		d       *daemon.Daemon
		running atomic.Bool
	)

	// Signals shut the daemon down inside the GTK main loop context
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		glib.IdleAdd(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		d = daemon.New(cfg, path, logger)
		if err := d.Start(&app.Application); err != nil {
			logger.Error("failed to start daemon", "error", err)
			app.Quit()
			return
		}

		// A hidden window keeps the application alive while no banner
		// is on screen (GTK apps quit when all windows are closed)
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		if running.Load() {
			d.Stop()
			running.Store(false)
		}
	})

	status := app.Run(os.Args)
	os.Exit(status)
}
