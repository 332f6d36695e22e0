// rmate-tray is a menu-bar application that supervises the rmate-server
// helper and keeps the tray menu in step with it. It has no command-line
// surface; runtime knobs come from RMATETRAY_* environment variables.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rmate-tray/internal/config"
	"rmate-tray/internal/logs"
	"rmate-tray/internal/supervisor"
	"rmate-tray/internal/tray"
)

var version = "development" // Set by build flags

func main() {
	settings := config.LoadSettings()

	logger, err := logs.SetupLogger(&config.LogConfig{
		Level:         settings.LogLevel,
		EnableFile:    settings.LogToFile,
		EnableConsole: true,
		Filename:      "tray.log",
		MaxSize:       10,
		MaxBackups:    5,
		MaxAge:        30,
		Compress:      true,
	})
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()

	sugar.Infow("Starting rmate-tray",
		"version", version,
		"settle_delay", settings.SettleDelay,
		"start_on_launch", settings.StartOnLaunch)

	store, err := config.NewStore()
	if err != nil {
		sugar.Fatalw("Failed to resolve preference location", "error", err)
	}
	pref := store.Load()
	sugar.Infow("Loaded preference",
		"path", store.Path(),
		"selected_editor", pref.SelectedEditor)

	binary, err := supervisor.ResolveBinary(settings.ServerPath)
	if err != nil {
		// Not fatal: the tray still comes up and every start attempt will
		// report the missing binary until it is installed.
		sugar.Warnw("Helper binary not found", "error", err)
	} else {
		sugar.Infow("Resolved helper binary", "path", binary)
	}

	sup := supervisor.New(supervisor.Config{
		BinaryPath:  binary,
		ProcessName: supervisor.ServerProcessName,
		SettleDelay: settings.SettleDelay,
	}, sugar)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tray.New(sup, store, sugar, version, settings.StartOnLaunch, cancel)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		sugar.Info("Received shutdown signal")
		app.RequestQuit()
	}()

	if err := app.Run(ctx); err != nil && err != context.Canceled {
		sugar.Errorw("Tray application error", "error", err)
	}

	sugar.Info("rmate-tray shutdown complete")
}
