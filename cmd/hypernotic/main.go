package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hypernotic/bridge"
	"hypernotic/config"
	"hypernotic/events"
	"hypernotic/logging"
	"hypernotic/menu"
	"hypernotic/metric"
	"hypernotic/plugins"
	"hypernotic/preview"
	"hypernotic/ui"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hypernotic: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultPath, err := config.Path()
	if err != nil {
		defaultPath = ""
	}
	configPath := flag.String("config", defaultPath, "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, version)
	log.Info().Str("config", *configPath).Str("emit_policy", cfg.EmitPolicy).Msg("starting")

	a := app.NewWithID(cfg.AppID)
	window := ui.New(a, cfg, version, log)

	registry := plugins.NewRegistry()
	for _, p := range []plugins.Plugin{
		plugins.NewClipboard(),
		plugins.NewFS(),
		plugins.NewDialogs(),
		plugins.NewShell(cfg.Shell.Allow),
	} {
		if err := registry.Register(p); err != nil {
			return fmt.Errorf("register plugin: %w", err)
		}
	}
	if err := registry.InitAll(&plugins.Host{App: a, Window: window.Window(), Logger: log}); err != nil {
		return err
	}
	log.Info().Strs("plugins", registry.Names()).Msg("plugins ready")

	bus := events.NewBus(events.DefaultQueueSize)
	bus.SetLogger(log)
	defer bus.Close()

	tree, err := menu.Build()
	if err != nil {
		return fmt.Errorf("build menu: %w", err)
	}

	metrics := metric.NewMenuMetrics()
	dispatcher, err := menu.NewDispatcher(menu.Context{
		Emitter:      bus,
		Exiter:       menu.ExitFunc(exiter(log)),
		Logger:       log,
		Policy:       cfg.Policy(),
		Activations:  metrics.Activations,
		EmitFailures: metrics.EmitFailures,
	}, tree)
	if err != nil {
		return err
	}

	err = window.Start(ui.Bindings{
		Bus:      bus,
		Tree:     dispatcher.Tree(),
		Activate: dispatcher.Activate,
		Plugins:  registry,
		Recent:   plugins.NewRecentDirs(a.Preferences(), cfg.RecentDirsLimit),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Bridge.Addr != "" {
		srv := bridge.New(cfg.Bridge.Addr, bus, preview.NewRenderer(),
			bridge.WithLogger(log),
			bridge.WithMetrics(metrics.Registry),
		)
		g.Go(func() error {
			if err := srv.Serve(gCtx); err != nil {
				log.Error().Err(err).Msg("bridge stopped")
				return err
			}
			return nil
		})
	}

	window.Run()

	cancel()
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("bridge exited with error")
	}
	log.Info().Msg("bye")
	return nil
}

// exiter terminates the process right away, the way the Exit menu item expects.
func exiter(log zerolog.Logger) func(code int) {
	return func(code int) {
		log.Info().Int("code", code).Msg("exiting")
		os.Exit(code)
	}
}
