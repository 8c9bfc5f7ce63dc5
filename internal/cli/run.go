package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"showcase/internal/discovery"
	"showcase/internal/eventbus"
	"showcase/internal/logging"
	"showcase/internal/ui"
	"showcase/internal/watcher"
)

// runGallery starts the interactive gallery
func runGallery(ctx context.Context, opts *options, args []string) error {
	cfg, cfgPath, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logCloser, err := logging.Init(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger := logging.Logger("cli")
	logger.Info().Str("config", cfgPath).Str("dir", cfg.ExamplesDir).Msg("starting")

	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}
	examples, err := loader.Load(ctx, cfg.ExamplesDir)
	if err != nil {
		return fmt.Errorf("failed to load examples: %w", err)
	}

	initial := cfg.Initial
	if len(args) > 0 {
		initial = args[0]
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	model := ui.NewModel(bus, cfg, examples, initial)

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, programOpts...)

	// Forward the events the screen cares about
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventCatalogLoaded, forward)
	bus.Subscribe(eventbus.EventError, forward)

	bus.Subscribe(eventbus.EventExampleChosen, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ExampleChosenEvent); ok {
			logger.Debug().Str("example", ev.Slug).Str("via", ev.Via).Msg("viewing")
		}
	})
	bus.Subscribe(eventbus.EventDemoFinished, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.DemoFinishedEvent); ok && ev.Err != nil {
			logger.Warn().Err(ev.Err).Str("example", ev.Slug).Msg("demo failed")
		}
	})

	if cfg.UI.Watch {
		discoverySvc := discovery.NewDiscoveryService(bus, loader)
		defer discoverySvc.StopLoad()

		w := watcher.New(cfg.ExamplesDir, bus, 0)
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("watcher stopped")
				bus.Publish(eventbus.ErrorEvent{Message: "watcher stopped", Err: err})
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info().Msg("exiting")
	return nil
}
