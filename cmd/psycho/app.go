package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/logical-psycho/internal/config"
	"github.com/vovakirdan/logical-psycho/internal/core"
	"github.com/vovakirdan/logical-psycho/internal/levels"
	"github.com/vovakirdan/logical-psycho/internal/platform/tui"
	"github.com/vovakirdan/logical-psycho/internal/registry"
	"github.com/vovakirdan/logical-psycho/internal/storage"
)

// app bundles what every command builds from the global flags.
type app struct {
	logger  *log.Logger
	logFile *os.File
	cfg     config.PsychoConfig
	catalog *registry.Catalog
	loader  *levels.Loader // nil without --levels
}

// newApp loads config and levels according to the global flags.
func newApp() (*app, error) {
	a := &app{}
	if err := a.initLogger(); err != nil {
		return nil, err
	}

	cfg, src, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Movement.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "source", src, "difficulty", cfg.Difficulty.Preset)

	builtin, err := levels.Builtin(cfg.LevelDefaults())
	if err != nil {
		return nil, err
	}
	a.catalog = registry.NewCatalog(builtin...)

	if flagLevelsDir != "" {
		a.loader = levels.NewLoader(flagLevelsDir, cfg.LevelDefaults())
		extra, bad, err := a.loader.Scan()
		if err != nil {
			return nil, err
		}
		for _, fe := range bad {
			a.logger.Warn("skipping level file", "path", fe.Path, "error", fe.Err)
		}
		for _, l := range extra {
			if err := a.catalog.Register(l); err != nil {
				a.logger.Warn("skipping level", "path", l.FilePath, "error", err)
			}
		}
		a.logger.Debug("levels loaded", "dir", flagLevelsDir, "count", len(extra))
	}
	return a, nil
}

func (a *app) initLogger() error {
	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		a.logFile = f
		w = f
	}
	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "psycho",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	a.logger.SetLevel(level)
	return nil
}

// quietForTUI stops stderr logging while the alternate screen is active.
func (a *app) quietForTUI() {
	if a.logFile == nil {
		a.logger.SetOutput(io.Discard)
	}
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// openStore opens the progress database. Failure is logged and play
// continues without persistence.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.logger.Warn("could not open progress database", "error", err)
		return nil
	}
	return store
}

func (a *app) progress(store *storage.Store) *tui.Progress {
	return &tui.Progress{
		Catalog: a.catalog,
		Store:   store,
		Options: a.cfg.Options(),
		Logger:  a.logger,
	}
}

// runtimeConfig sizes the screen from the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = a.cfg.Movement.TickRate
	cfg.Seed = flagSeed
	return cfg
}

// watchLevels hot-reloads the --levels directory into the catalog until ctx
// is done. It is a no-op without --levels.
func (a *app) watchLevels(ctx context.Context) {
	if a.loader == nil {
		return
	}
	w, err := levels.NewWatcher(a.logger, flagLevelsDir)
	if err != nil {
		a.logger.Warn("level hot reload disabled", "error", err)
		return
	}
	go func() {
		<-ctx.Done()
		w.Close()
	}()
	go func() {
		for err := range w.Errors {
			a.logger.Warn("level watcher error", "error", err)
		}
	}()
	go a.catalog.Follow(ctx, w.Events, a.loader.LoadFile, a.logger)
}

// fail prints an error in the CLI's format and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
