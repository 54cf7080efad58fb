package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysdc/internal/codec"
	"github.com/specialistvlad/sysdc/internal/compiler"
	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/graphstore"
	"github.com/specialistvlad/sysdc/internal/hcl_adapter"
	"github.com/specialistvlad/sysdc/internal/viewer"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	store  *graphstore.Store
	server atomic.Pointer[viewer.Server]
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger and an empty snapshot store.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		store:  graphstore.New(),
	}
}

// Store returns the snapshot store. This is primarily for testing.
func (a *App) Store() *graphstore.Store {
	return a.store
}

// ServerAddr returns the bound query server address, or "" when not serving.
func (a *App) ServerAddr() string {
	srv := a.server.Load()
	if srv == nil {
		return ""
	}
	return srv.Addr()
}

// Reload loads and compiles the sources again and installs the result as the
// current snapshot. On failure the previous snapshot stays in place.
func (a *App) Reload(ctx context.Context) (*graphstore.Snapshot, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger

	loader := hcl_adapter.NewLoader()
	raw, err := loader.Load(ctx, a.config.SourcePaths...)
	if err != nil {
		var diags hcl.Diagnostics
		if errors.As(err, &diags) {
			return nil, &SourceError{Diags: diags, Files: loader.Files()}
		}
		return nil, &InputError{Err: err}
	}
	logger.Debug("Sources loaded.", "units", len(raw.Units))

	sys, err := compiler.Compile(ctx, raw)
	if err != nil {
		return nil, err
	}

	snap, err := graphstore.NewSnapshot(sys)
	if err != nil {
		return nil, err
	}
	a.store.Install(ctx, snap)
	return snap, nil
}

// Refresh reloads the sources and, when an export path is configured,
// rewrites the export from the new snapshot. Failures are logged with the
// application logger and returned; the previous snapshot and export stay in
// place.
func (a *App) Refresh(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	snap, err := a.Reload(ctx)
	if err == nil {
		err = a.export(ctx, snap)
	}
	if err != nil {
		a.logger.Error("Reload failed; keeping previous snapshot.", "error", err)
		return err
	}
	a.logger.Info("System reloaded.", "units", len(snap.System.Units), "functions", len(snap.System.Functions()))
	return nil
}

func (a *App) export(ctx context.Context, snap *graphstore.Snapshot) error {
	if a.config.OutPath == "" {
		return nil
	}
	return codec.WriteFile(ctx, a.config.OutPath, snap.System)
}

// publisher returns nil when publishing is not configured.
func (a *App) publisher() *viewer.Publisher {
	if a.config.PublishURL == "" {
		return nil
	}
	return &viewer.Publisher{
		URL:                a.config.PublishURL,
		Namespace:          a.config.PublishNamespace,
		Timeout:            a.config.PublishTimeout,
		InsecureSkipVerify: a.config.PublishInsecure,
	}
}

// Run compiles the sources, writes the export, publishes, and serves queries
// until ctx is cancelled when a serve address is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	snap, err := a.Reload(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("✅ System resolved.", "units", len(snap.System.Units), "functions", len(snap.System.Functions()))

	if err := a.export(ctx, snap); err != nil {
		return err
	}

	if p := a.publisher(); p != nil {
		if err := p.Publish(ctx, snap); err != nil {
			return fmt.Errorf("failed to publish system: %w", err)
		}
	}

	if a.config.ServeAddr == "" {
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	srv := viewer.NewServer(a.store)
	if err := srv.Start(ctx, a.config.ServeAddr); err != nil {
		return err
	}
	a.server.Store(srv)
	<-ctx.Done()
	a.logger.Debug("Context cancelled, stopping.")
	// The run context is already done; shut down on a fresh one.
	if err := srv.Shutdown(ctxlog.WithLogger(context.Background(), a.logger)); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
