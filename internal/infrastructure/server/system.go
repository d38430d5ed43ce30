package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/agent"
	"github.com/GriffinCanCode/ros/backend/internal/domain/agent/remote"
	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/domain/registry"
	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ros/backend/internal/domain/window"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/storage"
	"github.com/GriffinCanCode/ros/backend/internal/providers/browser"
	"github.com/GriffinCanCode/ros/backend/internal/providers/editor"
	"github.com/GriffinCanCode/ros/backend/internal/providers/editor/sandbox"
	"github.com/GriffinCanCode/ros/backend/internal/providers/explorer"
	"github.com/GriffinCanCode/ros/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/ros/backend/internal/providers/monitor"
	"github.com/GriffinCanCode/ros/backend/internal/providers/settings"
	"github.com/GriffinCanCode/ros/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/ros/backend/internal/service"
)

// System is the desktop assembled from configuration, without any
// transport. The HTTP server and rosh both run on one.
type System struct {
	Bus       *events.Bus
	Store     storage.Store
	FS        *vfs.FileSystem
	Apps      *registry.Manager
	Shell     *shell.Shell
	Terminals *terminal.Manager
	Services  *service.Registry
	Settings  *settings.Provider
	Monitor   *monitor.Provider
	Editor    *editor.Provider
	// Agent is nil when AGENT_ENDPOINT is unset.
	Agent   *remote.Client
	Metrics *monitoring.Metrics

	config *config.Config
	logger *logging.Logger
}

// NewSystem opens the configured store, loads the file system and wires
// the shell, terminals and every application provider.
func NewSystem(ctx context.Context, cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) (*System, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}

	store, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	bus := events.NewBus()
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
	defer cancel()
	fs, err := vfs.New(loadCtx,
		vfs.WithStore(store, cfg.Storage.Key),
		vfs.WithPersistTimeout(cfg.Storage.Timeout),
		vfs.WithBus(bus),
		vfs.WithLogger(logger.Component("vfs")),
		vfs.WithMetrics(metrics),
	)
	if err != nil {
		store.Close()
		return nil, err
	}

	apps := registry.Default()
	windows := window.NewManager(apps).
		WithBus(bus).
		WithLogger(logger.Component("windows")).
		WithMetrics(metrics)
	desktop := shell.NewDesktop(cfg.Desktop.InitialWallpaper).WithBus(bus)
	sh := shell.New(windows, desktop).
		WithLogger(logger.Component("shell")).
		WithMetrics(metrics)
	sh.Attach(bus)

	sys := &System{
		Bus:     bus,
		Store:   store,
		FS:      fs,
		Apps:    apps,
		Shell:   sh,
		Metrics: metrics,
		config:  cfg,
		logger:  logger,
	}

	// A nil *remote.Client must not become a non-nil agent.Client.
	var agents agent.Client
	if cfg.Agent.Endpoint != "" {
		sys.Agent = remote.New(remote.Options{
			Endpoint:          cfg.Agent.Endpoint,
			APIKey:            cfg.Agent.APIKey,
			Model:             cfg.Agent.Model,
			Timeout:           cfg.Agent.Timeout,
			Retries:           cfg.Agent.Retries,
			SystemInstruction: agent.SystemInstruction,
			Declarations:      agent.Declarations(appIDs(apps)),
			Logger:            logger.Component("agent"),
		})
		agents = sys.Agent
		logger.Info("Agent bridge enabled",
			zap.String("endpoint", cfg.Agent.Endpoint),
			zap.String("model", cfg.Agent.Model))
	} else {
		logger.Info("Agent bridge disabled; unknown terminal input reports command not found")
	}

	sys.Terminals = terminal.NewManager(fs, agents, sh).
		WithLogger(logger.Component("terminal")).
		WithMetrics(metrics)

	if err := sys.registerProviders(); err != nil {
		sys.Close()
		return nil, err
	}
	return sys, nil
}

func appIDs(apps *registry.Manager) []string {
	entries := apps.List()
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func (s *System) registerProviders() error {
	ed, err := editor.NewProvider(s.FS, sandbox.DefaultConfig())
	if err != nil {
		return err
	}
	s.Editor = ed.WithLogger(s.logger.Logger)
	s.Monitor = monitor.NewProvider(monitor.NewSampler(s.config.Monitor.Window))
	s.Settings = settings.NewProvider(s.FS, s.Shell.Desktop(), s.Shell).
		WithLogger(s.logger.Logger)

	s.Services = service.NewRegistry()
	providers := []service.Provider{
		filesystem.NewProvider(s.FS),
		explorer.NewProvider(s.FS, s.Shell).WithLogger(s.logger.Logger),
		s.Editor,
		browser.NewProvider(s.FS),
		s.Monitor,
		s.Settings,
		terminal.NewProvider(s.Terminals),
	}
	for _, p := range providers {
		if err := s.Services.Register(p); err != nil {
			return fmt.Errorf("register %s provider: %w", p.Definition().ID, err)
		}
	}

	stats := s.Services.Stats()
	s.logger.Info("Service providers registered",
		zap.Int("services", stats.TotalServices),
		zap.Int("tools", stats.TotalTools))
	return nil
}

// Start begins background work: resource sampling.
func (s *System) Start() {
	s.Monitor.Start(s.config.Monitor.Interval)
}

// Close stops background work and releases the store. The tree is
// persisted on every mutation, so nothing is flushed here.
func (s *System) Close() error {
	if s.Monitor != nil {
		s.Monitor.Stop()
	}
	if s.Editor != nil {
		if err := s.Editor.Close(); err != nil {
			s.logger.Warn("Failed to close sandbox pool", zap.Error(err))
		}
	}
	s.Shell.Detach()
	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("close %s storage: %w", s.Store.Type(), err)
	}
	return nil
}
