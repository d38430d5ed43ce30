package shell

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/domain/window"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
)

// Outcome reports what a dispatched command did. Ignored commands come
// back with Applied false and no error.
type Outcome struct {
	Command   string `json:"command"`
	Applied   bool   `json:"applied"`
	WindowID  string `json:"windowId,omitempty"`
	Wallpaper string `json:"wallpaper,omitempty"`
}

// Shell routes the command protocol into the window manager and desktop
// state, and resets both when the system is reinitialized.
type Shell struct {
	windows *window.Manager
	desktop *Desktop
	logger  *zap.Logger
	metrics *monitoring.Metrics

	mu     sync.Mutex
	cancel func()
}

// New creates a shell over windows and desktop.
func New(windows *window.Manager, desktop *Desktop) *Shell {
	return &Shell{
		windows: windows,
		desktop: desktop,
		logger:  zap.NewNop(),
	}
}

// WithLogger sets the shell's logger
func (s *Shell) WithLogger(logger *zap.Logger) *Shell {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithMetrics adds command counters
func (s *Shell) WithMetrics(metrics *monitoring.Metrics) *Shell {
	s.metrics = metrics
	return s
}

// Windows returns the window manager
func (s *Shell) Windows() *window.Manager { return s.windows }

// Desktop returns the desktop state
func (s *Shell) Desktop() *Desktop { return s.desktop }

// Attach subscribes the shell to system reinitialization on bus. Calling it
// again moves the subscription.
func (s *Shell) Attach(bus *events.Bus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = bus.Subscribe(func(ev events.Event) {
		if ev.Type != events.SystemReinitialized {
			return
		}
		s.logger.Info("system reinitialized, resetting desktop", zap.String("op", ev.Op))
		s.windows.Reset()
		s.desktop.Reset()
	})
}

// Detach drops the reinitialization subscription.
func (s *Shell) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Execute decodes and dispatches one loosely typed command. Unknown or
// malformed commands are logged, counted and ignored; the decode error is
// still returned so callers that care can report it.
func (s *Shell) Execute(name string, args map[string]any) (Outcome, error) {
	cmd, err := Decode(name, args)
	if err != nil {
		s.logger.Debug("ignoring command", zap.String("command", name), zap.Error(err))
		label := name
		if errors.Is(err, ErrUnknownCommand) {
			label = "unknown"
		}
		s.metrics.RecordCommand(label, err)
		return Outcome{Command: name}, err
	}
	return s.Dispatch(cmd), nil
}

// Dispatch applies a decoded command.
func (s *Shell) Dispatch(cmd Command) Outcome {
	out := Outcome{Command: cmd.Name()}

	switch c := cmd.(type) {
	case OpenApp:
		var props map[string]any
		if c.FilePath != "" {
			props = map[string]any{"filePath": c.FilePath}
		}
		if win, ok := s.windows.Open(c.AppID, props); ok {
			out.Applied = true
			out.WindowID = win.ID
		}
	case CloseApp:
		if c.Target == TargetActive {
			out.WindowID, out.Applied = s.windows.CloseActive()
		}
	case ChangeWallpaper:
		out.Wallpaper = s.desktop.ChangeWallpaper()
		out.Applied = true
	}

	s.metrics.RecordCommand(out.Command, nil)
	s.logger.Debug("dispatched command",
		zap.String("command", out.Command),
		zap.Bool("applied", out.Applied),
		zap.String("window_id", out.WindowID))
	return out
}
