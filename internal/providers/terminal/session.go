package terminal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/agent"
	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/shared/id"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

var (
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrBusy is returned while the session waits on the agent.
	ErrBusy = errors.New("session is processing a request")
)

// FileSystem is what the terminal needs from the virtual file system.
type FileSystem interface {
	agent.FileSystem
	Stat(path string) (vfs.NodeInfo, bool)
	MakeDir(path string) bool
	Delete(path string) bool
}

// Manager manages terminal sessions
type Manager struct {
	sessions sync.Map // map[string]*Session

	fs       FileSystem
	agents   agent.Client
	commands agent.Commander
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewManager creates a session manager. agents may be nil, in which case
// unrecognized input is reported as an unknown command.
func NewManager(fs FileSystem, agents agent.Client, commands agent.Commander) *Manager {
	return &Manager{
		fs:       fs,
		agents:   agents,
		commands: commands,
		logger:   zap.NewNop(),
	}
}

// WithLogger sets the manager's logger
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithMetrics adds command and agent metrics
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// CreateSession opens a session in the user's home with the greeting as
// its first line.
func (m *Manager) CreateSession() SessionInfo {
	sess := &Session{
		ID:        id.NewTerminalID().String(),
		StartedAt: time.Now(),
		cwd:       paths.User,
		history:   []Message{{Role: RoleModel, Text: Greeting}},
	}
	if m.agents != nil {
		sess.agent = agent.NewSession(m.agents.NewChat(), m.fs, m.commands).
			WithLogger(m.logger).
			WithMetrics(m.metrics)
	}

	m.sessions.Store(sess.ID, sess)
	m.logger.Debug("terminal session created", zap.String("session_id", sess.ID))
	return sess.info()
}

// Input runs one line typed into sessionID. Blank lines do nothing.
// Built-in commands run locally; anything else goes to the agent.
func (m *Manager) Input(ctx context.Context, sessionID, line string) (Output, error) {
	sess, err := m.get(sessionID)
	if err != nil {
		return Output{}, err
	}
	if strings.TrimSpace(line) == "" {
		return Output{Cwd: sess.Cwd()}, nil
	}
	if !sess.busy.CompareAndSwap(false, true) {
		return Output{}, ErrBusy
	}
	defer sess.busy.Store(false)

	var out Output
	sess.append(&out, RoleUser, line)

	cmd, args := parse(line)
	if m.runLocal(sess, &out, cmd, args) {
		m.metrics.RecordCommand("terminal."+cmd, nil)
		out.Cwd = sess.Cwd()
		return out, nil
	}

	if sess.agent == nil {
		sess.append(&out, RoleModel, fmt.Sprintf("command not found: %s", cmd))
		out.Cwd = sess.Cwd()
		return out, nil
	}

	// The agent answers with FailureText on error; the cause is only logged.
	text, err := sess.agent.Ask(ctx, line)
	if err != nil && errors.Is(err, agent.ErrBusy) {
		return out, ErrBusy
	}
	sess.append(&out, RoleModel, text)
	out.Cwd = sess.Cwd()
	return out, nil
}

// Session returns a live session
func (m *Manager) Session(sessionID string) (*Session, error) {
	return m.get(sessionID)
}

// GetSession retrieves session info
func (m *Manager) GetSession(sessionID string) (SessionInfo, error) {
	sess, err := m.get(sessionID)
	if err != nil {
		return SessionInfo{}, err
	}
	return sess.info(), nil
}

// ListSessions returns all sessions ordered by start time
func (m *Manager) ListSessions() []SessionInfo {
	var sessions []SessionInfo
	m.sessions.Range(func(_, value any) bool {
		sessions = append(sessions, value.(*Session).info())
		return true
	})
	slices.SortFunc(sessions, func(a, b SessionInfo) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sessions
}

// Kill ends a session. An outstanding agent request still completes but
// its reply goes nowhere.
func (m *Manager) Kill(sessionID string) error {
	if _, loaded := m.sessions.LoadAndDelete(sessionID); !loaded {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

func (m *Manager) get(sessionID string) (*Session, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return value.(*Session), nil
}
