package terminal

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/ros/backend/internal/domain/agent"
)

// Role marks who produced a transcript line.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// MaxHistory bounds a session transcript; older lines are dropped.
const MaxHistory = 1000

// Message is one transcript line.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Output is what one line of input produced.
type Output struct {
	Messages []Message `json:"messages"`
	Cleared  bool      `json:"cleared,omitempty"`
	Cwd      string    `json:"cwd"`
}

// Session is one terminal window: a working directory, a transcript and
// an optional conversation with the agent.
type Session struct {
	ID        string
	StartedAt time.Time

	agent *agent.Session
	busy  atomic.Bool

	mu      sync.RWMutex
	cwd     string
	history []Message
}

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID        string    `json:"id"`
	Cwd       string    `json:"cwd"`
	Messages  int       `json:"messages"`
	Busy      bool      `json:"busy"`
	StartedAt time.Time `json:"started_at"`
}

func (s *Session) info() SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionInfo{
		ID:        s.ID,
		Cwd:       s.cwd,
		Messages:  len(s.history),
		Busy:      s.busy.Load(),
		StartedAt: s.StartedAt,
	}
}

// Cwd returns the working directory.
func (s *Session) Cwd() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cwd
}

// History returns a copy of the transcript.
func (s *Session) History() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.history...)
}

func (s *Session) append(out *Output, role Role, text string) {
	msg := Message{Role: role, Text: text}
	out.Messages = append(out.Messages, msg)

	s.mu.Lock()
	s.history = append(s.history, msg)
	if over := len(s.history) - MaxHistory; over > 0 {
		s.history = append(s.history[:0:0], s.history[over:]...)
	}
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

func (s *Session) setCwd(path string) {
	s.mu.Lock()
	s.cwd = path
	s.mu.Unlock()
}
