package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/tracing"
)

// FailureText replaces the whole reply when the model cannot be reached.
const FailureText = "Error: Connection to Neural Core interrupted."

// Commander executes command protocol messages on behalf of the model.
type Commander interface {
	Execute(name string, args map[string]any) (shell.Outcome, error)
}

// Session runs one conversation: it relays user text to the model,
// executes the tool calls in the reply and sends their results back once.
// A session handles one request at a time.
type Session struct {
	chat     Chat
	fs       FileSystem
	commands Commander
	logger   *zap.Logger
	metrics  *monitoring.Metrics

	busy atomic.Bool
}

// NewSession creates a session over chat.
func NewSession(chat Chat, fs FileSystem, commands Commander) *Session {
	return &Session{
		chat:     chat,
		fs:       fs,
		commands: commands,
		logger:   zap.NewNop(),
	}
}

// WithLogger sets the session's logger
func (s *Session) WithLogger(logger *zap.Logger) *Session {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithMetrics adds agent call metrics
func (s *Session) WithMetrics(metrics *monitoring.Metrics) *Session {
	s.metrics = metrics
	return s
}

// Busy reports whether a request is outstanding.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Ask sends message and returns the text to show the user. When the model
// fails, the text is FailureText and the cause is returned alongside it.
// A concurrent call gets ErrBusy and no text.
func (s *Session) Ask(ctx context.Context, message string) (string, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer s.busy.Store(false)

	timer := monitoring.NewTimer(s.metrics)
	text, err := s.exchange(ctx, message)
	elapsed := timer.Stop(err)

	if err != nil {
		tracing.Logger(ctx, s.logger).Error("agent request failed",
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return FailureText, err
	}
	return text, nil
}

func (s *Session) exchange(ctx context.Context, message string) (string, error) {
	reply, err := s.chat.SendMessage(ctx, message)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	text := reply.Text
	if len(reply.FunctionCalls) == 0 {
		return text, nil
	}

	responses := make([]FunctionResponse, 0, len(reply.FunctionCalls))
	for _, call := range reply.FunctionCalls {
		result := map[string]any{"result": "success"}

		if IsCommand(call.Name) {
			_, cmdErr := s.commands.Execute(call.Name, call.Args)
			s.metrics.RecordToolCall(call.Name, toolStatus(cmdErr == nil))
			text += fmt.Sprintf("\n> System: Executing %s...", call.Name)
		} else {
			result = PerformFileAction(s.fs, call.Name, call.Args)
			_, failed := result["error"]
			s.metrics.RecordToolCall(call.Name, toolStatus(!failed))
			text += fmt.Sprintf("\n> FS: %s %s", call.Name, formatArgs(call))
		}

		responses = append(responses, FunctionResponse{ID: call.ID, Name: call.Name, Response: result})
	}

	next, err := s.chat.SendFunctionResponses(ctx, responses)
	if err != nil {
		return "", fmt.Errorf("send function responses: %w", err)
	}
	if next.Text != "" {
		text += "\n" + next.Text
	}
	return text, nil
}

// formatArgs renders call arguments compactly, preferring the raw bytes
// the model sent.
func formatArgs(call FunctionCall) string {
	if len(call.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, call.Raw); err == nil {
			return buf.String()
		}
	}
	if call.Args == nil {
		return "{}"
	}
	data, err := json.Marshal(call.Args)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func toolStatus(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
