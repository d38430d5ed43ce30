package agent

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrBusy is returned while a session still waits on the model.
	ErrBusy = errors.New("agent request already in progress")
	// ErrDisabled is returned when no model endpoint is configured.
	ErrDisabled = errors.New("agent bridge disabled")
)

// FunctionCall is one tool invocation requested by the model.
type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
	// Raw holds the arguments exactly as received, when available, so
	// transcripts keep the model's key order.
	Raw json.RawMessage `json:"-"`
}

// FunctionResponse answers one FunctionCall.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Reply is one model turn: optional text plus any tool calls.
type Reply struct {
	Text          string         `json:"text"`
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
}

// Chat is a stateful conversation with the model. Implementations keep
// the history; callers only send the next turn.
type Chat interface {
	SendMessage(ctx context.Context, text string) (*Reply, error)
	SendFunctionResponses(ctx context.Context, responses []FunctionResponse) (*Reply, error)
}

// Client opens conversations.
type Client interface {
	NewChat() Chat
}

// DisabledClient is the Client used when no endpoint is configured. Every
// chat fails with ErrDisabled.
type DisabledClient struct{}

// NewChat returns a chat that always fails.
func (DisabledClient) NewChat() Chat { return disabledChat{} }

type disabledChat struct{}

func (disabledChat) SendMessage(context.Context, string) (*Reply, error) {
	return nil, ErrDisabled
}

func (disabledChat) SendFunctionResponses(context.Context, []FunctionResponse) (*Reply, error) {
	return nil, ErrDisabled
}
