package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/agent"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/tracing"
)

// ErrEmptyReply is returned when the model answers with no candidates.
var ErrEmptyReply = errors.New("model returned no candidates")

// StatusError is a non-2xx answer from the model endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model endpoint returned %d: %s", e.Code, e.Body)
}

// Options configures the remote client.
type Options struct {
	Endpoint          string
	APIKey            string
	Model             string
	Timeout           time.Duration
	Retries           int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	SystemInstruction string
	Declarations      []agent.Declaration
	Logger            *zap.Logger
}

// Client talks to a generateContent-style function-calling endpoint.
type Client struct {
	http    *resty.Client
	breaker *resilience.Breaker
	opts    Options
	logger  *zap.Logger
}

// New creates a client. Transient failures (connection errors, 429, 5xx)
// are retried by the transport; repeated failures open a circuit breaker
// so the terminal fails fast while the endpoint is down.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = time.Second
	}
	if opts.RetryWaitMax <= 0 {
		opts.RetryWaitMax = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = max(opts.Retries, 0)
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(opts.Endpoint, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "ROS-Agent/1.0").
		SetJSONMarshaler(sonic.ConfigStd.Marshal).
		SetJSONUnmarshaler(sonic.ConfigStd.Unmarshal)
	if opts.APIKey != "" {
		restyClient.SetHeader("x-goog-api-key", opts.APIKey)
	}

	breaker := resilience.New("agent-model", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure: isFailure,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{http: restyClient, breaker: breaker, opts: opts, logger: logger}
}

// NewChat starts an empty conversation.
func (c *Client) NewChat() agent.Chat {
	return &chat{client: c}
}

// BreakerState exposes the breaker for health reporting.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

func (c *Client) generate(ctx context.Context, history []content) (*content, error) {
	req := generateRequest{Contents: history}
	if c.opts.SystemInstruction != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: c.opts.SystemInstruction}}}
	}
	if len(c.opts.Declarations) > 0 {
		req.Tools = []toolSet{{FunctionDeclarations: c.opts.Declarations}}
	}

	headers := map[string]string{}
	tracing.Inject(ctx, headers)

	out, err := resilience.Execute(ctx, c.breaker, func(ctx context.Context) (*generateResponse, error) {
		var result generateResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeaders(headers).
			SetBody(req).
			SetResult(&result).
			ForceContentType("application/json").
			Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.opts.Model))
		if err != nil {
			return nil, fmt.Errorf("post generateContent: %w", err)
		}
		if resp.IsError() {
			return nil, &StatusError{Code: resp.StatusCode(), Body: truncate(resp.String(), 512)}
		}
		return &result, nil
	})
	if err != nil {
		return nil, err
	}

	if out.Error != nil {
		return nil, fmt.Errorf("model error %d %s: %s", out.Error.Code, out.Error.Status, out.Error.Message)
	}
	if len(out.Candidates) == 0 {
		return nil, ErrEmptyReply
	}

	reply := out.Candidates[0].Content
	if reply.Role == "" {
		reply.Role = "model"
	}
	c.logger.Debug("model replied",
		zap.Int("parts", len(reply.Parts)),
		zap.String("finish_reason", out.Candidates[0].FinishReason))
	return &reply, nil
}

// chat keeps the conversation history. A failed turn is rolled back so
// the history never holds an unanswered message.
type chat struct {
	client *Client

	mu      sync.Mutex
	history []content
}

func (ch *chat) SendMessage(ctx context.Context, text string) (*agent.Reply, error) {
	return ch.send(ctx, content{Role: "user", Parts: []part{{Text: text}}})
}

func (ch *chat) SendFunctionResponses(ctx context.Context, responses []agent.FunctionResponse) (*agent.Reply, error) {
	parts := make([]part, 0, len(responses))
	for i := range responses {
		parts = append(parts, part{FunctionResponse: &responses[i]})
	}
	return ch.send(ctx, content{Role: "user", Parts: parts})
}

func (ch *chat) send(ctx context.Context, turn content) (*agent.Reply, error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	history := append(ch.history[:len(ch.history):len(ch.history)], turn)
	reply, err := ch.client.generate(ctx, history)
	if err != nil {
		return nil, err
	}

	out, err := toReply(reply)
	if err != nil {
		return nil, err
	}
	ch.history = append(history, *reply)
	return out, nil
}

func toReply(c *content) (*agent.Reply, error) {
	var (
		text  strings.Builder
		calls []agent.FunctionCall
	)
	for _, p := range c.Parts {
		if p.Text != "" {
			text.WriteString(p.Text)
		}
		if p.FunctionCall == nil {
			continue
		}
		call := agent.FunctionCall{ID: p.FunctionCall.ID, Name: p.FunctionCall.Name, Raw: p.FunctionCall.Args}
		if len(p.FunctionCall.Args) > 0 {
			if err := sonic.ConfigStd.Unmarshal(p.FunctionCall.Args, &call.Args); err != nil {
				return nil, fmt.Errorf("decode args of %s: %w", call.Name, err)
			}
		}
		calls = append(calls, call)
	}
	return &agent.Reply{Text: text.String(), FunctionCalls: calls}, nil
}

// isFailure keeps client mistakes (4xx other than 429) and caller
// cancellation from tripping the breaker.
func isFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code >= http.StatusInternalServerError || status.Code == http.StatusTooManyRequests
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
