package terminal

import (
	"context"
	"errors"

	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// Provider implements terminal operations
type Provider struct {
	manager *Manager
}

// NewProvider creates a new terminal provider
func NewProvider(manager *Manager) *Provider {
	return &Provider{manager: manager}
}

// Manager returns the session manager
func (p *Provider) Manager() *Manager { return p.manager }

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "terminal",
		Name:        "Terminal Service",
		Description: "Shell sessions over the virtual file system with the AI assistant as fallback",
		Category:    types.CategoryTerminal,
		Capabilities: []string{
			"sessions",
			"shell",
			"history",
			"assistant",
		},
		Tools: p.getTools(),
	}
}

// Execute routes to appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "terminal.create_session":
		return p.createSession()
	case "terminal.input":
		return p.input(ctx, args, appCtx)
	case "terminal.history":
		return p.history(args, appCtx)
	case "terminal.list_sessions":
		return p.listSessions()
	case "terminal.get_session":
		return p.getSession(args, appCtx)
	case "terminal.kill":
		return p.kill(args, appCtx)
	default:
		return params.Failuref("unknown tool: %s", toolID)
	}
}

func (p *Provider) getTools() []types.Tool {
	sessionParam := types.Parameter{Name: "session_id", Type: "string", Description: "Session ID (defaults to the calling context's session)", Required: false}
	return []types.Tool{
		{
			ID:          "terminal.create_session",
			Name:        "Create Terminal Session",
			Description: "Open a new terminal session in /home/user",
			Parameters:  []types.Parameter{},
			Returns:     "SessionInfo",
		},
		{
			ID:          "terminal.input",
			Name:        "Send Input",
			Description: "Run one line: a built-in command or a request for the assistant",
			Parameters: []types.Parameter{
				sessionParam,
				{Name: "input", Type: "string", Description: "Line to run", Required: true},
			},
			Returns: "Output",
		},
		{
			ID:          "terminal.history",
			Name:        "Read History",
			Description: "Return the session transcript",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "array",
		},
		{
			ID:          "terminal.list_sessions",
			Name:        "List Sessions",
			Description: "List all terminal sessions",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
		{
			ID:          "terminal.get_session",
			Name:        "Get Session",
			Description: "Get session information",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "SessionInfo",
		},
		{
			ID:          "terminal.kill",
			Name:        "Kill Session",
			Description: "Close a terminal session",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "boolean",
		},
	}
}

func (p *Provider) createSession() (*types.Result, error) {
	info := p.manager.CreateSession()
	return params.Success(map[string]any{"session": info, "history": []Message{{Role: RoleModel, Text: Greeting}}})
}

func (p *Provider) input(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	sessionID, err := sessionArg(args, appCtx)
	if err != nil {
		return params.Failure(err.Error())
	}
	line, err := params.String(args, "input", false)
	if err != nil {
		return params.Failure(err.Error())
	}

	out, err := p.manager.Input(ctx, sessionID, line)
	if err != nil {
		return params.Failure(err.Error())
	}
	return params.Success(map[string]any{"messages": out.Messages, "cleared": out.Cleared, "cwd": out.Cwd})
}

func (p *Provider) history(args map[string]any, appCtx *types.Context) (*types.Result, error) {
	sessionID, err := sessionArg(args, appCtx)
	if err != nil {
		return params.Failure(err.Error())
	}
	sess, err := p.manager.Session(sessionID)
	if err != nil {
		return params.Failure(err.Error())
	}
	return params.Success(map[string]any{"messages": sess.History(), "cwd": sess.Cwd()})
}

func (p *Provider) listSessions() (*types.Result, error) {
	sessions := p.manager.ListSessions()
	return params.Success(map[string]any{"sessions": sessions, "count": len(sessions)})
}

func (p *Provider) getSession(args map[string]any, appCtx *types.Context) (*types.Result, error) {
	sessionID, err := sessionArg(args, appCtx)
	if err != nil {
		return params.Failure(err.Error())
	}
	info, err := p.manager.GetSession(sessionID)
	if err != nil {
		return params.Failure(err.Error())
	}
	return params.Success(map[string]any{"session": info})
}

func (p *Provider) kill(args map[string]any, appCtx *types.Context) (*types.Result, error) {
	sessionID, err := sessionArg(args, appCtx)
	if err != nil {
		return params.Failure(err.Error())
	}
	if err := p.manager.Kill(sessionID); err != nil {
		return params.Failure(err.Error())
	}
	return params.Success(map[string]any{"killed": sessionID})
}

func sessionArg(args map[string]any, appCtx *types.Context) (string, error) {
	sessionID, err := params.String(args, "session_id", false)
	if err != nil {
		return "", err
	}
	if sessionID == "" && appCtx != nil {
		sessionID = appCtx.SessionID
	}
	if sessionID == "" {
		return "", errors.New("session_id parameter required")
	}
	return sessionID, nil
}
