package browser

import (
	"context"
	"strings"
	"sync"

	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// FileSystem is what the browser reads local pages from.
type FileSystem interface {
	ReadFile(path string) (string, bool)
}

// Provider implements the Browser app
type Provider struct {
	fs       FileSystem
	sessions *SessionManager
}

// SessionManager manages browser sessions per window
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*BrowserSession
}

// BrowserSession holds navigation state for a browser window
type BrowserSession struct {
	mu      sync.RWMutex
	current string
	history []string
}

// NewProvider creates a browser provider
func NewProvider(fs FileSystem) *Provider {
	return &Provider{
		fs: fs,
		sessions: &SessionManager{
			sessions: make(map[string]*BrowserSession),
		},
	}
}

// Definition returns service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "browser",
		Name:        "Browser",
		Description: "Address bar navigation and local HTML pages from the file system",
		Category:    types.CategoryApps,
		Capabilities: []string{
			"navigate",
			"search",
			"local_pages",
			"history",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	sessionParam := types.Parameter{Name: "session_id", Type: "string", Description: "Browser session (defaults to the calling window)", Required: false}
	return []types.Tool{
		{
			ID:          "browser.navigate",
			Name:        "Navigate",
			Description: "Go to a URL, a local:// page, or search for anything else",
			Parameters: []types.Parameter{
				sessionParam,
				{Name: "input", Type: "string", Description: "Address bar input", Required: true},
			},
			Returns: "Page",
		},
		{
			ID:          "browser.open_file",
			Name:        "Open Local File",
			Description: "Show an HTML file from the file system",
			Parameters: []types.Parameter{
				sessionParam,
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "Page",
		},
		{
			ID:          "browser.home",
			Name:        "Home",
			Description: "Go to the home page",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Page",
		},
		{
			ID:          "browser.back",
			Name:        "Back",
			Description: "Return to the previous page",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "Page",
		},
		{
			ID:          "browser.get_session",
			Name:        "Get Session Info",
			Description: "Current URL and navigation history",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "object",
		},
	}
}

// Execute routes tool calls
func (p *Provider) Execute(ctx context.Context, toolID string, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	session := p.getOrCreateSession(sessionKey(args, appCtx))
	switch toolID {
	case "browser.navigate":
		input, err := params.String(args, "input", true)
		if err != nil {
			return params.Failure(err.Error())
		}
		return p.visit(session, Normalize(input))
	case "browser.open_file":
		path, err := params.String(args, "path", true)
		if err != nil {
			return params.Failure(err.Error())
		}
		return p.visit(session, LocalURL(path))
	case "browser.home":
		return p.visit(session, HomeURL)
	case "browser.back":
		return p.back(session)
	case "browser.get_session":
		return p.sessionInfo(session)
	default:
		return params.Failuref("unknown tool: %s", toolID)
	}
}

func sessionKey(args map[string]any, appCtx *types.Context) string {
	if v, _ := params.String(args, "session_id", false); v != "" {
		return v
	}
	if appCtx != nil && appCtx.WindowID != "" {
		return appCtx.WindowID
	}
	return "default"
}

// getOrCreateSession retrieves or creates a browser session
func (p *Provider) getOrCreateSession(key string) *BrowserSession {
	p.sessions.mu.Lock()
	defer p.sessions.mu.Unlock()

	session, exists := p.sessions.sessions[key]
	if !exists {
		session = &BrowserSession{current: HomeURL}
		p.sessions.sessions[key] = session
	}
	return session
}

// Load resolves a normalized URL to a page.
func (p *Provider) Load(target string) (Page, bool) {
	path, local := strings.CutPrefix(target, LocalScheme)
	if !local {
		return Page{URL: target, Kind: KindWeb}, true
	}

	content, ok := p.fs.ReadFile(path)
	if !ok || content == "" {
		return Page{}, false
	}
	page, err := Render(path, content)
	if err != nil {
		return Page{}, false
	}
	return page, true
}

// visit loads target and makes it current. A local page that cannot be
// loaded leaves the session where it was.
func (p *Provider) visit(session *BrowserSession, target string) (*types.Result, error) {
	page, ok := p.Load(target)
	if !ok {
		return params.Failuref("cannot open %s", target)
	}

	session.mu.Lock()
	if session.current != target {
		session.history = append(session.history, session.current)
	}
	session.current = target
	session.mu.Unlock()

	return pageResult(page)
}

func (p *Provider) back(session *BrowserSession) (*types.Result, error) {
	session.mu.Lock()
	if len(session.history) == 0 {
		session.mu.Unlock()
		return params.Failure("no previous page")
	}
	prev := session.history[len(session.history)-1]
	session.history = session.history[:len(session.history)-1]
	session.mu.Unlock()

	// A previous local page may have been deleted since.
	page, ok := p.Load(prev)
	if !ok {
		page = Page{URL: prev, Kind: KindLocal}
	}
	session.mu.Lock()
	session.current = prev
	session.mu.Unlock()
	return pageResult(page)
}

func (p *Provider) sessionInfo(session *BrowserSession) (*types.Result, error) {
	session.mu.RLock()
	defer session.mu.RUnlock()

	return params.Success(map[string]any{
		"url":     session.current,
		"history": append([]string{}, session.history...),
	})
}

func pageResult(page Page) (*types.Result, error) {
	data := map[string]any{
		"url":  page.URL,
		"kind": page.Kind,
	}
	if page.Kind == KindLocal {
		data["title"] = page.Title
		data["html"] = page.HTML
		data["text"] = page.Text
	}
	return params.Success(data)
}
