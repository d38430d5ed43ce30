package editor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/providers/editor/sandbox"
	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

// FileSystem is what Code Studio needs from the virtual file system.
type FileSystem interface {
	ReadFile(path string) (string, bool)
	WriteFile(path, content string) bool
}

// Provider implements Code Studio
type Provider struct {
	fs     FileSystem
	pool   *sandbox.Pool
	docs   *documents
	logger *zap.Logger
}

// NewProvider creates a Code Studio provider with its own sandbox pool
func NewProvider(fs FileSystem, config sandbox.Config) (*Provider, error) {
	pool, err := sandbox.NewPool(config, 2)
	if err != nil {
		return nil, fmt.Errorf("create sandbox pool: %w", err)
	}
	return &Provider{
		fs:     fs,
		pool:   pool,
		docs:   &documents{docs: make(map[string]*Document)},
		logger: zap.NewNop(),
	}, nil
}

// WithLogger sets the logger.
func (p *Provider) WithLogger(logger *zap.Logger) *Provider {
	if logger != nil {
		p.logger = logger.Named("editor")
	}
	return p
}

// Close releases the sandbox pool
func (p *Provider) Close() error {
	return p.pool.Close()
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "editor",
		Name:        "Code Studio",
		Description: "Edit, save and run JavaScript in a sandbox",
		Category:    types.CategoryApps,
		Capabilities: []string{
			"edit",
			"save",
			"run",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	docParam := types.Parameter{Name: "doc_id", Type: "string", Description: "Editor buffer (defaults to the calling window)", Required: false}
	return []types.Tool{
		{
			ID:          "editor.open",
			Name:        "Open File",
			Description: "Load a file into the buffer",
			Parameters: []types.Parameter{
				docParam,
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "Document",
		},
		{
			ID:          "editor.get",
			Name:        "Get Buffer",
			Description: "Current buffer and its file path",
			Parameters:  []types.Parameter{docParam},
			Returns:     "Document",
		},
		{
			ID:          "editor.update",
			Name:        "Update Buffer",
			Description: "Replace the buffer contents without saving",
			Parameters: []types.Parameter{
				docParam,
				{Name: "code", Type: "string", Description: "New contents", Required: true},
			},
			Returns: "Document",
		},
		{
			ID:          "editor.save",
			Name:        "Save",
			Description: "Write the buffer to its file; untitled buffers are saved in /home/user/projects",
			Parameters: []types.Parameter{
				docParam,
				{Name: "code", Type: "string", Description: "Contents to save (defaults to the buffer)", Required: false},
				{Name: "name", Type: "string", Description: "File name for an untitled buffer (default new_script.js)", Required: false},
			},
			Returns: "Document",
		},
		{
			ID:          "editor.run",
			Name:        "Run",
			Description: "Run JavaScript and return its console output",
			Parameters: []types.Parameter{
				docParam,
				{Name: "code", Type: "string", Description: "Script to run (defaults to the buffer)", Required: false},
			},
			Returns: "array",
		},
	}
}

// Execute routes tool calls
func (p *Provider) Execute(ctx context.Context, toolID string, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	doc := docKey(args, appCtx)
	switch toolID {
	case "editor.open":
		return p.open(doc, args)
	case "editor.get":
		return documentResult(p.docs.get(doc))
	case "editor.update":
		return p.updateBuffer(doc, args)
	case "editor.save":
		return p.save(doc, args)
	case "editor.run":
		return p.run(ctx, doc, args)
	default:
		return params.Failuref("unknown tool: %s", toolID)
	}
}

func docKey(args map[string]any, appCtx *types.Context) string {
	if v, _ := params.String(args, "doc_id", false); v != "" {
		return v
	}
	if appCtx != nil && appCtx.WindowID != "" {
		return appCtx.WindowID
	}
	return "default"
}

func documentResult(doc Document) (*types.Result, error) {
	return params.Success(map[string]any{"path": doc.Path, "code": doc.Code})
}

// open binds the buffer to path. An empty file leaves the buffer as is.
func (p *Provider) open(key string, args map[string]any) (*types.Result, error) {
	path, err := params.String(args, "path", true)
	if err != nil {
		return params.Failure(err.Error())
	}
	content, ok := p.fs.ReadFile(path)
	if !ok {
		return params.Failuref("no such file: %s", path)
	}

	return documentResult(p.docs.update(key, func(doc *Document) {
		doc.Path = path
		if content != "" {
			doc.Code = content
		}
	}))
}

func (p *Provider) updateBuffer(key string, args map[string]any) (*types.Result, error) {
	code, err := params.String(args, "code", false)
	if err != nil {
		return params.Failure(err.Error())
	}
	if _, ok := args["code"]; !ok {
		return params.Failure("code parameter required")
	}
	return documentResult(p.docs.update(key, func(doc *Document) { doc.Code = code }))
}

func (p *Provider) save(key string, args map[string]any) (*types.Result, error) {
	code, err := params.String(args, "code", false)
	if err != nil {
		return params.Failure(err.Error())
	}
	name, err := params.String(args, "name", false)
	if err != nil {
		return params.Failure(err.Error())
	}
	if name == "" {
		name = DefaultSaveName
	}

	current := p.docs.get(key)
	if _, ok := args["code"]; !ok {
		code = current.Code
	}
	if err := utils.ValidateContent(code); err != nil {
		return params.Failure(err.Error())
	}

	path := current.Path
	if path == "" {
		if err := utils.ValidateName(name, "name"); err != nil {
			return params.Failure(err.Error())
		}
		path = paths.Child(paths.Projects, name)
	}
	if !p.fs.WriteFile(path, code) {
		return params.Failuref("save failed: cannot write %s", path)
	}

	doc := p.docs.update(key, func(doc *Document) {
		doc.Path = path
		doc.Code = code
	})
	p.logger.Debug("Saved buffer", zap.String("path", path), zap.Int("size", len(code)))
	return params.Success(map[string]any{"path": doc.Path, "code": doc.Code, "saved": true})
}

// Output renders a run as Code Studio's console lines.
func Output(result *sandbox.Result, runErr error) []string {
	var lines []string
	if result != nil {
		for _, entry := range result.Console {
			lines = append(lines, entry.Message)
		}
	}
	if runErr != nil {
		lines = append(lines, "Error: "+runErr.Error())
	}
	if len(lines) == 0 {
		return []string{NoOutput}
	}
	return lines
}

func (p *Provider) run(ctx context.Context, key string, args map[string]any) (*types.Result, error) {
	code, err := params.String(args, "code", false)
	if err != nil {
		return params.Failure(err.Error())
	}
	if _, ok := args["code"]; !ok {
		code = p.docs.get(key).Code
	}

	result, runErr := p.pool.Execute(ctx, code)
	if result == nil {
		// The pool never reached the script.
		if runErr == nil {
			runErr = errors.New("no result")
		}
		return params.Failuref("run failed: %v", runErr)
	}

	data := map[string]any{
		"output":      Output(result, runErr),
		"console":     result.Console,
		"duration_ms": result.Duration.Milliseconds(),
		"ok":          runErr == nil,
	}
	if result.Value != nil {
		data["value"] = result.Value
	}
	return params.Success(data)
}
