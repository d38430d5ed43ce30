package explorer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// Provider implements the File Explorer app
type Provider struct {
	fs       filesystem.FileSystem
	launcher Launcher
	views    *views
	logger   *zap.Logger
}

// NewProvider creates an explorer over fs that opens files through launcher
func NewProvider(fs filesystem.FileSystem, launcher Launcher) *Provider {
	return &Provider{
		fs:       fs,
		launcher: launcher,
		views:    &views{current: make(map[string]string)},
		logger:   zap.NewNop(),
	}
}

// WithLogger sets the logger.
func (p *Provider) WithLogger(logger *zap.Logger) *Provider {
	if logger != nil {
		p.logger = logger.Named("explorer")
	}
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "explorer",
		Name:        "File Explorer",
		Description: "Browse folders and open files in the matching app",
		Category:    types.CategoryApps,
		Capabilities: []string{
			"browse",
			"open",
			"find",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	viewParam := types.Parameter{Name: "view_id", Type: "string", Description: "Explorer view (defaults to the calling window)", Required: false}
	return []types.Tool{
		{
			ID:          "explorer.list",
			Name:        "List",
			Description: "List a folder, or the current one, with entry kinds and content types",
			Parameters: []types.Parameter{
				viewParam,
				{Name: "path", Type: "string", Description: "Folder to list", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "explorer.navigate",
			Name:        "Navigate",
			Description: "Change the current folder; files and missing paths are refused",
			Parameters: []types.Parameter{
				viewParam,
				{Name: "path", Type: "string", Description: "Folder path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.up",
			Name:        "Up",
			Description: "Move to the parent folder",
			Parameters:  []types.Parameter{viewParam},
			Returns:     "object",
		},
		{
			ID:          "explorer.open",
			Name:        "Open",
			Description: "Open an entry of the current folder: folders are entered, files launch an app",
			Parameters: []types.Parameter{
				viewParam,
				{Name: "name", Type: "string", Description: "Entry name", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.find",
			Name:        "Find",
			Description: "Find entries below the current folder matching a ** glob",
			Parameters: []types.Parameter{
				viewParam,
				{Name: "pattern", Type: "string", Description: "Glob, e.g. **/*.txt", Required: true},
			},
			Returns: "array",
		},
	}
}

// Execute routes tool calls
func (p *Provider) Execute(ctx context.Context, toolID string, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	view := viewKey(args, appCtx)
	switch toolID {
	case "explorer.list":
		return p.list(view, args)
	case "explorer.navigate":
		return p.navigate(view, args)
	case "explorer.up":
		return p.up(view)
	case "explorer.open":
		return p.open(view, args)
	case "explorer.find":
		return p.find(view, args)
	default:
		return params.Failuref("unknown tool: %s", toolID)
	}
}

func viewKey(args map[string]any, appCtx *types.Context) string {
	if v, _ := params.String(args, "view_id", false); v != "" {
		return v
	}
	if appCtx != nil && appCtx.WindowID != "" {
		return appCtx.WindowID
	}
	return "default"
}

// Entries lists path with kinds and sniffed content types. A missing
// folder lists as empty.
func (p *Provider) Entries(path string) []Entry {
	names := p.fs.ReadDir(path)
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		node, ok := p.fs.Stat(paths.Child(path, name))
		if !ok {
			continue
		}
		info := filesystem.Info(p.fs, node)
		entry := Entry{Name: name, Path: node.Path, Kind: KindFile, Size: info.Size, MimeType: info.MimeType}
		if info.IsDir {
			entry.Kind = KindFolder
		}
		entries = append(entries, entry)
	}
	return entries
}

func (p *Provider) list(view string, args map[string]any) (*types.Result, error) {
	path, err := params.String(args, "path", false)
	if err != nil {
		return params.Failure(err.Error())
	}
	if path == "" {
		path = p.views.get(view)
	}

	entries := p.Entries(path)
	return params.Success(map[string]any{
		"path":    path,
		"entries": entries,
		"count":   len(entries),
	})
}

func (p *Provider) navigate(view string, args map[string]any) (*types.Result, error) {
	path, err := params.String(args, "path", true)
	if err != nil {
		return params.Failure(err.Error())
	}
	node, ok := p.fs.Stat(path)
	if !ok || !node.IsDir() {
		return params.Failuref("not a folder: %s", path)
	}

	p.views.set(view, node.Path)
	return params.Success(map[string]any{"path": node.Path})
}

func (p *Provider) up(view string) (*types.Result, error) {
	parent := Parent(p.views.get(view))
	p.views.set(view, parent)
	return params.Success(map[string]any{"path": parent})
}

func (p *Provider) open(view string, args map[string]any) (*types.Result, error) {
	name, err := params.String(args, "name", true)
	if err != nil {
		return params.Failure(err.Error())
	}

	full := paths.Child(p.views.get(view), name)
	node, ok := p.fs.Stat(full)
	if !ok {
		return params.Failuref("no such file or directory: %s", full)
	}
	if node.IsDir() {
		p.views.set(view, node.Path)
		return params.Success(map[string]any{"path": node.Path, "kind": KindFolder})
	}

	target := OpenTarget(name)
	cmdArgs := map[string]any{"appId": target.AppID}
	if target.WithPath {
		cmdArgs["filePath"] = node.Path
	}
	outcome, err := p.launcher.Execute(shell.CmdOpenApp, cmdArgs)
	if err != nil {
		return params.Failure(fmt.Sprintf("open failed: %v", err))
	}

	p.logger.Debug("Opened file", zap.String("path", node.Path), zap.String("app", target.AppID))
	return params.Success(map[string]any{
		"path":      node.Path,
		"kind":      KindFile,
		"app_id":    target.AppID,
		"window_id": outcome.WindowID,
		"opened":    outcome.Applied,
	})
}

func (p *Provider) find(view string, args map[string]any) (*types.Result, error) {
	pattern, err := params.String(args, "pattern", true)
	if err != nil {
		return params.Failure(err.Error())
	}

	root := p.views.get(view)
	matches, err := filesystem.Find(p.fs, root, pattern)
	if err != nil {
		return params.Failure(fmt.Sprintf("find failed: %v", err))
	}
	return params.Success(map[string]any{"path": root, "matches": matches, "count": len(matches)})
}
