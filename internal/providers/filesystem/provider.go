package filesystem

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// Provider exposes the virtual file system as a service.
type Provider struct {
	tools    []types.Tool
	handlers map[string]handler
}

// NewProvider creates a filesystem provider over fs
func NewProvider(fs FileSystem) *Provider {
	ops := &FilesystemOps{FS: fs}
	groups := []interface {
		GetTools() []types.Tool
		handlers() map[string]handler
	}{
		&BasicOps{FilesystemOps: ops},
		&DirectoryOps{FilesystemOps: ops},
		&SearchOps{FilesystemOps: ops},
		&FormatsOps{FilesystemOps: ops},
	}

	p := &Provider{handlers: make(map[string]handler)}
	for _, g := range groups {
		p.tools = append(p.tools, g.GetTools()...)
		for id, h := range g.handlers() {
			p.handlers[id] = h
		}
	}
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "File and directory operations on the virtual file system",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"delete",
			"list",
			"stat",
			"search",
			"json",
			"yaml",
		},
		Tools: p.tools,
	}
}

// Execute runs a filesystem operation
func (p *Provider) Execute(ctx context.Context, toolID string, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	h, ok := p.handlers[toolID]
	if !ok {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
	return h(ctx, args, appCtx)
}
