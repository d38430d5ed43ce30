package filesystem

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// maxTreeDepth bounds filesystem.tree output.
const maxTreeDepth = 32

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.list",
			Name:        "List Directory",
			Description: "List directory entries in insertion order",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "details", Type: "boolean", Description: "Include entry metadata (default false)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.mkdir",
			Name:        "Create Directory",
			Description: "Create a new directory; fails if the name is taken",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.stat",
			Name:        "File Info",
			Description: "Get file or directory metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "FileInfo",
		},
		{
			ID:          "filesystem.tree",
			Name:        "Directory Tree",
			Description: "Nested view of a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root path", Required: true},
				{Name: "max_depth", Type: "number", Description: "Maximum depth (default 32)", Required: false},
			},
			Returns: "object",
		},
	}
}

func (d *DirectoryOps) handlers() map[string]handler {
	return map[string]handler{
		"filesystem.list":  d.List,
		"filesystem.mkdir": d.Create,
		"filesystem.stat":  d.Stat,
		"filesystem.tree":  d.Tree,
	}
}

// List lists directory contents. A missing path lists as empty.
func (d *DirectoryOps) List(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	names := d.FS.ReadDir(path)
	if !params.Bool(args, "details", false) {
		return Success(map[string]any{"path": path, "files": names, "count": len(names)})
	}

	entries := make([]FileInfo, 0, len(names))
	for _, name := range names {
		if node, ok := d.FS.Stat(paths.Child(path, name)); ok {
			entries = append(entries, Info(d.FS, node))
		}
	}
	return Success(map[string]any{"path": path, "entries": entries, "count": len(entries)})
}

// Create creates a directory
func (d *DirectoryOps) Create(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	if !d.FS.MakeDir(path) {
		return Failure(fmt.Sprintf("mkdir failed: %s exists or its parent is not a folder", path))
	}
	return Success(map[string]any{"created": true, "path": path})
}

// Stat returns node metadata
func (d *DirectoryOps) Stat(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	node, ok := d.FS.Stat(path)
	if !ok {
		return Failure(fmt.Sprintf("no such file or directory: %s", path))
	}
	return Success(map[string]any{"info": Info(d.FS, node), "id": node.ID})
}

// TreeNode is one level of filesystem.tree output.
type TreeNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	IsDir    bool       `json:"is_dir"`
	Children []TreeNode `json:"children,omitempty"`
}

// Tree builds a nested directory view
func (d *DirectoryOps) Tree(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}
	depth, err := params.Int(args, "max_depth", maxTreeDepth)
	if err != nil {
		return Failure(err.Error())
	}

	node, ok := d.FS.Stat(path)
	if !ok {
		return Failure(fmt.Sprintf("no such file or directory: %s", path))
	}
	return Success(map[string]any{"tree": d.build(node.Path, node.Name, node.IsDir(), min(depth, maxTreeDepth))})
}

func (d *DirectoryOps) build(path, name string, isDir bool, depth int) TreeNode {
	n := TreeNode{Name: name, Path: path, IsDir: isDir}
	if !isDir || depth <= 0 {
		return n
	}
	for _, child := range d.FS.ReadDir(path) {
		childPath := paths.Child(path, child)
		info, ok := d.FS.Stat(childPath)
		if !ok {
			continue
		}
		n.Children = append(n.Children, d.build(childPath, child, info.IsDir(), depth-1))
	}
	return n
}
