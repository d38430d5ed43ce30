package filesystem

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

// BasicOps handles basic file operations
type BasicOps struct {
	*FilesystemOps
}

// GetTools returns basic file operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.read",
			Name:        "Read File",
			Description: "Read file contents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write",
			Name:        "Write File",
			Description: "Write data to file (overwrites existing, replaces folders)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "string", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.append",
			Name:        "Append to File",
			Description: "Append data to end of file, creating it if missing",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "string", Description: "Data to append", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.delete",
			Name:        "Delete",
			Description: "Delete a file or a folder with everything in it",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.exists",
			Name:        "Check Existence",
			Description: "Check if a file or directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.read_lines",
			Name:        "Read Lines",
			Description: "Read file as array of lines",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "array",
		},
	}
}

func (b *BasicOps) handlers() map[string]handler {
	return map[string]handler{
		"filesystem.read":       b.Read,
		"filesystem.write":      b.Write,
		"filesystem.append":     b.Append,
		"filesystem.delete":     b.Delete,
		"filesystem.exists":     b.Exists,
		"filesystem.read_lines": b.ReadLines,
	}
}

// Read reads file contents
func (b *BasicOps) Read(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	content, ok := b.FS.ReadFile(path)
	if !ok {
		return Failure(fmt.Sprintf("no such file: %s", path))
	}

	return Success(map[string]any{
		"path":    path,
		"content": content,
		"size":    len(content),
	})
}

// Write writes data to file (overwrites)
func (b *BasicOps) Write(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}
	data, err := params.String(args, "data", false)
	if err != nil {
		return Failure(err.Error())
	}
	if err := utils.ValidateContent(data); err != nil {
		return Failure(err.Error())
	}

	if !b.FS.WriteFile(path, data) {
		return Failure(fmt.Sprintf("write failed: parent of %s is not a folder", path))
	}

	return Success(map[string]any{
		"written": true,
		"path":    path,
		"size":    len(data),
	})
}

// Append appends data to file
func (b *BasicOps) Append(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}
	data, err := params.String(args, "data", false)
	if err != nil {
		return Failure(err.Error())
	}

	if info, ok := b.FS.Stat(path); ok && info.IsDir() {
		return Failure(fmt.Sprintf("cannot append to folder: %s", path))
	}
	existing, _ := b.FS.ReadFile(path)
	if err := utils.ValidateContent(existing + data); err != nil {
		return Failure(err.Error())
	}
	if !b.FS.WriteFile(path, existing+data) {
		return Failure(fmt.Sprintf("append failed: parent of %s is not a folder", path))
	}

	return Success(map[string]any{
		"appended": true,
		"path":     path,
		"size":     len(existing) + len(data),
	})
}

// Delete removes a file or folder
func (b *BasicOps) Delete(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	if !b.FS.Delete(path) {
		return Failure(fmt.Sprintf("delete failed: %s", path))
	}

	return Success(map[string]any{"deleted": true, "path": path})
}

// Exists checks if a path resolves
func (b *BasicOps) Exists(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	info, ok := b.FS.Stat(path)
	return Success(map[string]any{
		"exists": ok,
		"is_dir": ok && info.IsDir(),
		"path":   path,
	})
}

// ReadLines reads file as array of lines
func (b *BasicOps) ReadLines(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error) {
	path, err := pathParam(args)
	if err != nil {
		return Failure(err.Error())
	}

	content, ok := b.FS.ReadFile(path)
	if !ok {
		return Failure(fmt.Sprintf("no such file: %s", path))
	}

	lines := []string{}
	if content != "" {
		lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	}

	return Success(map[string]any{
		"path":  path,
		"lines": lines,
		"count": len(lines),
	})
}
