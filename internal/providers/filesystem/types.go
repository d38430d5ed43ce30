package filesystem

import (
	"context"

	"github.com/GriffinCanCode/ros/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ros/backend/internal/providers/params"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// FileSystem is the virtual file system surface the provider exposes.
type FileSystem interface {
	Stat(path string) (vfs.NodeInfo, bool)
	ReadDir(path string) []string
	ReadFile(path string) (string, bool)
	WriteFile(path, content string) bool
	MakeDir(path string) bool
	Delete(path string) bool
	Walk(root string, fn vfs.WalkFunc) error
}

// FileInfo represents file metadata
type FileInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Size      int    `json:"size"`
	IsDir     bool   `json:"is_dir"`
	Children  int    `json:"children,omitempty"`
	Extension string `json:"extension,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
}

// FilesystemOps provides common filesystem operation helpers
type FilesystemOps struct {
	FS FileSystem
}

// handler is the signature every tool implementation shares.
type handler func(ctx context.Context, args map[string]any, appCtx *types.Context) (*types.Result, error)

// pathParam reads the required path argument.
func pathParam(args map[string]any) (string, error) {
	return params.String(args, "path", true)
}

// Success helper
func Success(data map[string]any) (*types.Result, error) {
	return params.Success(data)
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	return params.Failure(message)
}
