package agent

import (
	"fmt"

	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
)

// Tool names exposed to the model.
const (
	ToolListFiles = "listFiles"
	ToolReadFile  = "readFile"
	ToolWriteFile = "writeFile"
)

// Tool error strings returned to the model.
const (
	ErrTextFileSystem  = "FileSystem Error"
	ErrTextUnknownTool = "Unknown tool"
)

// FileSystem is the slice of the virtual file system the model may touch.
type FileSystem interface {
	ReadDir(path string) []string
	ReadFile(path string) (string, bool)
	WriteFile(path, content string) bool
}

// IsCommand reports whether name belongs to the command protocol rather
// than the file system tools.
func IsCommand(name string) bool {
	switch name {
	case shell.CmdOpenApp, shell.CmdCloseApp, shell.CmdChangeWallpaper:
		return true
	}
	return false
}

// PerformFileAction runs one file system tool. Failures come back as an
// {"error": ...} payload for the model, never as a Go error.
func PerformFileAction(fs FileSystem, name string, args map[string]any) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			result = errorResult(ErrTextFileSystem)
		}
	}()

	switch name {
	case ToolListFiles:
		path, err := pathArg(args)
		if err != nil {
			return errorResult(ErrTextFileSystem)
		}
		return map[string]any{"files": fs.ReadDir(path)}
	case ToolReadFile:
		path, err := pathArg(args)
		if err != nil {
			return errorResult(ErrTextFileSystem)
		}
		content, ok := fs.ReadFile(path)
		if !ok {
			return map[string]any{"content": nil}
		}
		return map[string]any{"content": content}
	case ToolWriteFile:
		path, err := pathArg(args)
		if err != nil {
			return errorResult(ErrTextFileSystem)
		}
		content, ok := args["content"].(string)
		if !ok && args["content"] != nil {
			return errorResult(ErrTextFileSystem)
		}
		if fs.WriteFile(path, content) {
			return map[string]any{"success": true, "message": "File written successfully"}
		}
		return map[string]any{"success": false, "message": "Failed to write file"}
	default:
		return errorResult(ErrTextUnknownTool)
	}
}

func pathArg(args map[string]any) (string, error) {
	path, ok := args["path"].(string)
	if !ok {
		return "", fmt.Errorf("path must be a string, got %T", args["path"])
	}
	return path, nil
}

func errorResult(msg string) map[string]any {
	return map[string]any{"error": msg}
}
