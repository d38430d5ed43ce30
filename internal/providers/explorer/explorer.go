package explorer

import (
	"sync"

	"github.com/GriffinCanCode/ros/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

// Launcher opens apps through the command protocol.
type Launcher interface {
	Execute(name string, args map[string]any) (shell.Outcome, error)
}

// Entry kinds
const (
	KindFolder = "folder"
	KindFile   = "file"
)

// Entry is one item in a listing.
type Entry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Size     int    `json:"size"`
	MimeType string `json:"mime_type,omitempty"`
}

// Target is the app a file opens in.
type Target struct {
	AppID    string
	WithPath bool
}

// OpenTarget picks the app for a file by its extension. Source goes to
// Code Studio, images to the gallery, everything else to Notepad.
func OpenTarget(name string) Target {
	switch paths.Ext(name) {
	case ".js", ".py", ".html":
		return Target{AppID: "code", WithPath: true}
	case ".png", ".jpg":
		return Target{AppID: "media"}
	default:
		return Target{AppID: "notepad", WithPath: true}
	}
}

// Parent returns the folder above path; the root is its own parent.
func Parent(path string) string {
	parent, _ := paths.Split(path)
	return parent
}

// views tracks the current folder of each explorer window.
type views struct {
	mu      sync.Mutex
	current map[string]string
}

func (v *views) get(key string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if cwd, ok := v.current[key]; ok {
		return cwd
	}
	return paths.User
}

func (v *views) set(key, path string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current[key] = path
}
