package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategorySystem     Category = "system"
	CategoryApps       Category = "apps"
	CategoryTerminal   Category = "terminal"
	CategoryMedia      Category = "media"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context provides execution context for services
type Context struct {
	WindowID  string `json:"window_id,omitempty"`
	AppID     string `json:"app_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// Result represents a service execution result
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *string        `json:"error,omitempty"`
}

// Success wraps data in a successful result.
func Success(data map[string]any) *Result {
	return &Result{Success: true, Data: data}
}

// Failure builds a failed result carrying msg.
func Failure(msg string) *Result {
	return &Result{Success: false, Error: &msg}
}
