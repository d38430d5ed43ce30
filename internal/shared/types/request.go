package types

// PathRequest names a virtual file system path.
type PathRequest struct {
	Path string `json:"path" binding:"required"`
}

// WriteFileRequest creates or overwrites a file.
type WriteFileRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

// OpenAppRequest opens a window for a registered application.
type OpenAppRequest struct {
	AppID    string `json:"appId" binding:"required"`
	FilePath string `json:"filePath,omitempty"`
}

// MoveRequest repositions a window.
type MoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CommandRequest carries one command protocol message.
type CommandRequest struct {
	Command string         `json:"command" binding:"required"`
	Args    map[string]any `json:"args"`
}

// InputRequest is a line typed into a terminal session.
type InputRequest struct {
	Input string `json:"input" binding:"required"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string         `json:"tool_id" binding:"required"`
	Params map[string]any `json:"params"`
	Ctx    *Context       `json:"context,omitempty"`
}

// SettingsRequest updates desktop settings. Nil fields are left alone.
type SettingsRequest struct {
	Theme      *Theme `json:"theme,omitempty"`
	Volume     *int   `json:"volume,omitempty"`
	Brightness *int   `json:"brightness,omitempty"`
}

// StreamMessage is one frame on the event websocket.
type StreamMessage struct {
	Type    string `json:"type"`
	Op      string `json:"op,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
	Time    int64  `json:"timestamp"`
}
