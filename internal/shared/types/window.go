package types

// Position is a window's top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window's dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window is one open application surface. Minimized and Maximized are
// independent bits.
type Window struct {
	ID          string         `json:"id"`
	AppID       string         `json:"appId"`
	Title       string         `json:"title"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	ZIndex      int            `json:"zIndex"`
	IsMinimized bool           `json:"isMinimized"`
	IsMaximized bool           `json:"isMaximized"`
	Props       map[string]any `json:"props,omitempty"`
}

// FilePath returns the filePath prop, if any.
func (w Window) FilePath() string {
	s, _ := w.Props["filePath"].(string)
	return s
}

// Stats contains window manager statistics
type Stats struct {
	OpenWindows      int    `json:"open_windows"`
	MinimizedWindows int    `json:"minimized_windows"`
	ActiveWindowID   string `json:"active_window_id,omitempty"`
	TopZIndex        int    `json:"top_z_index"`
}
