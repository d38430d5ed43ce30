package types

// AppEntry describes an application the desktop can open.
type AppEntry struct {
	ID            string `json:"id" yaml:"id"`
	Title         string `json:"title" yaml:"title"`
	Icon          string `json:"icon" yaml:"icon"`
	Description   string `json:"description,omitempty" yaml:"description"`
	DefaultWidth  int    `json:"defaultWidth" yaml:"width"`
	DefaultHeight int    `json:"defaultHeight" yaml:"height"`
	// Hidden entries open normally but get no desktop icon.
	Hidden bool `json:"hidden,omitempty" yaml:"hidden"`
}

// RegistryStats contains registry statistics
type RegistryStats struct {
	TotalApps   int `json:"total_apps"`
	DesktopApps int `json:"desktop_apps"`
}
