package types

// Theme is the desktop color scheme.
type Theme string

const (
	ThemeDark      Theme = "dark"
	ThemeLight     Theme = "light"
	ThemeCyberpunk Theme = "cyberpunk"
	ThemeRetro     Theme = "retro"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeCyberpunk, ThemeRetro:
		return true
	}
	return false
}

// DesktopState is the process-wide desktop appearance.
type DesktopState struct {
	Theme      Theme  `json:"theme"`
	Wallpaper  string `json:"wallpaper"`
	Volume     int    `json:"volume"`
	Brightness int    `json:"brightness"`
}
