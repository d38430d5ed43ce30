package shell

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

// Desktop defaults.
const (
	DefaultWallpaper  = "https://picsum.photos/id/29/1920/1080"
	DefaultVolume     = 50
	DefaultBrightness = 100
)

// RandomWallpaper picks one of a hundred fixed picsum images.
func RandomWallpaper() string {
	return fmt.Sprintf("https://picsum.photos/id/%d/1920/1080", rand.IntN(100)+10)
}

// Desktop holds the process-wide appearance: theme, wallpaper and levels.
type Desktop struct {
	mu      sync.RWMutex
	state   types.DesktopState
	initial string
	pick    func() string
	bus     *events.Bus
}

// NewDesktop creates desktop state starting from wallpaper, or the default
// wallpaper if empty.
func NewDesktop(wallpaper string) *Desktop {
	if wallpaper == "" {
		wallpaper = DefaultWallpaper
	}
	d := &Desktop{initial: wallpaper, pick: RandomWallpaper}
	d.state = d.defaults()
	return d
}

// WithBus publishes desktop changes on bus
func (d *Desktop) WithBus(bus *events.Bus) *Desktop {
	d.bus = bus
	return d
}

// WithPicker overrides how changeWallpaper chooses an image
func (d *Desktop) WithPicker(pick func() string) *Desktop {
	d.pick = pick
	return d
}

// State returns a copy of the current desktop state.
func (d *Desktop) State() types.DesktopState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// ChangeWallpaper draws and applies a new wallpaper. It never fails.
func (d *Desktop) ChangeWallpaper() string {
	url := d.pick()
	d.mu.Lock()
	d.state.Wallpaper = url
	d.mu.Unlock()

	d.changed("wallpaper")
	return url
}

// SetTheme switches the color scheme.
func (d *Desktop) SetTheme(theme types.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme: %q", theme)
	}
	d.mu.Lock()
	d.state.Theme = theme
	d.mu.Unlock()

	d.changed("theme")
	return nil
}

// SetVolume sets the volume, clamped to 0-100, and returns the stored value.
func (d *Desktop) SetVolume(v int) int {
	v = clampLevel(v)
	d.mu.Lock()
	d.state.Volume = v
	d.mu.Unlock()

	d.changed("volume")
	return v
}

// SetBrightness sets the brightness, clamped to 0-100, and returns the stored value.
func (d *Desktop) SetBrightness(v int) int {
	v = clampLevel(v)
	d.mu.Lock()
	d.state.Brightness = v
	d.mu.Unlock()

	d.changed("brightness")
	return v
}

// Apply updates every non-nil field of req. An invalid theme aborts before
// anything changes.
func (d *Desktop) Apply(req types.SettingsRequest) (types.DesktopState, error) {
	if req.Theme != nil && !req.Theme.Valid() {
		return d.State(), fmt.Errorf("unknown theme: %q", *req.Theme)
	}
	if req.Theme != nil {
		_ = d.SetTheme(*req.Theme)
	}
	if req.Volume != nil {
		d.SetVolume(*req.Volume)
	}
	if req.Brightness != nil {
		d.SetBrightness(*req.Brightness)
	}
	return d.State(), nil
}

// Reset restores the defaults the desktop was created with.
func (d *Desktop) Reset() {
	d.mu.Lock()
	d.state = d.defaults()
	d.mu.Unlock()

	d.changed("reset")
}

func (d *Desktop) defaults() types.DesktopState {
	return types.DesktopState{
		Theme:      types.ThemeDark,
		Wallpaper:  d.initial,
		Volume:     DefaultVolume,
		Brightness: DefaultBrightness,
	}
}

func (d *Desktop) changed(op string) {
	d.bus.Publish(events.Event{Type: events.DesktopChanged, Op: op})
}

func clampLevel(v int) int {
	return min(max(v, 0), 100)
}
