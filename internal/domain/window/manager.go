package window

import (
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ros/backend/internal/domain/events"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ros/backend/internal/shared/id"
	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

const (
	// CascadeOrigin is where the first window opens.
	CascadeOrigin = 50
	// CascadeStep offsets each further window right and down.
	CascadeStep = 30
	// BaseZIndex is the counter's starting value; the first window gets 11.
	BaseZIndex = 10
)

// Registry resolves application ids to their defaults.
type Registry interface {
	Get(id string) (types.AppEntry, bool)
}

// Manager owns the open windows, their stacking and which one is active.
// Windows are kept in open order; z-order is a separate, strictly increasing
// counter handed out on every focus-affecting operation.
type Manager struct {
	mu       sync.RWMutex
	windows  []*types.Window // Protected by mu
	active   string          // Protected by mu; "" means none
	zCounter int             // Protected by mu

	registry Registry
	newID    func() string
	bus      *events.Bus
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewManager creates a new window manager
func NewManager(registry Registry) *Manager {
	return &Manager{
		registry: registry,
		zCounter: BaseZIndex,
		newID:    func() string { return id.NewWindowID().String() },
		logger:   zap.NewNop(),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithLogger sets the manager's logger
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithBus publishes window transitions on bus
func (m *Manager) WithBus(bus *events.Bus) *Manager {
	m.bus = bus
	return m
}

// WithIDGenerator overrides how window ids are minted
func (m *Manager) WithIDGenerator(gen func() string) *Manager {
	m.newID = gen
	return m
}

// Open creates a window for appID and makes it active. Unknown ids are
// ignored and report ok=false.
func (m *Manager) Open(appID string, props map[string]any) (types.Window, bool) {
	app, ok := m.registry.Get(appID)
	if !ok {
		m.logger.Debug("ignoring open of unknown app", zap.String("app_id", appID))
		return types.Window{}, false
	}

	m.mu.Lock()
	offset := CascadeOrigin + len(m.windows)*CascadeStep
	m.zCounter++
	win := &types.Window{
		ID:     m.newID(),
		AppID:  app.ID,
		Title:  app.Title,
		X:      offset,
		Y:      offset,
		Width:  app.DefaultWidth,
		Height: app.DefaultHeight,
		ZIndex: m.zCounter,
		Props:  maps.Clone(props),
	}
	m.windows = append(m.windows, win)
	m.active = win.ID
	out := m.copyOf(win)
	m.mu.Unlock()

	m.changed("open", win.ID)
	return out, true
}

// Close removes a window. If it was active, nothing is active afterwards.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	i := m.index(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.windows = slices.Delete(m.windows, i, i+1)
	if m.active == id {
		m.active = ""
	}
	m.mu.Unlock()

	m.changed("close", id)
	return true
}

// CloseActive closes the active window, if there is one.
func (m *Manager) CloseActive() (string, bool) {
	m.mu.RLock()
	active := m.active
	m.mu.RUnlock()

	if active == "" {
		return "", false
	}
	return active, m.Close(active)
}

// Focus makes id active and raises it above every other window. Focusing a
// minimized window restores it, since the active window is never minimized.
func (m *Manager) Focus(id string) bool {
	m.mu.Lock()
	win := m.find(id)
	if win == nil {
		m.mu.Unlock()
		return false
	}
	m.focusLocked(win)
	m.mu.Unlock()

	m.changed("focus", id)
	return true
}

// Minimize toggles the minimized bit. If the window was active, nothing is
// active afterwards, whichever way the bit went.
func (m *Manager) Minimize(id string) bool {
	m.mu.Lock()
	win := m.find(id)
	if win == nil {
		m.mu.Unlock()
		return false
	}
	win.IsMinimized = !win.IsMinimized
	if m.active == id {
		m.active = ""
	}
	m.mu.Unlock()

	m.changed("minimize", id)
	return true
}

// Maximize toggles the maximized bit and then focuses the window. Like
// Focus, this restores a minimized window and makes it active.
func (m *Manager) Maximize(id string) bool {
	m.mu.Lock()
	win := m.find(id)
	if win == nil {
		m.mu.Unlock()
		return false
	}
	win.IsMaximized = !win.IsMaximized
	m.focusLocked(win)
	m.mu.Unlock()

	m.changed("maximize", id)
	return true
}

// Move overwrites the window position. Callers are expected not to drag
// maximized windows; the manager does not check.
func (m *Manager) Move(id string, x, y int) bool {
	m.mu.Lock()
	win := m.find(id)
	if win == nil {
		m.mu.Unlock()
		return false
	}
	win.X, win.Y = x, y
	m.mu.Unlock()

	m.changed("move", id)
	return true
}

// Blur clears the active window, as a click on the bare desktop does.
func (m *Manager) Blur() {
	m.mu.Lock()
	m.active = ""
	m.mu.Unlock()

	m.changed("blur", "")
}

// ToggleApp implements a taskbar click: if appID has windows, toggle
// minimize on the most recently opened one, otherwise open it.
func (m *Manager) ToggleApp(appID string) bool {
	m.mu.RLock()
	var last string
	for _, w := range m.windows {
		if w.AppID == appID {
			last = w.ID
		}
	}
	m.mu.RUnlock()

	if last != "" {
		return m.Minimize(last)
	}
	_, ok := m.Open(appID, nil)
	return ok
}

// Reset closes every window and rewinds the z-order counter.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.windows = nil
	m.active = ""
	m.zCounter = BaseZIndex
	m.mu.Unlock()

	m.changed("reset", "")
}

// Get retrieves a window by ID
func (m *Manager) Get(id string) (types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win := m.find(id)
	if win == nil {
		return types.Window{}, false
	}
	return m.copyOf(win), true
}

// List returns copies of all windows in open order.
func (m *Manager) List() []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, m.copyOf(w))
	}
	return out
}

// Visible returns the windows to render, bottom to top.
func (m *Manager) Visible() []types.Window {
	all := m.List()
	out := all[:0]
	for _, w := range all {
		if !w.IsMinimized {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b types.Window) int { return a.ZIndex - b.ZIndex })
	return out
}

// Active returns the active window id, or "".
func (m *Manager) Active() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Stats returns manager statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.Stats{
		OpenWindows:    len(m.windows),
		ActiveWindowID: m.active,
		TopZIndex:      m.zCounter,
	}
	for _, w := range m.windows {
		if w.IsMinimized {
			stats.MinimizedWindows++
		}
	}
	return stats
}

// focusLocked must be called with mu held.
func (m *Manager) focusLocked(win *types.Window) {
	m.zCounter++
	win.ZIndex = m.zCounter
	win.IsMinimized = false
	m.active = win.ID
}

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.windows, func(w *types.Window) bool { return w.ID == id })
}

func (m *Manager) find(id string) *types.Window {
	if i := m.index(id); i >= 0 {
		return m.windows[i]
	}
	return nil
}

func (m *Manager) copyOf(w *types.Window) types.Window {
	c := *w
	c.Props = maps.Clone(w.Props)
	return c
}

func (m *Manager) changed(op, id string) {
	m.mu.RLock()
	count := len(m.windows)
	m.mu.RUnlock()

	m.metrics.SetWindowsOpen(count)
	m.bus.Publish(events.Event{Type: events.WindowsChanged, Op: op, Path: id})
}
