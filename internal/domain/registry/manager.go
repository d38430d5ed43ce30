package registry

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
	"github.com/GriffinCanCode/ros/backend/internal/shared/utils"
)

// Well-known application ids.
const (
	Terminal = "terminal"
	Explorer = "explorer"
	Browser  = "browser"
	Code     = "code"
	Notepad  = "notepad"
	Monitor  = "monitor"
	Media    = "media"
	Settings = "settings"
)

// Manager is the application registry. Entries keep registration order.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]types.AppEntry
	order   []string
}

// NewManager creates an empty registry
func NewManager() *Manager {
	return &Manager{entries: make(map[string]types.AppEntry)}
}

// Default returns a registry seeded with the built-in applications.
func Default() *Manager {
	m := NewManager()
	if err := NewSeeder(m).SeedBuiltin(); err != nil {
		// apps.yaml is compiled in; failing to parse it is a build defect.
		panic(fmt.Sprintf("registry: invalid built-in apps: %v", err))
	}
	return m
}

// Register adds or replaces an entry.
func (m *Manager) Register(entry types.AppEntry) error {
	if err := utils.ValidateID(entry.ID, "app id", true); err != nil {
		return err
	}
	if entry.DefaultWidth <= 0 || entry.DefaultHeight <= 0 {
		return fmt.Errorf("app %s: default size must be positive", entry.ID)
	}
	if entry.Title == "" {
		entry.Title = entry.ID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[entry.ID]; !exists {
		m.order = append(m.order, entry.ID)
	}
	m.entries[entry.ID] = entry
	return nil
}

// Get looks up an application by id.
func (m *Manager) Get(id string) (types.AppEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	return entry, ok
}

// List returns every entry in registration order.
func (m *Manager) List() []types.AppEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.AppEntry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id])
	}
	return out
}

// Desktop returns the entries that get a desktop icon.
func (m *Manager) Desktop() []types.AppEntry {
	all := m.List()
	out := all[:0]
	for _, e := range all {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

// Stats returns registry statistics
func (m *Manager) Stats() types.RegistryStats {
	return types.RegistryStats{
		TotalApps:   len(m.List()),
		DesktopApps: len(m.Desktop()),
	}
}
