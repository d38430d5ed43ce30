package registry

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/ros/backend/internal/shared/types"
)

//go:embed apps.yaml
var builtinApps []byte

type appsFile struct {
	Apps []types.AppEntry `yaml:"apps"`
}

// Seeder loads application entries into a Manager.
type Seeder struct {
	manager *Manager
}

// NewSeeder creates a new app seeder
func NewSeeder(manager *Manager) *Seeder {
	return &Seeder{manager: manager}
}

// SeedBuiltin registers the compiled-in applications.
func (s *Seeder) SeedBuiltin() error {
	return s.SeedYAML(builtinApps)
}

// SeedFile registers applications from a YAML file on disk.
func (s *Seeder) SeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read apps file: %w", err)
	}
	return s.SeedYAML(data)
}

// SeedYAML registers every entry in data. It stops at the first invalid entry.
func (s *Seeder) SeedYAML(data []byte) error {
	var file appsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse apps: %w", err)
	}
	for _, entry := range file.Apps {
		if err := s.manager.Register(entry); err != nil {
			return err
		}
	}
	return nil
}
