package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Seeder fills the registry from the built-in catalogue and manifest files
type Seeder struct {
	manager *Manager
	logger  *zap.Logger
}

// NewSeeder creates a new app seeder
func NewSeeder(manager *Manager, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		manager: manager,
		logger:  logger,
	}
}

// SeedDefaults registers the built-in apps that are not registered yet
func (s *Seeder) SeedDefaults() error {
	var seeded int
	for _, app := range defaultApps {
		if _, exists := s.manager.Lookup(app.ID); exists {
			continue
		}
		if err := s.manager.Register(app); err != nil {
			return fmt.Errorf("failed to seed %s: %w", app.ID, err)
		}
		seeded++
	}
	s.logger.Info("Seeded default apps", zap.Int("count", seeded))
	return nil
}

// SeedManifests loads every *.yaml, *.yml, *.toml and *.json manifest in dir.
// Bad manifests are logged and skipped; a missing directory is not an error.
func (s *Seeder) SeedManifests(dir string) (loaded, failed int, err error) {
	if dir == "" {
		return 0, 0, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Manifest directory not found", zap.String("dir", dir))
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read manifest dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		decode, ok := decoderFor(path)
		if !ok {
			continue
		}

		if err := s.loadManifest(path, decode); err != nil {
			s.logger.Warn("Failed to load manifest", zap.String("file", entry.Name()), zap.Error(err))
			failed++
			continue
		}
		s.logger.Debug("Loaded manifest", zap.String("file", entry.Name()))
		loaded++
	}

	s.logger.Info("Manifest seeding complete", zap.Int("loaded", loaded), zap.Int("failed", failed))
	return loaded, failed, nil
}

type decodeFunc func(data []byte, v interface{}) error

func decoderFor(path string) (decodeFunc, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal, true
	case ".toml":
		return toml.Unmarshal, true
	case ".json":
		return sonic.Unmarshal, true
	default:
		return nil, false
	}
}

func (s *Seeder) loadManifest(path string, decode decodeFunc) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var app types.AppDefinition
	if err := decode(data, &app); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	if app.Category == "" {
		app.Category = types.CategoryDev
	}
	return s.manager.Register(app)
}
