package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"framegrip/internal/domain"
	"framegrip/internal/eventbus"
)

// ErrNotFound is returned when an explicitly requested config file is missing
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	Editor     EditorSettings `toml:"editor"`
	UISettings UISettings     `toml:"ui"`
}

// EditorSettings configures the selection overlays
type EditorSettings struct {
	CopyPaste   bool   `toml:"copy_paste"`   // bind ctrl+c / ctrl+v
	ShowToolbar bool   `toml:"show_toolbar"` // show the selection toolbar
	StylePrefix string `toml:"style_prefix"` // prefix of body state classes
	BadgeLabel  string `toml:"badge_label"`  // badge template, see BadgeLabelFunc
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelp   bool `toml:"show_help"`
	ScrollStep int  `toml:"scroll_step"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	explicit bool // the path was requested, not the default location
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "framegrip", "config.toml")
}

// NewConfigService creates a config service for the default location
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects the default location; any other path must exist
// when loading.
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		return &configService{filePath: DefaultPath(), bus: bus}
	}
	return &configService{filePath: path, bus: bus, explicit: true}
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file at the default
// location yields the defaults; a missing explicit path is ErrNotFound.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) && !cs.explicit {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	// Publish ConfigLoaded event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset keys keep their defaults
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.UISettings.ScrollStep < 1 {
		c.UISettings.ScrollStep = 1
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Editor: EditorSettings{
			CopyPaste:   true,
			ShowToolbar: true,
			StylePrefix: "gjs-",
		},
		UISettings: UISettings{
			ShowHelp:   true,
			ScrollStep: 1,
		},
	}
}

// BadgeLabelFunc compiles a badge template into a label function. The
// template may use {icon}, {name}, {type} and {id}. An empty template
// returns nil so the default label is used.
func BadgeLabelFunc(template string) func(*domain.Component) string {
	if template == "" {
		return nil
	}
	return func(c *domain.Component) string {
		return strings.NewReplacer(
			"{icon}", c.Icon,
			"{name}", c.GetName(),
			"{type}", c.Type,
			"{id}", c.ID,
		).Replace(template)
	}
}
