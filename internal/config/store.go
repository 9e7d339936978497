package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"provardx-cli/pkg/logging"
)

const (
	// PropertiesFilePathKey holds the path of the active properties file.
	PropertiesFilePathKey = "PROVARDX_PROPERTIES_FILE_PATH"

	// ConfigDirEnv overrides the directory holding config.json.
	ConfigDirEnv = "PROVARDX_CONFIG_DIR"

	configDirName  = ".provardx"
	configFileName = "config.json"
	configFileType = "json"
)

// Store implements the ConfigStore interface on top of a viper instance
// backed by config.json.
type Store struct {
	v    *viper.Viper
	path string
}

// NewStore creates a store for the config.json inside dir
func NewStore(dir string) *Store {
	path := filepath.Join(expandPath(dir), configFileName)
	return &Store{
		v:    newViper(path),
		path: path,
	}
}

// NewDefaultStore creates a store for the default configuration directory
func NewDefaultStore() (*Store, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir), nil
}

// DefaultDir returns $PROVARDX_CONFIG_DIR, or ~/.provardx when unset
func DefaultDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return expandPath(dir), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(configFileType)
	v.AutomaticEnv()
	return v
}

// Path returns the location of config.json
func (s *Store) Path() string {
	return s.path
}

// Load reads config.json. A missing file is not an error.
func (s *Store) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		logging.Debug("Config", "no config file at %s, starting empty", s.path)
		return nil
	}

	if err := s.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", s.path, err)
	}
	return nil
}

// Get returns the value stored under key. Environment variables named like
// the key take precedence over the file.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Persisted returns the value for key as saved in config.json. Environment
// variables and unsaved changes are not consulted.
func (s *Store) Persisted(key string) string {
	file := viper.New()
	file.SetConfigFile(s.path)
	file.SetConfigType(configFileType)
	if err := file.ReadInConfig(); err != nil {
		return ""
	}
	return file.GetString(key)
}

// Set stores value under key
func (s *Store) Set(key string, value string) {
	s.v.Set(key, value)
}

// Unset removes key. viper cannot delete a key, so the remaining settings
// are copied into a fresh instance.
func (s *Store) Unset(key string) {
	settings := s.v.AllSettings()
	delete(settings, strings.ToLower(key))

	v := newViper(s.path)
	if err := v.MergeConfigMap(settings); err != nil {
		logging.Warn("Config", "failed to rebuild settings after removing %s: %v", key, err)
		return
	}
	s.v = v
}

// Write persists the settings to config.json, creating its directory first.
func (s *Store) Write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", s.path, err)
	}
	return nil
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}

// ExpandPath expands a leading ~/ in a user-supplied path
func ExpandPath(path string) string {
	return expandPath(path)
}
