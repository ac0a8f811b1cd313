// Package settings manages persistent user settings for the nodenet CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// DefaultNode is the system id to use when -n is not specified
	DefaultNode string `json:"default_node,omitempty"`

	// RedisAddr overrides the default controller cache address
	RedisAddr string `json:"redis_addr,omitempty"`

	// SSHHost tunnels cache access through a controller host
	SSHHost string `json:"ssh_host,omitempty"`

	// SSHUser is the user for SSHHost
	SSHUser string `json:"ssh_user,omitempty"`

	// TopologyPath points at a topology YAML file instead of the cache
	TopologyPath string `json:"topology_path,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "nodenet_settings.json"
	}
	return filepath.Join(home, ".nodenet", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetRedisAddr returns the cache address (with fallback)
func (s *Settings) GetRedisAddr() string {
	if s.RedisAddr != "" {
		return s.RedisAddr
	}
	return "127.0.0.1:6379"
}

// GetSSHUser returns the SSH user (with fallback)
func (s *Settings) GetSSHUser() string {
	if s.SSHUser != "" {
		return s.SSHUser
	}
	return "admin"
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
