package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const (
	ConfigKind       = "Config"
	ConfigApiVersion = "gaia.dev/v1"

	DefaultNamespace     = "default"
	DefaultListenAddress = ":8080"
	DefaultFieldManager  = "gaia"

	// DevProfile makes sync overwrite existing records with the cluster state.
	DevProfile = "dev"
)

type Config struct {
	metav1.TypeMeta `json:",inline"`

	// DefaultNamespace is used for records without a namespace and
	// scopes the sync of namespaced kinds.
	DefaultNamespace string `json:"defaultNamespace"`

	// Profiles holds the active profiles.
	Profiles []string `json:"profiles,omitempty"`

	// StorePath is the path of the record database,
	// defaults to '$HOME/.gaia/gaia.db'.
	StorePath string `json:"storePath,omitempty"`

	// ListenAddress is the address of the HTTP API.
	ListenAddress string `json:"listenAddress"`

	// FieldManager sets the field manager for the objects written by gaia.
	FieldManager string `json:"fieldManager"`
}

// NewConfig returns a config with the default values.
func NewConfig() *Config {
	return &Config{
		TypeMeta: metav1.TypeMeta{
			Kind:       ConfigKind,
			APIVersion: ConfigApiVersion,
		},
		DefaultNamespace: DefaultNamespace,
		ListenAddress:    DefaultListenAddress,
		FieldManager:     DefaultFieldManager,
	}
}

// HasProfile reports whether the named profile is active.
func (c *Config) HasProfile(name string) bool {
	for _, p := range c.Profiles {
		if p == name {
			return true
		}
	}
	return false
}

// OverwriteOnSync reports whether sync replaces existing records.
func (c *Config) OverwriteOnSync() bool {
	return c.HasProfile(DevProfile)
}

// DefaultConfigPath returns '$HOME/.gaia/config'
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".gaia/config"), nil
}

// DefaultStorePath returns '$HOME/.gaia/gaia.db'
func DefaultStorePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".gaia/gaia.db"), nil
}

// Read loads the config from the specified path,
// if the config file is not found, a default is returned.
func Read(configPath string) (*Config, error) {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("$HOME dir can't be determined, error: %w", err)
		}
		configPath = p
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return NewConfig(), nil
	}

	cfgData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(cfgData, cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultNamespace == "" {
		cfg.DefaultNamespace = DefaultNamespace
	}

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if cfg.FieldManager == "" {
		cfg.FieldManager = DefaultFieldManager
	}

	return cfg, nil
}

// Write saves the config at the given path, if no path is specified
// it will create or override '$HOME/.gaia/config'.
func (c *Config) Write(configPath string) error {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), os.FileMode(0755)); err != nil {
		return err
	}

	cfgData, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, cfgData, os.FileMode(0644)); err != nil {
		return err
	}

	return nil
}
