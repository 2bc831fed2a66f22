package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LazyCloudConfig represents the lazycloud configuration file. It is an
// optional fallback for the three App Store Connect secrets; environment
// variables always take priority.
type LazyCloudConfig struct {
	IssuerID string `yaml:"issuer_id,omitempty"`
	KeyID    string `yaml:"key_id,omitempty"`
	Key      string `yaml:"key,omitempty"`
	KeyPath  string `yaml:"key_path,omitempty"`
}

// GetConfigDir returns the lazycloud config directory path
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lazycloud"), nil
}

// GetConfigPath returns the lazycloud config file path
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// LoadLazyCloudConfig reads the lazycloud configuration
func LoadLazyCloudConfig() (*LazyCloudConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config LazyCloudConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// KeyBlob returns the key material from the config: the inline key if set,
// otherwise the contents of key_path.
func (c *LazyCloudConfig) KeyBlob() (string, error) {
	if c.Key != "" {
		return c.Key, nil
	}
	if c.KeyPath == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.KeyPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
