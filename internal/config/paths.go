package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvConfig overrides the config file location.
	EnvConfig = envPrefix + "_CONFIG"

	configDir  = ".mpmerge"
	configName = "config.yaml"
)

// DefaultConfigFile returns ~/.mpmerge/config.yaml.
func DefaultConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, configDir, configName), nil
}

// GetConfigFile returns the config file used when no --config flag is
// given: MPMERGE_CONFIG if set, else the default.
func GetConfigFile() (string, error) {
	res, err := ResolveConfigPath("")
	return res.ConfigPath, err
}

// ExpandPath replaces a leading "~" or "~/" with the home directory.
// "~user" forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, rest), nil
}
