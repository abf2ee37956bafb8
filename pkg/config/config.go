package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	rserrors "thoreinstein.com/reposcan/pkg/errors"
)

// AppName names the configuration directory and environment prefix.
const AppName = "reposcan"

// Config represents the application configuration
type Config struct {
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Projects  ProjectsConfig  `mapstructure:"projects"`
}

// DiscoveryConfig holds repository discovery configuration
type DiscoveryConfig struct {
	Root string `mapstructure:"root"` // Directory scanned when no root is given (default: ~/src)
}

// ProjectsConfig holds project store configuration
type ProjectsConfig struct {
	File string `mapstructure:"file"` // Project list file; format follows the extension
}

// ValidStoreExtensions lists the project file extensions the store can read.
var ValidStoreExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Expand paths
	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if c.Projects.File == "" {
		return rserrors.NewConfigError("projects.file", "must not be empty")
	}
	ext := strings.ToLower(filepath.Ext(c.Projects.File))
	if !slices.Contains(ValidStoreExtensions, ext) {
		return rserrors.NewConfigError("projects.file",
			fmt.Sprintf("unsupported extension %q: must be one of %s", ext, strings.Join(ValidStoreExtensions, ", ")))
	}
	return nil
}

// DefaultProjectsFile returns the default project list location under the
// XDG config directory.
func DefaultProjectsFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "projects.toml")
}

// setDefaults sets default configuration values
func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home dir can't be determined
		homeDir = "."
	}

	// Discovery defaults
	viper.SetDefault("discovery.root", filepath.Join(homeDir, "src"))

	// Projects defaults
	viper.SetDefault("projects.file", DefaultProjectsFile())
}

// expandPaths expands ~ and environment variables in paths
func expandPaths(config *Config) error {
	var err error

	config.Discovery.Root, err = expandPath(config.Discovery.Root)
	if err != nil {
		return err
	}

	config.Projects.File, err = expandPath(config.Projects.File)
	if err != nil {
		return err
	}

	return nil
}

// expandPath expands ~ to home directory and $VARS
func expandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}
