package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	rserrors "thoreinstein.com/reposcan/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Discovery.Root != filepath.Join(home, "src") {
		t.Errorf("Discovery.Root = %q, want %q", cfg.Discovery.Root, filepath.Join(home, "src"))
	}
	if !strings.HasSuffix(cfg.Projects.File, filepath.Join(AppName, "projects.toml")) {
		t.Errorf("Projects.File = %q, want it under the %s config dir", cfg.Projects.File, AppName)
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	home := t.TempDir()
	t.Setenv("HOME", home)

	viper.Set("discovery.root", "~/code")
	viper.Set("projects.file", "~/.local/state/projects.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Discovery.Root != filepath.Join(home, "code") {
		t.Errorf("Discovery.Root = %q", cfg.Discovery.Root)
	}
	if cfg.Projects.File != filepath.Join(home, ".local", "state", "projects.json") {
		t.Errorf("Projects.File = %q", cfg.Projects.File)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{"toml", "/cfg/projects.toml", false},
		{"yaml", "/cfg/projects.yaml", false},
		{"yml upper", "/cfg/projects.YML", false},
		{"json", "/cfg/projects.json", false},
		{"empty", "", true},
		{"unknown", "/cfg/projects.ini", true},
		{"no extension", "/cfg/projects", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Projects: ProjectsConfig{File: tt.file}}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !rserrors.IsConfigError(err) {
				t.Errorf("Validate() error should be a ConfigError, got %T", err)
			}
		})
	}
}
