package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		configDir  string
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				ListenAddr:      ":8081",
				GatewayURL:      "http://example.com",
				AccountsFile:    "/etc/accounts.toml",
				CycleInterval:   "2s",
				Concurrency:     5,
				HTTPTimeout:     "30s",
				ShutdownTimeout: "45s",
				MaxBodyBytes:    4096,
				LogLevel:        "error",
			},
			changed: map[string]bool{},
			expected: Config{
				ListenAddr:      ":8081",
				GatewayURL:      "http://example.com",
				AccountsFile:    "/etc/accounts.toml",
				CycleInterval:   2 * time.Second,
				Concurrency:     5,
				HTTPTimeout:     30 * time.Second,
				ShutdownTimeout: 45 * time.Second,
				MaxBodyBytes:    4096,
				LogLevel:        "error",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				ListenAddr:  ":8081",
				Concurrency: 5,
			},
			changed: map[string]bool{"concurrency": true},
			initial: Config{Concurrency: 20},
			expected: Config{
				ListenAddr:  ":8081",
				Concurrency: 20, // unchanged because flag was set
			},
		},
		{
			name:       "relative accounts file resolved against config dir",
			fileConfig: FileConfig{AccountsFile: "accounts.toml"},
			changed:    map[string]bool{},
			configDir:  "/etc/shiprelay",
			expected:   Config{AccountsFile: filepath.Join("/etc/shiprelay", "accounts.toml")},
		},
		{
			name:       "absolute accounts file kept",
			fileConfig: FileConfig{AccountsFile: "/srv/accounts.toml"},
			changed:    map[string]bool{},
			configDir:  "/etc/shiprelay",
			expected:   Config{AccountsFile: "/srv/accounts.toml"},
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{HTTPTimeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed, tt.configDir)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
listen_addr = ":4100"
gateway_url = "https://app.orderdesk.me/api/v2"
accounts_file = "accounts.toml"
cycle_interval = "5s"
concurrency = 8
max_body_bytes = 65536
log_level = "debug"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.ListenAddr != ":4100" {
		t.Errorf("ListenAddr = %v, want :4100", fc.ListenAddr)
	}
	if fc.AccountsFile != "accounts.toml" {
		t.Errorf("AccountsFile = %v, want accounts.toml", fc.AccountsFile)
	}
	if fc.CycleInterval != "5s" {
		t.Errorf("CycleInterval = %v, want 5s", fc.CycleInterval)
	}
	if fc.Concurrency != 8 {
		t.Errorf("Concurrency = %v, want 8", fc.Concurrency)
	}
	if fc.MaxBodyBytes != 65536 {
		t.Errorf("MaxBodyBytes = %v, want 65536", fc.MaxBodyBytes)
	}
	if fc.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", fc.LogLevel)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
listen_addr = ":4000"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".shiprelay") {
		t.Errorf("DefaultConfigPath() = %v, should contain .shiprelay", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
