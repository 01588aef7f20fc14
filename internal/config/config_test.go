package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, SourceSDK, cfg.Source)
	assert.Equal(t, RobotKindLive, cfg.Workspace.Kind)
	assert.Equal(t, []string{"speed_rpm", "load_pct", "at_home"}, cfg.Variables)
	assert.Equal(t, 1*time.Second, cfg.Refresh)
	assert.Equal(t, 300, cfg.History)
	assert.Equal(t, 502, cfg.Modbus.Port)
	assert.Equal(t, byte(1), cfg.Modbus.UnitID)
	assert.Equal(t, uint16(1), cfg.Modbus.Count)
	assert.Equal(t, 3*time.Second, cfg.Modbus.Timeout)
}

func TestLoad(t *testing.T) {
	// Create a temp config file
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".ro1mon.yaml")

	content := `
version: 1
source: sdk
workspace:
  url: https://cb2114.sb.app
  token: sb-token-abc123
  kind: simulated
variables:
  - cycle_count
  - gripper_closed
  - last_fault
refresh: 2s
history: 120
modbus:
  host: 192.168.1.20
  port: 1502
  unit_id: 3
  register: 40
  count: 4
rest:
  base_url: http://192.168.1.20
  variable_ids: [1, 2, 7]
presets:
  path: /tmp/presets.json
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, SourceSDK, cfg.Source)
	assert.Equal(t, "https://cb2114.sb.app", cfg.Workspace.URL)
	assert.Equal(t, "sb-token-abc123", cfg.Workspace.Token)
	assert.Equal(t, RobotKindSimulated, cfg.Workspace.Kind)
	assert.Equal(t, []string{"cycle_count", "gripper_closed", "last_fault"}, cfg.Variables)
	assert.Equal(t, 2*time.Second, cfg.Refresh)
	assert.Equal(t, 120, cfg.History)
	assert.Equal(t, "192.168.1.20", cfg.Modbus.Host)
	assert.Equal(t, 1502, cfg.Modbus.Port)
	assert.Equal(t, byte(3), cfg.Modbus.UnitID)
	assert.Equal(t, uint16(40), cfg.Modbus.Register)
	assert.Equal(t, uint16(4), cfg.Modbus.Count)
	assert.Equal(t, "http://192.168.1.20", cfg.REST.BaseURL)
	assert.Equal(t, []int{1, 2, 7}, cfg.REST.VariableIDs)
	assert.Equal(t, "/tmp/presets.json", cfg.Presets.Path)
}

func TestLoadPartialFileGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".ro1mon.yaml")

	content := `
workspace:
  url: https://cb2114.sb.app
  token: tok
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Unset keys fall back to defaults
	assert.Equal(t, SourceSDK, cfg.Source)
	assert.Equal(t, RobotKindLive, cfg.Workspace.Kind)
	assert.Equal(t, 1*time.Second, cfg.Refresh)
	assert.Equal(t, 300, cfg.History)
	assert.Equal(t, 502, cfg.Modbus.Port)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/.ro1mon.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Config file not found")
}

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) (string, func())
		wantErr bool
	}{
		{
			name: "explicit path exists",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, "custom.yaml")
				err := os.WriteFile(path, []byte("version: 1"), 0644)
				require.NoError(t, err)
				return path, func() {}
			},
			wantErr: false,
		},
		{
			name: "explicit path not found",
			setup: func(t *testing.T) (string, func()) {
				return "/nonexistent/config.yaml", func() {}
			},
			wantErr: true,
		},
		{
			name: "current directory has config",
			setup: func(t *testing.T) (string, func()) {
				dir := t.TempDir()
				path := filepath.Join(dir, ConfigFileName)
				err := os.WriteFile(path, []byte("version: 1"), 0644)
				require.NoError(t, err)

				oldWd, _ := os.Getwd()
				err = os.Chdir(dir)
				require.NoError(t, err)

				return "", func() { os.Chdir(oldWd) }
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explicit, cleanup := tt.setup(t)
			defer cleanup()

			path, err := Find(explicit)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if explicit != "" {
					assert.Equal(t, explicit, path)
				} else {
					assert.NotEmpty(t, path)
				}
			}
		})
	}
}

func TestPresetsPath(t *testing.T) {
	cfg := &Config{Presets: PresetConfig{Path: "/tmp/my-presets.json"}}
	assert.Equal(t, "/tmp/my-presets.json", cfg.PresetsPath())

	cfg = &Config{}
	path := cfg.PresetsPath()
	assert.Contains(t, path, PresetsFileName)
}

func validSDKConfig() *Config {
	cfg := DefaultConfig()
	cfg.Workspace.URL = "https://cb2114.sb.app"
	cfg.Workspace.Token = "tok"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid sdk config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name: "version too high",
			mutate: func(cfg *Config) {
				cfg.Version = CurrentConfigVersion + 1
			},
			wantErr: true,
			errMsg:  "from the future",
		},
		{
			name: "unknown source",
			mutate: func(cfg *Config) {
				cfg.Source = "opcua"
			},
			wantErr: true,
			errMsg:  "isn't valid",
		},
		{
			name: "refresh too fast",
			mutate: func(cfg *Config) {
				cfg.Refresh = 100 * time.Millisecond
			},
			wantErr: true,
			errMsg:  "too fast",
		},
		{
			name: "refresh at the floor is allowed",
			mutate: func(cfg *Config) {
				cfg.Refresh = MinRefresh
			},
			wantErr: false,
		},
		{
			name: "zero history",
			mutate: func(cfg *Config) {
				cfg.History = 0
			},
			wantErr: true,
			errMsg:  "at least 1",
		},
		{
			name: "sdk source missing url",
			mutate: func(cfg *Config) {
				cfg.Workspace.URL = ""
			},
			wantErr: true,
			errMsg:  "workspace.url",
		},
		{
			name: "sdk source missing token",
			mutate: func(cfg *Config) {
				cfg.Workspace.Token = ""
			},
			wantErr: true,
			errMsg:  "workspace.token",
		},
		{
			name: "url without scheme",
			mutate: func(cfg *Config) {
				cfg.Workspace.URL = "cb2114.sb.app"
			},
			wantErr: true,
			errMsg:  "doesn't look like a URL",
		},
		{
			name: "bad robot kind",
			mutate: func(cfg *Config) {
				cfg.Workspace.Kind = "virtual"
			},
			wantErr: true,
			errMsg:  "workspace.kind",
		},
		{
			name: "modbus source missing host",
			mutate: func(cfg *Config) {
				cfg.Source = SourceModbus
				cfg.Modbus.Host = ""
			},
			wantErr: true,
			errMsg:  "modbus.host",
		},
		{
			name: "valid modbus config",
			mutate: func(cfg *Config) {
				cfg.Source = SourceModbus
				cfg.Modbus.Host = "192.168.1.20"
			},
			wantErr: false,
		},
		{
			name: "modbus count over protocol limit",
			mutate: func(cfg *Config) {
				cfg.Source = SourceModbus
				cfg.Modbus.Host = "192.168.1.20"
				cfg.Modbus.Count = 126
			},
			wantErr: true,
			errMsg:  "out of range",
		},
		{
			name: "rest source missing base url",
			mutate: func(cfg *Config) {
				cfg.Source = SourceREST
			},
			wantErr: true,
			errMsg:  "rest.base_url",
		},
		{
			name: "rest source missing variable ids",
			mutate: func(cfg *Config) {
				cfg.Source = SourceREST
				cfg.REST.BaseURL = "http://192.168.1.20"
			},
			wantErr: true,
			errMsg:  "variable_ids",
		},
		{
			name: "valid rest config",
			mutate: func(cfg *Config) {
				cfg.Source = SourceREST
				cfg.REST.BaseURL = "http://192.168.1.20"
				cfg.REST.VariableIDs = []int{1, 2}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validSDKConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	// Change to a directory without config
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	err := os.Chdir(dir)
	require.NoError(t, err)
	defer os.Chdir(oldWd)

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, SourceSDK, cfg.Source)
}
