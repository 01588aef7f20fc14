package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Source names accepted by the `source` key and the --source flag.
const (
	SourceSDK    = "sdk"
	SourceModbus = "modbus"
	SourceREST   = "rest"
)

// Robot kinds accepted by the workspace `kind` key.
const (
	RobotKindLive      = "live"
	RobotKindSimulated = "simulated"
)

// Config represents the complete .ro1mon.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Source    string          `yaml:"source" mapstructure:"source"`
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`
	Variables []string        `yaml:"variables" mapstructure:"variables"`
	Refresh   time.Duration   `yaml:"refresh" mapstructure:"refresh"`
	History   int             `yaml:"history" mapstructure:"history"`
	Modbus    ModbusConfig    `yaml:"modbus" mapstructure:"modbus"`
	REST      RESTConfig      `yaml:"rest" mapstructure:"rest"`
	Presets   PresetConfig    `yaml:"presets" mapstructure:"presets"`
}

// WorkspaceConfig holds the vendor SDK connection settings.
type WorkspaceConfig struct {
	// URL is the workspace endpoint, e.g. https://cb2114.sb.app.
	URL string `yaml:"url" mapstructure:"url"`

	// Token is the API token used as a bearer credential.
	Token string `yaml:"token" mapstructure:"token"`

	// Kind selects the robot target: "live" or "simulated".
	Kind string `yaml:"kind" mapstructure:"kind"`
}

// ModbusConfig holds the raw Modbus TCP connection settings.
type ModbusConfig struct {
	// Host is the controller IP or hostname.
	Host string `yaml:"host" mapstructure:"host"`

	// Port is the Modbus TCP port (502 by convention).
	Port int `yaml:"port" mapstructure:"port"`

	// UnitID is the Modbus unit/slave identifier.
	UnitID byte `yaml:"unit_id" mapstructure:"unit_id"`

	// Register is the first holding register address to read.
	Register uint16 `yaml:"register" mapstructure:"register"`

	// Count is the number of consecutive registers to read.
	Count uint16 `yaml:"count" mapstructure:"count"`

	// Timeout bounds each register read.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RESTConfig holds the bare REST endpoint settings.
type RESTConfig struct {
	// BaseURL is the controller API root, e.g. http://192.168.1.20.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Token is the bearer token for the variables endpoint.
	Token string `yaml:"token" mapstructure:"token"`

	// VariableIDs are the routine-editor variable ids to poll.
	VariableIDs []int `yaml:"variable_ids" mapstructure:"variable_ids"`
}

// PresetConfig controls saved method-path presets for the call command.
type PresetConfig struct {
	// Path is the JSON file presets are stored in.
	// Empty means ~/.config/ro1mon/presets.json.
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Source:  SourceSDK,
		Workspace: WorkspaceConfig{
			Kind: RobotKindLive,
		},
		Variables: []string{"speed_rpm", "load_pct", "at_home"},
		Refresh:   1 * time.Second,
		History:   300,
		Modbus: ModbusConfig{
			Port:    502,
			UnitID:  1,
			Count:   1,
			Timeout: 3 * time.Second,
		},
	}
}
