package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robotops/ro1mon/internal/errors"
)

// MinRefresh is the floor for the refresh interval. Polling faster than
// this hammers the controller without adding information.
const MinRefresh = 500 * time.Millisecond

// MaxModbusCount is the Modbus protocol limit for a single holding
// register read.
const MaxModbusCount = 125

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ro1mon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest ro1mon release.")
	}

	if err := validateSource(cfg.Source); err != nil {
		return err
	}

	if cfg.Refresh < MinRefresh {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh %v is too fast - the floor is %v", cfg.Refresh, MinRefresh),
			"Set 'refresh' to 500ms or slower in .ro1mon.yaml.")
	}

	if cfg.History < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history %d doesn't make sense - need at least 1 sample", cfg.History),
			"Set 'history' to a positive number (300 is the default).")
	}

	switch cfg.Source {
	case SourceSDK:
		if err := validateWorkspace(cfg.Workspace); err != nil {
			return err
		}
	case SourceModbus:
		if err := validateModbus(cfg.Modbus); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'modbus' section in your .ro1mon.yaml.")
		}
	case SourceREST:
		if err := validateREST(cfg.REST); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'rest' section in your .ro1mon.yaml.")
		}
	}

	return nil
}

// validateSource checks the source name is one we know how to build.
func validateSource(source string) error {
	switch source {
	case SourceSDK, SourceModbus, SourceREST:
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("source '%s' isn't valid - use 'sdk', 'modbus', or 'rest'", source),
		"Set 'source' in .ro1mon.yaml or pass --source.")
}

// validateWorkspace checks the vendor SDK connection settings.
func validateWorkspace(ws WorkspaceConfig) error {
	if ws.URL == "" {
		return errors.New(errors.ErrConfig,
			"workspace.url is empty but source is 'sdk'",
			"Set 'workspace.url' to your workspace endpoint, like https://cb2114.sb.app.")
	}
	if !strings.HasPrefix(ws.URL, "http://") && !strings.HasPrefix(ws.URL, "https://") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("workspace.url '%s' doesn't look like a URL", ws.URL),
			"Include the scheme, like https://cb2114.sb.app.")
	}
	if ws.Token == "" {
		return errors.New(errors.ErrConfig,
			"workspace.token is empty but source is 'sdk'",
			"Set 'workspace.token' to your API token from the workspace settings page.")
	}
	if ws.Kind != RobotKindLive && ws.Kind != RobotKindSimulated {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("workspace.kind '%s' isn't valid - use 'live' or 'simulated'", ws.Kind),
			"Set 'workspace.kind' in .ro1mon.yaml.")
	}
	return nil
}

// validateModbus checks the raw Modbus TCP settings.
func validateModbus(m ModbusConfig) error {
	if m.Host == "" {
		return fmt.Errorf("modbus.host is empty but source is 'modbus' - set it to the controller IP")
	}
	if m.Port <= 0 || m.Port > 65535 {
		return fmt.Errorf("modbus.port %d isn't a valid port (502 is the convention)", m.Port)
	}
	if m.Count < 1 || m.Count > MaxModbusCount {
		return fmt.Errorf("modbus.count %d is out of range - the protocol allows 1 to %d registers per read", m.Count, MaxModbusCount)
	}
	if m.Timeout < 0 {
		return fmt.Errorf("modbus.timeout can't be negative - that doesn't make sense")
	}
	return nil
}

// validateREST checks the bare REST endpoint settings.
func validateREST(r RESTConfig) error {
	if r.BaseURL == "" {
		return fmt.Errorf("rest.base_url is empty but source is 'rest' - set it to the controller API root")
	}
	if !strings.HasPrefix(r.BaseURL, "http://") && !strings.HasPrefix(r.BaseURL, "https://") {
		return fmt.Errorf("rest.base_url '%s' needs a scheme, like http://192.168.1.20", r.BaseURL)
	}
	if len(r.VariableIDs) == 0 {
		return fmt.Errorf("rest.variable_ids is empty - list the routine-editor variable ids to poll")
	}
	for i, id := range r.VariableIDs {
		if id < 0 {
			return fmt.Errorf("rest.variable_ids[%d] is %d - ids can't be negative", i, id)
		}
	}
	return nil
}
