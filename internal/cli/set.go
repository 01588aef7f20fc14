package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
	"github.com/robotops/ro1mon/internal/sdk"
	"github.com/robotops/ro1mon/internal/source"
	"github.com/robotops/ro1mon/internal/ui"
)

// setTimeout bounds the lookup plus update round trips.
const setTimeout = 15 * time.Second

// setCommand updates a routine-editor variable through the workspace API.
func setCommand(name, rawValue string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Source != config.SourceSDK {
		return errors.New(errors.ErrConfig,
			"Variable updates need the workspace API",
			"Set 'source: sdk' in "+config.ConfigFileName+" and fill in the 'workspace' section")
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	client := sdk.New(cfg.Workspace.URL, cfg.Workspace.Token, sdk.RobotKind(cfg.Workspace.Kind))
	vars := client.RoutineEditor().Variables()

	ctx, cancel := context.WithTimeout(context.Background(), setTimeout)
	defer cancel()

	// Resolve the variable id by name before updating
	current, err := vars.Get(ctx, name)
	if err != nil {
		return err
	}

	updated, err := vars.Update(ctx, current.ID, parseValue(rawValue))
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, map[string]any{
			"name":     updated.Name,
			"value":    updated.Value,
			"previous": current.Value,
		})
	}

	fmt.Printf("%s %s: %s -> %s\n", ui.SymbolSuccess, updated.Name,
		source.FromAny(current.Value).String(), source.FromAny(updated.Value).String())
	return nil
}

// parseValue interprets a flag value as JSON first, so numbers and
// booleans keep their type, falling back to a plain string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
