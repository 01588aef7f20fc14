package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
	"github.com/robotops/ro1mon/internal/preset"
	"github.com/robotops/ro1mon/internal/sdk"
	"github.com/robotops/ro1mon/internal/ui"
)

// callTimeout bounds a dynamic API invocation.
const callTimeout = 15 * time.Second

// callOptions holds the call command's flag values.
type callOptions struct {
	List        bool
	Save        bool
	ListPresets bool
	Delete      string
}

// callCommand invokes a workspace API method by dotted path, and manages
// saved method-path presets.
func callCommand(args []string, opts callOptions) error {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}

	// Preset management needs no connection
	store := preset.NewStore(cfg.PresetsPath())
	if opts.Delete != "" {
		return deletePreset(store, opts.Delete)
	}
	if opts.ListPresets {
		return listPresets(store)
	}

	// Everything else talks to the workspace API
	cfg.Source = config.SourceSDK
	if err := config.Validate(cfg); err != nil {
		return err
	}
	client := sdk.New(cfg.Workspace.URL, cfg.Workspace.Token, sdk.RobotKind(cfg.Workspace.Kind))

	if opts.List {
		return listMethods(client)
	}

	if len(args) == 0 {
		return errors.New(errors.ErrSDK,
			"No method path given",
			"Pass a dotted path like routine_editor.variables.load, or use --list to see them all")
	}
	path := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	result, err := sdk.Invoke(ctx, client, path, args[1:])
	if err != nil {
		return err
	}

	if opts.Save {
		if err := store.Load(); err != nil {
			return err
		}
		if store.Add(path) {
			if err := store.Save(); err != nil {
				return err
			}
		}
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, result)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSDK,
			"Cannot render the API result",
			"Re-run with --json for the raw envelope")
	}
	fmt.Println(string(out))

	if opts.Save {
		fmt.Printf("%s Saved preset: %s\n", ui.SymbolSuccess, path)
	}
	return nil
}

// listMethods prints every discovered method path.
func listMethods(client *sdk.Client) error {
	paths := sdk.Discover(client)

	if machineMode {
		return WriteJSONSuccess(os.Stdout, paths)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

// listPresets prints the saved method-path presets.
func listPresets(store *preset.Store) error {
	if err := store.Load(); err != nil {
		return err
	}
	paths := store.List()

	if machineMode {
		return WriteJSONSuccess(os.Stdout, paths)
	}
	if len(paths) == 0 {
		fmt.Println("No presets saved. Save one with 'ro1mon call <path> --save'.")
		return nil
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

// deletePreset removes a saved preset.
func deletePreset(store *preset.Store, path string) error {
	if err := store.Load(); err != nil {
		return err
	}
	if !store.Remove(path) {
		return errors.New(errors.ErrPreset,
			fmt.Sprintf("No preset named '%s'", path),
			"List saved presets with 'ro1mon call --presets'")
	}
	if err := store.Save(); err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, map[string]any{"deleted": path})
	}
	fmt.Printf("%s Deleted preset: %s\n", ui.SymbolSuccess, path)
	return nil
}
