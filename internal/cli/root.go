package cli

import (
	"fmt"
	"os"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
	"github.com/spf13/cobra"
)

// Persistent flags shared by every command.
var (
	configFlag string
)

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "ro1mon",
	Short: "Live variable monitor for RO1 robots",
	Long: `ro1mon watches named variables and registers on an RO1 robot and
renders them as a live terminal dashboard.

Three transports are supported: the vendor workspace API (sdk), raw
Modbus TCP holding registers (modbus), and the bare REST variables
endpoint (rest). Pick one with the 'source' key in .ro1mon.yaml or
the --source flag.

Examples:
  ro1mon watch
  ro1mon get speed_rpm
  ro1mon call routine_editor.variables.load`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to .ro1mon.yaml (default: search upward from cwd)")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if machineMode {
			_ = WriteJSONFromError(os.Stdout, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadConfig loads and validates the config for a command run, honoring
// the --config flag.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New(errors.ErrConfig,
			"No "+config.ConfigFileName+" found",
			"Run 'ro1mon init' to create one, or point at a file with --config")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigOrDefault is like loadConfig but falls back to defaults when
// no config file exists. Used by commands that can run without one.
func loadConfigOrDefault() (*config.Config, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}
