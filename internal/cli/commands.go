package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/robotops/ro1mon/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	watchSourceFlag    string
	watchIntervalFlag  string
	watchVarsFlag      string
	getSourceFlag      string
	registersAddrFlag  int
	registersCountFlag int
	callListFlag       bool
	callSaveFlag       bool
	callPresetsFlag    bool
	callDeleteFlag     string
	initForce          bool
)

// watchCmd starts the live monitoring dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live variable dashboard for the robot",
	Long: `Start an interactive TUI dashboard that polls the configured robot
variables and renders KPI cards, a value table, and a time-series chart.

Keyboard shortcuts:
  space       Run / stop polling
  r           Force refresh
  s           Cycle sort order (config/name/value)
  up/k        Select previous variable
  down/j      Select next variable
  ?           Show help
  q / Ctrl+C  Quit

Examples:
  ro1mon watch
  ro1mon watch --interval 2s
  ro1mon watch --source modbus
  ro1mon watch --vars speed_rpm,load_pct`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, err := parseInterval(watchIntervalFlag)
		if err != nil {
			return err
		}
		return watchCommand(watchSourceFlag, interval, watchVarsFlag)
	},
}

// getCmd reads variables once and prints them
var getCmd = &cobra.Command{
	Use:   "get [name...]",
	Short: "Read robot variables once",
	Long: `Read the configured variables once and print their current values.

With no arguments, all configured variables are printed. Name arguments
restrict the output to those variables.

Examples:
  ro1mon get
  ro1mon get speed_rpm
  ro1mon get speed_rpm load_pct --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return getCommand(args, getSourceFlag)
	},
}

// setCmd updates a variable through the workspace API
var setCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Update a robot variable",
	Long: `Set a routine-editor variable to a new value through the workspace API.

The value is parsed as JSON first (numbers, booleans, quoted strings),
falling back to a plain string.

Examples:
  ro1mon set speed_rpm 1200
  ro1mon set at_home true
  ro1mon set label '"station A"'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCommand(args[0], args[1])
	},
}

// registersCmd reads Modbus holding registers once
var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "Read Modbus holding registers once",
	Long: `Read a block of holding registers over Modbus TCP and print them.

Uses the 'modbus' section of the config; --register and --count
override the configured block.

Examples:
  ro1mon registers
  ro1mon registers --register 1000 --count 8
  ro1mon registers --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return registersCommand(registersAddrFlag, registersCountFlag)
	},
}

// callCmd invokes a workspace API method by dotted path
var callCmd = &cobra.Command{
	Use:   "call [method-path] [args...]",
	Short: "Invoke a workspace API method by dotted path",
	Long: `Call any discovered workspace API operation by its dotted snake_case
path, e.g. routine_editor.variables.get. Arguments are parsed as JSON
first, falling back to plain strings.

Method paths can be saved as presets for quick reuse.

Examples:
  ro1mon call --list
  ro1mon call status
  ro1mon call routine_editor.variables.get speed_rpm
  ro1mon call routine_editor.variables.update 3 1500
  ro1mon call routine_editor.variables.load --save
  ro1mon call --presets
  ro1mon call --delete routine_editor.variables.load`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return callCommand(args, callOptions{
			List:        callListFlag,
			Save:        callSaveFlag,
			ListPresets: callPresetsFlag,
			Delete:      callDeleteFlag,
		})
	},
}

// initCmd creates a new .ro1mon.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .ro1mon.yaml configuration",
	Long: `Initialize a new monitor configuration file.

Creates a .ro1mon.yaml in the current directory, guiding you through
transport selection and connection settings with interactive prompts.

Examples:
  ro1mon init
  ro1mon init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ro1mon.

Examples:
  # Bash
  ro1mon completion bash > /etc/bash_completion.d/ro1mon

  # Zsh
  ro1mon completion zsh > "${fpath[1]}/_ro1mon"

  # Fish
  ro1mon completion fish > ~/.config/fish/completions/ro1mon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

// parseInterval validates a refresh interval flag value. An empty flag
// means "use the config value".
func parseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	parsed, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", flag),
			"Use a valid duration like 1s, 2s, or 500ms")
	}
	if parsed < 500*time.Millisecond {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			"Minimum interval is 500ms to avoid overwhelming the controller")
	}
	return parsed, nil
}

func init() {
	// watch command flags
	watchCmd.Flags().StringVar(&watchSourceFlag, "source", "", "data source: sdk, modbus, or rest (default from config)")
	watchCmd.Flags().StringVar(&watchIntervalFlag, "interval", "", "refresh interval (e.g., 1s, 2s, 500ms)")
	watchCmd.Flags().StringVar(&watchVarsFlag, "vars", "", "variables to watch (comma-separated, default from config)")

	// get command flags
	getCmd.Flags().StringVar(&getSourceFlag, "source", "", "data source: sdk, modbus, or rest (default from config)")

	// registers command flags
	registersCmd.Flags().IntVar(&registersAddrFlag, "register", -1, "first holding register address (default from config)")
	registersCmd.Flags().IntVar(&registersCountFlag, "count", 0, "number of registers to read (default from config)")

	// call command flags
	callCmd.Flags().BoolVar(&callListFlag, "list", false, "list every discovered method path")
	callCmd.Flags().BoolVar(&callSaveFlag, "save", false, "save the method path as a preset after a successful call")
	callCmd.Flags().BoolVar(&callPresetsFlag, "presets", false, "list saved method-path presets")
	callCmd.Flags().StringVar(&callDeleteFlag, "delete", "", "delete a saved preset")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(registersCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
