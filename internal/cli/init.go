package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
	"github.com/robotops/ro1mon/internal/ui"
	"gopkg.in/yaml.v3"
)

// initCommand creates a new .ro1mon.yaml configuration file.
func initCommand(force bool) error {
	if !ui.IsInputTerminal() {
		return errors.New(errors.ErrConfig,
			"init needs an interactive terminal",
			"Run 'ro1mon init' from a terminal, or write "+config.ConfigFileName+" by hand")
	}

	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	// Transport selection first, then transport-specific settings
	var sourceChoice string
	sourceForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Data source").
				Description("How should ro1mon talk to the robot?").
				Options(
					huh.NewOption("Workspace API (vendor SDK over HTTPS)", config.SourceSDK),
					huh.NewOption("Modbus TCP holding registers", config.SourceModbus),
					huh.NewOption("Bare REST variables endpoint", config.SourceREST),
				).
				Value(&sourceChoice),
		),
	)
	if err := sourceForm.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}
	cfg.Source = sourceChoice

	var err error
	switch sourceChoice {
	case config.SourceSDK:
		err = promptWorkspace(cfg)
	case config.SourceModbus:
		err = promptModbus(cfg)
	case config.SourceREST:
		err = promptREST(cfg)
	}
	if err != nil {
		return err
	}

	if err := promptRefresh(cfg); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	// Add a header comment
	header := `# RO1 monitor configuration
# Run 'ro1mon watch' to start the live dashboard

`
	content := header + string(data)

	// Write config file
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  ro1mon watch       - Start the live dashboard")
	fmt.Println("  ro1mon get         - Read the variables once")
	fmt.Println("  ro1mon call --list - Explore the workspace API")

	return nil
}

// promptWorkspace collects the vendor SDK connection settings.
func promptWorkspace(cfg *config.Config) error {
	var varsInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workspace URL").
				Description("The robot workspace endpoint").
				Placeholder("https://cb2114.sb.app").
				Value(&cfg.Workspace.URL).
				Validate(requireURL),
			huh.NewInput().
				Title("API token").
				Description("Bearer token from the workspace settings page").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Workspace.Token).
				Validate(requireNonEmpty("API token")),
			huh.NewSelect[string]().
				Title("Robot kind").
				Options(
					huh.NewOption("Live robot", config.RobotKindLive),
					huh.NewOption("Simulated robot", config.RobotKindSimulated),
				).
				Value(&cfg.Workspace.Kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Variables to watch").
				Description("Comma-separated routine-editor variable names").
				Placeholder("speed_rpm, load_pct, at_home").
				Value(&varsInput).
				Validate(requireNonEmpty("variable list")),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg.Variables = splitVars(varsInput)
	return nil
}

// promptModbus collects the Modbus TCP connection settings.
func promptModbus(cfg *config.Config) error {
	port := strconv.Itoa(cfg.Modbus.Port)
	register := strconv.Itoa(int(cfg.Modbus.Register))
	count := strconv.Itoa(int(cfg.Modbus.Count))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Controller host").
				Description("IP or hostname of the Modbus TCP controller").
				Placeholder("192.168.1.20").
				Value(&cfg.Modbus.Host).
				Validate(requireNonEmpty("controller host")),
			huh.NewInput().
				Title("Port").
				Value(&port).
				Validate(requireIntRange("port", 1, 65535)),
			huh.NewInput().
				Title("First register").
				Description("Address of the first holding register to read").
				Value(&register).
				Validate(requireIntRange("register", 0, 65535)),
			huh.NewInput().
				Title("Register count").
				Value(&count).
				Validate(requireIntRange("count", 1, config.MaxModbusCount)),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg.Modbus.Port, _ = strconv.Atoi(port)
	reg, _ := strconv.Atoi(register)
	cfg.Modbus.Register = uint16(reg)
	cnt, _ := strconv.Atoi(count)
	cfg.Modbus.Count = uint16(cnt)
	return nil
}

// promptREST collects the bare REST endpoint settings.
func promptREST(cfg *config.Config) error {
	var idsInput string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API base URL").
				Placeholder("http://192.168.1.20").
				Value(&cfg.REST.BaseURL).
				Validate(requireURL),
			huh.NewInput().
				Title("Bearer token (optional)").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.REST.Token),
			huh.NewInput().
				Title("Variable ids").
				Description("Comma-separated routine-editor variable ids").
				Placeholder("1, 2, 7").
				Value(&idsInput).
				Validate(requireIDList),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg.REST.VariableIDs, _ = parseIDList(idsInput)
	return nil
}

// promptRefresh collects the dashboard refresh interval.
func promptRefresh(cfg *config.Config) error {
	refresh := cfg.Refresh.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval").
				Description("How often to poll (minimum 500ms)").
				Value(&refresh).
				Validate(func(s string) error {
					d, err := time.ParseDuration(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a duration (try 1s or 500ms)")
					}
					if d < config.MinRefresh {
						return fmt.Errorf("minimum interval is %s", config.MinRefresh)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg.Refresh, _ = time.ParseDuration(strings.TrimSpace(refresh))
	return nil
}

// requireNonEmpty validates that an input field is filled in.
func requireNonEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// requireURL validates an http(s) URL field.
func requireURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("URL is required")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return nil
}

// requireIntRange validates a numeric input field within bounds.
func requireIntRange(what string, min, max int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", what)
		}
		if n < min || n > max {
			return fmt.Errorf("%s must be between %d and %d", what, min, max)
		}
		return nil
	}
}

// requireIDList validates a comma-separated list of variable ids.
func requireIDList(s string) error {
	ids, err := parseIDList(s)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("at least one variable id is required")
	}
	return nil
}

// parseIDList parses a comma-separated id list.
func parseIDList(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a variable id", part)
		}
		if id < 0 {
			return nil, fmt.Errorf("variable ids cannot be negative")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
