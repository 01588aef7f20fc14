package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
	"github.com/robotops/ro1mon/internal/monitor"
	"github.com/robotops/ro1mon/internal/source"
)

// watchCommand starts the TUI monitoring dashboard.
func watchCommand(sourceFlag string, interval time.Duration, varsFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides on top of the config
	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	if interval > 0 {
		cfg.Refresh = interval
	}
	if varsFlag != "" {
		cfg.Variables = splitVars(varsFlag)
		if len(cfg.Variables) == 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("No variable names in '%s'", varsFlag),
				"Pass --vars as a comma-separated list, e.g. --vars speed_rpm,load_pct")
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	registry := source.NewRegistry()
	src, err := registry.Get(cfg)
	if err != nil {
		return err
	}

	model := monitor.NewModel(src, cfg.Refresh, cfg.History)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Graceful shutdown: close transport connections
	if closeErr := registry.CloseAll(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// splitVars parses a comma-separated variable list, dropping empties.
func splitVars(flag string) []string {
	var names []string
	for _, name := range strings.Split(flag, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
