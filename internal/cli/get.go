package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/source"
	"github.com/robotops/ro1mon/internal/ui"
)

// getReadTimeout bounds a one-shot variable read.
const getReadTimeout = 10 * time.Second

// getCommand reads the configured variables once and prints them.
func getCommand(names []string, sourceFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	if len(names) > 0 && cfg.Source == config.SourceSDK {
		// Restrict the SDK poll to the requested names
		cfg.Variables = names
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	registry := source.NewRegistry()
	src, err := registry.Get(cfg)
	if err != nil {
		return err
	}
	defer registry.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), getReadTimeout)
	defer cancel()

	sample, err := src.Read(ctx)
	if err != nil {
		return err
	}

	// No names given: print everything the sample holds, in poll order
	if len(names) == 0 {
		names = sample.Names
	}

	if machineMode {
		data := make(map[string]any, len(names))
		for _, name := range names {
			data[name] = sample.Get(name).Interface()
		}
		return WriteJSONSuccess(os.Stdout, data)
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, sample.Get(name).String()})
	}

	// Keep the two columns inside the terminal
	maxCol := ui.TerminalWidth()/2 - 2
	widths := ui.ColumnWidths([]string{"NAME", "VALUE"}, rows, maxCol)
	columns := []ui.TableColumn{
		{Title: "NAME", Width: widths[0]},
		{Title: "VALUE", Width: widths[1]},
	}

	fmt.Println(ui.RenderSimpleTable(columns, rows))
	return nil
}
