package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/source"
	"github.com/robotops/ro1mon/internal/ui"
)

// registersCommand reads a block of holding registers once and prints it.
func registersCommand(addrFlag, countFlag int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Source = config.SourceModbus
	if addrFlag >= 0 {
		cfg.Modbus.Register = uint16(addrFlag)
	}
	if countFlag > 0 {
		cfg.Modbus.Count = uint16(countFlag)
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

	if machineMode {
		data := make(map[string]any, sample.Len())
		for _, name := range sample.Names {
			data[name] = sample.Get(name).Interface()
		}
		return WriteJSONSuccess(os.Stdout, data)
	}

	rows := make([][]string, 0, sample.Len())
	for i, name := range sample.Names {
		addr := int(cfg.Modbus.Register) + i
		value := sample.Get(name)
		hex := "-"
		if n, ok := value.Numeric(); ok {
			hex = fmt.Sprintf("0x%04X", uint16(n))
		}
		rows = append(rows, []string{fmt.Sprintf("%d", addr), value.String(), hex})
	}

	widths := ui.ColumnWidths([]string{"REGISTER", "VALUE", "HEX"}, rows, 12)
	columns := []ui.TableColumn{
		{Title: "REGISTER", Width: widths[0]},
		{Title: "VALUE", Width: widths[1]},
		{Title: "HEX", Width: widths[2]},
	}

	fmt.Println(ui.RenderSimpleTable(columns, rows))
	return nil
}
