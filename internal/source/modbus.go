package source

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/goburrow/modbus"
	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
	"github.com/robotops/ro1mon/internal/logger"
)

// modbusSource reads a block of holding registers over Modbus TCP.
// Registers surface as reg_<addr> variables with unsigned 16-bit
// values.
type modbusSource struct {
	cfg     config.ModbusConfig
	handler *modbus.TCPClientHandler
	client  modbus.Client
	log     logger.Logger
}

// NewModbus builds a Source over raw Modbus TCP.
func NewModbus(cfg config.ModbusConfig) Source {
	handler := modbus.NewTCPClientHandler(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))
	handler.Timeout = cfg.Timeout
	handler.SlaveId = cfg.UnitID

	return &modbusSource{
		cfg:     cfg,
		handler: handler,
		client:  modbus.NewClient(handler),
		log:     logger.NewEnvLogger("[source/modbus]"),
	}
}

func (s *modbusSource) Name() string {
	return config.SourceModbus
}

// Read fetches cfg.Count consecutive registers starting at
// cfg.Register in one request. The handler reconnects lazily, so a
// controller restart heals on the next tick.
func (s *modbusSource) Read(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	raw, err := s.client.ReadHoldingRegisters(s.cfg.Register, s.cfg.Count)
	if err != nil {
		return Sample{}, errors.WrapWithCode(err, errors.ErrModbus,
			fmt.Sprintf("Cannot read holding registers %d-%d", s.cfg.Register, s.cfg.Register+s.cfg.Count-1),
			fmt.Sprintf("Check the controller at %s:%d is reachable and serving Modbus TCP", s.cfg.Host, s.cfg.Port))
	}

	sample := NewSample()
	values := DecodeRegisters(raw)
	for i, v := range values {
		sample.Set(RegisterName(s.cfg.Register+uint16(i)), Number(float64(v)))
	}
	return sample, nil
}

func (s *modbusSource) Close() error {
	return s.handler.Close()
}

// RegisterName names a holding register for display: reg_40 for
// address 40.
func RegisterName(addr uint16) string {
	return fmt.Sprintf("reg_%d", addr)
}

// DecodeRegisters splits a Modbus response into 16-bit big-endian
// register values. A trailing odd byte is ignored.
func DecodeRegisters(raw []byte) []uint16 {
	values := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		values = append(values, binary.BigEndian.Uint16(raw[i:i+2]))
	}
	return values
}
