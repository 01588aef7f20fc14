package source

import (
	"testing"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestDecodeRegisters(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want []uint16
	}{
		{name: "empty", raw: nil, want: []uint16{}},
		{name: "single register", raw: []byte{0x04, 0xB0}, want: []uint16{1200}},
		{name: "multiple registers", raw: []byte{0x00, 0x01, 0xFF, 0xFF, 0x12, 0x34}, want: []uint16{1, 65535, 0x1234}},
		{name: "trailing odd byte ignored", raw: []byte{0x00, 0x02, 0x07}, want: []uint16{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeRegisters(tt.raw))
		})
	}
}

func TestRegisterName(t *testing.T) {
	assert.Equal(t, "reg_0", RegisterName(0))
	assert.Equal(t, "reg_40", RegisterName(40))
	assert.Equal(t, "reg_65535", RegisterName(65535))
}

func TestModbusSourceName(t *testing.T) {
	src := NewModbus(config.ModbusConfig{Host: "192.168.1.20", Port: 502, UnitID: 1, Count: 1})
	assert.Equal(t, "modbus", src.Name())
	assert.NoError(t, src.Close())
}
