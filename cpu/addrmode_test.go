package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m6502/memory"
)

func TestCrossesPage(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		a, b    uint16
		crosses bool
	}){
		{0x4480, 0x4481, false},
		{0x4402, 0x4501, true},
		{0x44ff, 0x4500, true},
		{0xff80, 0x0010, true},
		{0x0000, 0x00ff, false},
	}

	for _, entry := range table {
		assert.Equal(entry.crosses, crossesPage(entry.a, entry.b), "%04x %04x", entry.a, entry.b)
	}
}

func TestAddress(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mode    Mode
		x, y    uint8
		operand []byte
		zp      map[uint8]byte // zero page contents
		address uint16
		cycles  int32
		pc      uint16
	}){
		{mode: ZERO_PAGE, operand: []byte{0x42}, address: 0x0042, cycles: 1, pc: 0x0201},
		{mode: ZERO_PAGE_X, x: 0x05, operand: []byte{0x42}, address: 0x0047, cycles: 2, pc: 0x0201},
		{mode: ZERO_PAGE_X, x: 0xff, operand: []byte{0x80}, address: 0x007f, cycles: 2, pc: 0x0201},
		{mode: ZERO_PAGE_Y, y: 0x10, operand: []byte{0xf8}, address: 0x0008, cycles: 2, pc: 0x0201},
		{mode: ABSOLUTE, operand: []byte{0x80, 0x44}, address: 0x4480, cycles: 2, pc: 0x0202},
		{mode: ABSOLUTE_X, x: 0x01, operand: []byte{0x80, 0x44}, address: 0x4481, cycles: 2, pc: 0x0202},
		{mode: ABSOLUTE_X, x: 0xff, operand: []byte{0x02, 0x44}, address: 0x4501, cycles: 3, pc: 0x0202},
		{mode: ABSOLUTE_Y, y: 0x7f, operand: []byte{0x80, 0x44}, address: 0x44ff, cycles: 2, pc: 0x0202},
		{mode: ABSOLUTE_Y, y: 0x80, operand: []byte{0x80, 0x44}, address: 0x4500, cycles: 3, pc: 0x0202},
		{mode: INDIRECT_X, x: 0x04, operand: []byte{0x02},
			zp: map[uint8]byte{0x06: 0x00, 0x07: 0x80}, address: 0x8000, cycles: 4, pc: 0x0201},
		{mode: INDIRECT_X, x: 0x01, operand: []byte{0xfe},
			zp: map[uint8]byte{0xff: 0x34, 0x00: 0x12}, address: 0x1234, cycles: 4, pc: 0x0201},
		{mode: INDIRECT_Y, y: 0x04, operand: []byte{0x02},
			zp: map[uint8]byte{0x02: 0x00, 0x03: 0x80}, address: 0x8004, cycles: 3, pc: 0x0201},
		{mode: INDIRECT_Y, y: 0xff, operand: []byte{0x02},
			zp: map[uint8]byte{0x02: 0x02, 0x03: 0x80}, address: 0x8101, cycles: 4, pc: 0x0201},
		{mode: INDIRECT_Y, y: 0x00, operand: []byte{0xff},
			zp: map[uint8]byte{0xff: 0x78, 0x00: 0x56}, address: 0x5678, cycles: 3, pc: 0x0201},
	}

	for _, entry := range table {
		mem := &memory.Memory{}
		mem.Load(0x0200, entry.operand)
		for zp, value := range entry.zp {
			mem[zp] = value
		}

		cpu := &Cpu{}
		cpu.PC = 0x0200
		cpu.X = entry.x
		cpu.Y = entry.y

		cycles := int32(10)
		address := cpu.address(entry.mode, &cycles, mem)

		assert.Equal(entry.address, address, entry.mode.String())
		assert.Equal(entry.cycles, 10-cycles, entry.mode.String())
		assert.Equal(entry.pc, cpu.PC, entry.mode.String())
	}
}

func TestAddress_NoEffectiveAddress(t *testing.T) {
	assert := assert.New(t)

	mem := &memory.Memory{}
	cpu := &Cpu{}
	cycles := int32(10)

	assert.Panics(func() { cpu.address(IMPLIED, &cycles, mem) })
	assert.Panics(func() { cpu.address(IMMEDIATE, &cycles, mem) })
}

func TestOperand(t *testing.T) {
	assert := assert.New(t)

	mem := &memory.Memory{}
	mem[0x0200] = 0x42
	mem[0x0042] = 0x37

	cpu := &Cpu{}

	cpu.PC = 0x0200
	cycles := int32(10)
	assert.Equal(uint8(0x42), cpu.operand(IMMEDIATE, &cycles, mem))
	assert.Equal(int32(9), cycles)

	cpu.PC = 0x0200
	cycles = int32(10)
	assert.Equal(uint8(0x37), cpu.operand(ZERO_PAGE, &cycles, mem))
	assert.Equal(int32(8), cycles)
}

func TestFetch_Wrap(t *testing.T) {
	assert := assert.New(t)

	mem := &memory.Memory{}
	mem[0xffff] = 0x34
	mem[0x0000] = 0x12

	cpu := &Cpu{}
	cpu.PC = 0xffff
	cycles := int32(2)

	assert.Equal(uint16(0x1234), cpu.fetchWord(&cycles, mem))
	assert.Equal(uint16(0x0001), cpu.PC)
	assert.Equal(int32(0), cycles)
}
