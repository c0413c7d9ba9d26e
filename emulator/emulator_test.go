package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m6502/cpu"
)

var demo = []string{
	"        jsr sub",
	"        .org $4242",
	"sub:    lda #$69",
}

func doLoad(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Memory)
	assert.Equal(uint16(0xfffc), emu.Pc())
	assert.Equal(0, emu.Ticks())
	assert.Equal(0, emu.LineNo())
	assert.Equal(".byte $00", emu.Disassemble())
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	defines := maps.Collect(emu.Defines())

	assert.Equal("1", defines["STEP_BUDGET"])
	assert.Equal("0xfffc", defines["RESET_VECTOR"])
	assert.Equal("0x0100", defines["PAGE_STACK"])
	assert.Equal("0x10000", defines["MEM_SIZE"])
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, demo, t)

	assert.Equal(1, emu.LineNo())
	assert.Equal("JSR $4242", emu.Disassemble())

	used, err := emu.Run(8)
	assert.NoError(err)

	assert.Equal(int32(8), used)
	assert.Equal(8, emu.Ticks())
	assert.Equal(uint8(0x69), emu.Cpu.A)
	assert.Equal(uint8(0xfe), emu.Cpu.SP)
	assert.Equal(uint16(0x4244), emu.Pc())
	assert.Equal(0, emu.LineNo())

	// Reset reloads the program.
	err = emu.Reset()
	assert.NoError(err)
	assert.Equal(uint8(0), emu.Cpu.A)
	assert.Equal(0, emu.Ticks())
	assert.Equal(byte(0x20), emu.Memory[0xfffc])
	assert.Equal(byte(0xa9), emu.Memory[0x4242])
}

func TestEmulator_Step(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, demo, t)

	used, err := emu.Step()
	assert.NoError(err)
	assert.Equal(int32(6), used)
	assert.Equal(3, emu.LineNo())
	assert.Equal("LDA #$69", emu.Disassemble())

	used, err = emu.Step()
	assert.NoError(err)
	assert.Equal(int32(2), used)
	assert.Equal(uint8(0x69), emu.Cpu.A)
	assert.Equal(8, emu.Ticks())
}

func TestEmulator_Illegal(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, []string{
		"        nop",
		"        .byte $02",
	}, t)

	used, err := emu.Run(10)
	assert.Error(err)
	assert.Equal(int32(3), used)

	assert.True(errors.Is(err, cpu.ErrOpcodeIllegal))

	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(2, er.LineNo)
		assert.Equal(uint16(0xfffd), er.Address)
	}

	var eo cpu.ErrOpcode
	if assert.True(errors.As(err, &eo)) {
		assert.Equal(byte(0x02), eo.Opcode)
	}

	// Treated as a NOP, execution continues past it.
	emu.Cpu.Illegal = cpu.ILLEGAL_NOP
	used, err = emu.Run(2)
	assert.NoError(err)
	assert.Equal(int32(2), used)
	assert.Equal(uint16(0xfffe), emu.Pc())
}

func TestEmulator_Defined(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doLoad(emu, []string{
		"        ldx #STEP_BUDGET",
		"        lda PAGE_STACK,x",
	}, t)

	emu.Memory[0x0101] = 0x80

	_, err := emu.Run(6)
	assert.NoError(err)

	assert.Equal(uint8(0x01), emu.Cpu.X)
	assert.Equal(uint8(0x80), emu.Cpu.A)
	assert.True(emu.Cpu.N)
}
