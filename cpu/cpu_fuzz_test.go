package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/m6502/memory"
)

// longest is the most cycles a single instruction can take.
const longest = 6

func FuzzExecute(f *testing.F) {
	f.Add([]byte{0xa9, 0x84}, uint8(0), uint8(0), int32(2), false)
	f.Add([]byte{0x20, 0x42, 0x42}, uint8(0), uint8(0), int32(8), false)
	f.Add([]byte{0xbd, 0x02, 0x44}, uint8(0xff), uint8(0), int32(1), false)
	f.Add([]byte{0xb1, 0xff}, uint8(0), uint8(0xff), int32(100), true)
	f.Add([]byte{0x02, 0xea}, uint8(0), uint8(0), int32(0), true)
	f.Add([]byte{}, uint8(0), uint8(0), int32(-5), false)

	f.Fuzz(func(t *testing.T, code []byte, x uint8, y uint8, budget int32, nop bool) {
		assert := assert.New(t)

		if len(code) > 256 {
			code = code[:256]
		}
		budget %= 1000

		mem := &memory.Memory{}
		cpu := NewCpu(mem)
		mem.Load(RESET_VECTOR, code)
		// Scatter the code through the zero page for the indirect modes.
		mem.Load(PAGE_ZERO, code)
		cpu.X = x
		cpu.Y = y
		cpu.C = true
		cpu.V = true
		if nop {
			cpu.Illegal = ILLEGAL_NOP
		}

		before := cpu.State
		used, err := cpu.Execute(budget, mem)

		assert.Equal(int(used), cpu.Ticks)

		// Only Z and N are ever touched.
		assert.Equal(before.C, cpu.C)
		assert.Equal(before.I, cpu.I)
		assert.Equal(before.D, cpu.D)
		assert.Equal(before.B, cpu.B)
		assert.Equal(before.V, cpu.V)

		if budget <= 0 {
			assert.NoError(err)
			assert.Equal(int32(0), used)
			assert.Equal(before, cpu.State)
			return
		}

		if err != nil {
			assert.False(nop)
			assert.True(errors.Is(err, ErrOpcodeIllegal))
			assert.Equal(ILL, Lookup(mem[cpu.PC]).Mnemonic)
			assert.Positive(used)
			assert.LessOrEqual(used, budget+longest-1)
			return
		}

		assert.GreaterOrEqual(used, budget)
		assert.LessOrEqual(used, budget+longest-1)
	})
}
