// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/m6502/memory"
)

// Fixed memory layout.
const (
	PAGE_ZERO    = uint16(0x0000) // Zero page, 0x0000-0x00FF.
	PAGE_STACK   = uint16(0x0100) // Stack page, 0x0100-0x01FF.
	RESET_VECTOR = uint16(0xFFFC) // Program counter after reset.
	SP_RESET     = uint8(0xFF)    // Stack pointer after reset.
)

var _cpu_defines = map[string]string{
	"PAGE_ZERO":    fmt.Sprintf("0x%04x", PAGE_ZERO),
	"PAGE_STACK":   fmt.Sprintf("0x%04x", PAGE_STACK),
	"RESET_VECTOR": fmt.Sprintf("0x%04x", RESET_VECTOR),
}

// Handler executes one complete instruction after its opcode has been
// fetched, charging every cycle it uses against the budget.
type Handler func(cpu *Cpu, cycles *int32, mem *memory.Memory) (err error)

// Flags are the processor status flags.
type Flags struct {
	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal mode
	B bool // Break
	V bool // Overflow
	N bool // Negative
}

// String returns the flags in NV-BDIZC order, upper case when set.
func (fl Flags) String() string {
	letter := func(set bool, ch byte) byte {
		if set {
			return ch
		}
		return ch + ('a' - 'A')
	}

	return string([]byte{
		letter(fl.N, 'N'),
		letter(fl.V, 'V'),
		'-',
		letter(fl.B, 'B'),
		letter(fl.D, 'D'),
		letter(fl.I, 'I'),
		letter(fl.Z, 'Z'),
		letter(fl.C, 'C'),
	})
}

// State is the programmer visible register file.
type State struct {
	PC uint16 // Program counter.
	SP uint8  // Stack pointer, offset into PAGE_STACK.
	A  uint8  // Accumulator.
	X  uint8  // X index register.
	Y  uint8  // Y index register.
	Flags
}

// Cpu is the simulation context for a 6502.
type Cpu struct {
	Verbose bool          // Set to enable verbose logging.
	Illegal IllegalPolicy // Action on an unimplemented opcode.

	State // Registers and flags.

	Ticks int // Cycles consumed since reset.

	handler [256]Handler // Dispatch table, indexed by opcode.
}

// NewCpu creates a CPU in its reset state, clearing mem.
func NewCpu(mem *memory.Memory) (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(mem)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "sp", "a", "x", "y", "flags", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.PC)
		case "sp":
			strval = fmt.Sprintf("%02X (%04X)", cpu.SP, cpu.stackAddress())
		case "a":
			strval = fmt.Sprintf("%02X", cpu.A)
		case "x":
			strval = fmt.Sprintf("%02X", cpu.X)
		case "y":
			strval = fmt.Sprintf("%02X", cpu.Y)
		case "flags":
			strval = cpu.Flags.String()
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Register returns the value of a general register.
func (cpu *Cpu) Register(reg Register) uint8 {
	switch reg {
	case REG_A:
		return cpu.A
	case REG_X:
		return cpu.X
	case REG_Y:
		return cpu.Y
	default:
		panic("unknown register")
	}
}

// SetRegister sets the value of a general register.
func (cpu *Cpu) SetRegister(reg Register, value uint8) {
	switch reg {
	case REG_A:
		cpu.A = value
	case REG_X:
		cpu.X = value
	case REG_Y:
		cpu.Y = value
	default:
		panic("unknown register")
	}
}

// Reset the CPU state.
// - Sets PC to RESET_VECTOR and SP to SP_RESET.
// - Clears A, X, Y and all flags.
// - Zeros the tick counter.
// - Zero fills the memory.
// - Rebuilds the dispatch table.
func (cpu *Cpu) Reset(mem *memory.Memory) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State = State{
		PC: RESET_VECTOR,
		SP: SP_RESET,
	}
	cpu.Ticks = 0

	mem.Initialize()

	cpu.handler = newDispatch()
}

// Execute runs whole instructions from mem until the cycle budget is
// spent, and returns the number of cycles consumed.
//
// An instruction is never interrupted, so the cycles used may exceed the
// budget by the length of the last instruction. A budget of zero or less
// executes nothing.
//
// With the ILLEGAL_HALT policy an unimplemented opcode stops execution
// with PC pointing at it, and the error satisfies
// errors.Is(err, ErrOpcodeIllegal).
func (cpu *Cpu) Execute(cycles int32, mem *memory.Memory) (used int32, err error) {
	requested := cycles
	defer func() {
		used = requested - cycles
		cpu.Ticks += int(used)
	}()

	// A zero Cpu builds its table on first use.
	if cpu.handler[0] == nil {
		cpu.handler = newDispatch()
	}

	for cycles > 0 {
		pc := cpu.PC
		opcode := cpu.fetchByte(&cycles, mem)
		if cpu.Verbose {
			log.Printf("cpu: %04x: %02x %v", pc, opcode, Lookup(opcode))
		}

		err = cpu.handler[opcode](cpu, &cycles, mem)
		if err != nil {
			err = errors.Join(ErrOpcode{Opcode: opcode, Address: pc}, err)
			return
		}
	}

	return
}

// setZN sets the zero and negative flags from a loaded value.
func (cpu *Cpu) setZN(value uint8) {
	cpu.Z = value == 0
	cpu.N = (value & 0x80) != 0
}
