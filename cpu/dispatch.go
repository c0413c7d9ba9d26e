package cpu

import (
	"github.com/ezrec/m6502/memory"
)

// newDispatch builds a handler table from the instruction set.
func newDispatch() (table [256]Handler) {
	for n := range table {
		ins := Lookup(byte(n))
		switch ins.Mnemonic {
		case LDA:
			table[n] = load(REG_A, ins.Mode)
		case LDX:
			table[n] = load(REG_X, ins.Mode)
		case LDY:
			table[n] = load(REG_Y, ins.Mode)
		case JSR:
			table[n] = (*Cpu).jsr
		case JMP:
			table[n] = (*Cpu).jmp
		case NOP:
			table[n] = (*Cpu).nop
		default:
			table[n] = (*Cpu).illegal
		}
	}

	return
}

// load returns a handler loading reg from mode. Only Z and N change.
func load(reg Register, mode Mode) Handler {
	return func(cpu *Cpu, cycles *int32, mem *memory.Memory) (err error) {
		value := cpu.operand(mode, cycles, mem)
		cpu.SetRegister(reg, value)
		cpu.setZN(value)
		return
	}
}

// jsr pushes the address of its own last byte and jumps.
func (cpu *Cpu) jsr(cycles *int32, mem *memory.Memory) (err error) {
	target := cpu.fetchWord(cycles, mem)
	cpu.pushWord(cpu.PC-1, cycles, mem)
	cpu.PC = target
	return
}

func (cpu *Cpu) jmp(cycles *int32, mem *memory.Memory) (err error) {
	cpu.PC = cpu.fetchWord(cycles, mem)
	return
}

func (cpu *Cpu) nop(cycles *int32, mem *memory.Memory) (err error) {
	*cycles--
	return
}

// illegal handles every unassigned opcode according to cpu.Illegal.
func (cpu *Cpu) illegal(cycles *int32, mem *memory.Memory) (err error) {
	switch cpu.Illegal {
	case ILLEGAL_NOP:
		*cycles--
	default:
		// Leave PC on the opcode.
		cpu.PC--
		err = ErrOpcodeIllegal
	}

	return
}
