package cpu

import (
	"github.com/ezrec/m6502/memory"
)

// fetchByte reads the byte at PC and advances PC.
func (cpu *Cpu) fetchByte(cycles *int32, mem *memory.Memory) (data uint8) {
	data = mem.Read(cpu.PC)
	cpu.PC++
	*cycles--
	return
}

// fetchWord reads the little-endian word at PC and advances PC past it.
func (cpu *Cpu) fetchWord(cycles *int32, mem *memory.Memory) (data uint16) {
	lo := mem.Read(cpu.PC)
	hi := mem.Read(cpu.PC + 1)
	cpu.PC += 2
	*cycles -= 2
	data = uint16(lo) | (uint16(hi) << 8)
	return
}

// peekByte reads a byte without moving PC.
func (cpu *Cpu) peekByte(address uint16, cycles *int32, mem *memory.Memory) (data uint8) {
	*cycles--
	return mem.Read(address)
}

// peekPointer reads a little-endian pointer from the zero page. The high
// byte wraps within the zero page.
func (cpu *Cpu) peekPointer(zp uint8, cycles *int32, mem *memory.Memory) (pointer uint16) {
	lo := mem.Read(PAGE_ZERO | uint16(zp))
	hi := mem.Read(PAGE_ZERO | uint16(zp+1))
	*cycles -= 2
	pointer = uint16(lo) | (uint16(hi) << 8)
	return
}

// crossesPage is true when a and b lie in different pages.
func crossesPage(a, b uint16) bool {
	return (a & 0xff00) != (b & 0xff00)
}

// index returns the value of the register an indexed mode adds.
func (cpu *Cpu) index(mode Mode) uint8 {
	switch mode {
	case ZERO_PAGE_X, ABSOLUTE_X, INDIRECT_X:
		return cpu.X
	case ZERO_PAGE_Y, ABSOLUTE_Y, INDIRECT_Y:
		return cpu.Y
	default:
		return 0
	}
}

// address consumes the operand bytes of a memory addressing mode and
// returns the effective address.
func (cpu *Cpu) address(mode Mode, cycles *int32, mem *memory.Memory) (addr uint16) {
	switch mode {
	case ZERO_PAGE:
		addr = uint16(cpu.fetchByte(cycles, mem))
	case ZERO_PAGE_X, ZERO_PAGE_Y:
		zp := cpu.fetchByte(cycles, mem) + cpu.index(mode)
		*cycles-- // index addition
		addr = PAGE_ZERO | uint16(zp)
	case ABSOLUTE:
		addr = cpu.fetchWord(cycles, mem)
	case ABSOLUTE_X, ABSOLUTE_Y:
		base := cpu.fetchWord(cycles, mem)
		addr = base + uint16(cpu.index(mode))
		if crossesPage(base, addr) {
			*cycles--
		}
	case INDIRECT_X:
		zp := cpu.fetchByte(cycles, mem) + cpu.X
		*cycles-- // index addition
		addr = cpu.peekPointer(zp, cycles, mem)
	case INDIRECT_Y:
		base := cpu.peekPointer(cpu.fetchByte(cycles, mem), cycles, mem)
		addr = base + uint16(cpu.Y)
		if crossesPage(base, addr) {
			*cycles--
		}
	default:
		panic("addressing mode has no effective address")
	}

	return
}

// operand returns the byte an instruction operates on.
func (cpu *Cpu) operand(mode Mode, cycles *int32, mem *memory.Memory) (value uint8) {
	if mode == IMMEDIATE {
		return cpu.fetchByte(cycles, mem)
	}

	return cpu.peekByte(cpu.address(mode, cycles, mem), cycles, mem)
}
