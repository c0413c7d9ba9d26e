package cpu

import (
	"github.com/ezrec/m6502/memory"
)

// stackAddress is the physical address the stack pointer refers to.
func (cpu *Cpu) stackAddress() uint16 {
	return PAGE_STACK | uint16(cpu.SP)
}

// pushWord writes a little-endian word at the stack pointer, then moves
// the stack pointer down by one, wrapping within the stack page.
func (cpu *Cpu) pushWord(value uint16, cycles *int32, mem *memory.Memory) {
	mem.WriteWord(value, cpu.stackAddress(), cycles)
	cpu.SP--
	*cycles--
}
