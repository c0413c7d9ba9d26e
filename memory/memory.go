// Package memory implements the flat 64KiB address space seen by the CPU.
//
// Memory is a plain array indexed by a 16-bit address, so every access is
// in range by construction and address arithmetic wraps at 0xFFFF. Test
// and setup code may index the array directly; the CPU goes through the
// accessors so that every bus access is charged a cycle.
package memory

import (
	"fmt"
	"iter"
	"maps"
)

const (
	MEM_SIZE = 64 * 1024 // Size of the address space in bytes.
)

var _memory_defines = map[string]string{
	"MEM_SIZE": fmt.Sprintf("%#x", MEM_SIZE),
}

// Memory is the 64KiB byte-addressable memory image.
type Memory [MEM_SIZE]byte

// Defines for the memory.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Initialize zero fills the whole address space.
func (mem *Memory) Initialize() {
	clear(mem[:])
}

// Read one byte.
func (mem *Memory) Read(address uint16) byte {
	return mem[address]
}

// Write one byte.
func (mem *Memory) Write(address uint16, value byte) {
	mem[address] = value
}

// WriteWord writes a little-endian word, low byte at address, and charges
// one cycle per byte against the budget.
func (mem *Memory) WriteWord(value uint16, address uint16, cycles *int32) {
	mem[address] = byte(value & 0xff)
	mem[address+1] = byte(value >> 8)
	*cycles -= 2
}

// Load copies data into memory starting at address, wrapping past 0xFFFF.
func (mem *Memory) Load(address uint16, data []byte) {
	for n, value := range data {
		mem[address+uint16(n)] = value
	}
}
