package cpu

import (
	"iter"

	"github.com/ezrec/m6502/memory"
)

// Line is a line of assembled source with the bytes it generated.
type Line struct {
	LineNo    int      // Source line number.
	Address   uint16   // Address of the first byte.
	Words     []string // Source words.
	Bytes     []byte   // Generated bytes.
	LinkLabel string   // Label patched into the final two bytes.
}

// Program is an assembled program.
type Program struct {
	Lines []Line
}

// Debug locates an address within a program line.
type Debug struct {
	*Line
	Index int // Offset of the address within Line.Bytes.
}

// Debug returns the line that generated the byte at address. Line is nil
// when no line covers the address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		offset := int(address - line.Address)
		if offset < len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: offset,
			}
			break
		}
	}

	return
}

// Bytes iterates over every generated byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(address uint16, value byte) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Address+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Load writes the program into memory.
func (prog *Program) Load(mem *memory.Memory) {
	for address, value := range prog.Bytes() {
		mem.Write(address, value)
	}
}
