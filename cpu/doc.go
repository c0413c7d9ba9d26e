// Package cpu implements a cycle-counting MOS 6502 core and an assembler
// for the instructions it executes.
//
// The CPU consists of a 16-bit program counter, an 8-bit stack pointer
// into the fixed stack page at 0x0100, the A, X and Y registers, and seven
// independent status flags. Execute runs whole instructions against a
// borrowed memory.Memory until a cycle budget is spent, charging one
// cycle per bus access plus the indexing and page-crossing penalties of
// each addressing mode.
//
// Opcodes are dispatched through a dense 256 entry handler table owned by
// each Cpu. Unimplemented opcodes either halt with ErrOpcodeIllegal or act
// as a one cycle no-op, as selected by Cpu.Illegal.
//
// The assembler provides a small assembly language for the implemented
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
