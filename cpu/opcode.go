package cpu

import (
	"fmt"
)

// Mode is an addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	IMPLIED     = Mode(0) // impl
	IMMEDIATE   = Mode(1) // imm
	ZERO_PAGE   = Mode(2) // zp
	ZERO_PAGE_X = Mode(3) // zp,x
	ZERO_PAGE_Y = Mode(4) // zp,y
	ABSOLUTE    = Mode(5) // abs
	ABSOLUTE_X  = Mode(6) // abs,x
	ABSOLUTE_Y  = Mode(7) // abs,y
	INDIRECT_X  = Mode(8) // (ind,x)
	INDIRECT_Y  = Mode(9) // (ind),y
)

// Operands returns the number of instruction stream bytes following the
// opcode for this mode.
func (mode Mode) Operands() int {
	switch mode {
	case IMPLIED:
		return 0
	case ABSOLUTE, ABSOLUTE_X, ABSOLUTE_Y:
		return 2
	default:
		return 1
	}
}

// Mnemonic is an instruction identity.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	ILL = Mnemonic(0) // ???
	LDA = Mnemonic(1) // lda
	LDX = Mnemonic(2) // ldx
	LDY = Mnemonic(3) // ldy
	JSR = Mnemonic(4) // jsr
	JMP = Mnemonic(5) // jmp
	NOP = Mnemonic(6) // nop
)

// Register selects one of the 8-bit general registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // a
	REG_X = Register(1) // x
	REG_Y = Register(2) // y
)

// IllegalPolicy selects what Execute does with an unimplemented opcode.
type IllegalPolicy int

//go:generate go tool stringer -linecomment -type=IllegalPolicy
const (
	ILLEGAL_HALT = IllegalPolicy(0) // halt
	ILLEGAL_NOP  = IllegalPolicy(1) // nop
)

// Instruction describes an opcode.
type Instruction struct {
	Mnemonic Mnemonic
	Mode     Mode
}

// instructionSet is indexed by opcode. Slots left zero are ILL.
var instructionSet = [256]Instruction{
	0x20: {JSR, ABSOLUTE},
	0x4C: {JMP, ABSOLUTE},
	0xEA: {NOP, IMPLIED},

	0xA9: {LDA, IMMEDIATE},
	0xA5: {LDA, ZERO_PAGE},
	0xB5: {LDA, ZERO_PAGE_X},
	0xAD: {LDA, ABSOLUTE},
	0xBD: {LDA, ABSOLUTE_X},
	0xB9: {LDA, ABSOLUTE_Y},
	0xA1: {LDA, INDIRECT_X},
	0xB1: {LDA, INDIRECT_Y},

	0xA2: {LDX, IMMEDIATE},
	0xA6: {LDX, ZERO_PAGE},
	0xB6: {LDX, ZERO_PAGE_Y},
	0xAE: {LDX, ABSOLUTE},
	0xBE: {LDX, ABSOLUTE_Y},

	0xA0: {LDY, IMMEDIATE},
	0xA4: {LDY, ZERO_PAGE},
	0xB4: {LDY, ZERO_PAGE_X},
	0xAC: {LDY, ABSOLUTE},
	0xBC: {LDY, ABSOLUTE_X},
}

// Lookup returns the instruction for an opcode.
func Lookup(opcode byte) Instruction {
	return instructionSet[opcode]
}

// Encode returns the opcode of a mnemonic in an addressing mode.
func Encode(mnemonic Mnemonic, mode Mode) (opcode byte, ok bool) {
	if mnemonic == ILL {
		return
	}

	for n, ins := range instructionSet {
		if ins.Mnemonic == mnemonic && ins.Mode == mode {
			opcode = byte(n)
			ok = true
			return
		}
	}

	return
}

// Size returns the encoded length of the instruction in bytes.
func (ins Instruction) Size() int {
	return 1 + ins.Mode.Operands()
}

// Cycles returns the cycle count of the instruction, not counting the
// extra cycle taken when an indexed access crosses a page boundary.
// Illegal opcodes return zero.
func (ins Instruction) Cycles() int {
	switch ins.Mnemonic {
	case ILL:
		return 0
	case NOP:
		return 2
	case JMP:
		return 3
	case JSR:
		return 6
	}

	switch ins.Mode {
	case IMMEDIATE:
		return 2
	case ZERO_PAGE:
		return 3
	case INDIRECT_X:
		return 6
	case INDIRECT_Y:
		return 5
	default:
		return 4
	}
}

func (ins Instruction) String() string {
	if ins.Mnemonic == ILL || ins.Mode == IMPLIED {
		return ins.Mnemonic.String()
	}

	return fmt.Sprintf("%v %v", ins.Mnemonic, ins.Mode)
}
