package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/m6502/memory"
)

// Disassemble renders the instruction at address and returns its size.
// Memory is inspected directly, without charging cycles.
func Disassemble(mem *memory.Memory, address uint16) (text string, size int) {
	opcode := mem.Read(address)
	ins := Lookup(opcode)
	if ins.Mnemonic == ILL {
		return fmt.Sprintf(".byte $%02X", opcode), 1
	}

	size = ins.Size()
	name := strings.ToUpper(ins.Mnemonic.String())
	lo := mem.Read(address + 1)
	word := uint16(lo) | (uint16(mem.Read(address+2)) << 8)

	switch ins.Mode {
	case IMPLIED:
		text = name
	case IMMEDIATE:
		text = fmt.Sprintf("%s #$%02X", name, lo)
	case ZERO_PAGE:
		text = fmt.Sprintf("%s $%02X", name, lo)
	case ZERO_PAGE_X:
		text = fmt.Sprintf("%s $%02X,X", name, lo)
	case ZERO_PAGE_Y:
		text = fmt.Sprintf("%s $%02X,Y", name, lo)
	case ABSOLUTE:
		text = fmt.Sprintf("%s $%04X", name, word)
	case ABSOLUTE_X:
		text = fmt.Sprintf("%s $%04X,X", name, word)
	case ABSOLUTE_Y:
		text = fmt.Sprintf("%s $%04X,Y", name, word)
	case INDIRECT_X:
		text = fmt.Sprintf("%s ($%02X,X)", name, lo)
	case INDIRECT_Y:
		text = fmt.Sprintf("%s ($%02X),Y", name, lo)
	}

	return
}
