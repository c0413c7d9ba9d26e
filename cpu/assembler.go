// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Assembler is a single pass macro assembler for the 6502.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	address uint16 // Address of the next generated byte.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// mnemonicMap maps instruction names.
var mnemonicMap = map[string]Mnemonic{
	"lda": LDA,
	"ldx": LDX,
	"ldy": LDY,
	"jsr": JSR,
	"jmp": JMP,
	"nop": NOP,
}

// labelRe matches a symbol name.
var labelRe = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// valueOf returns the value of a number.
// Accepts $hex, %binary, and anything strconv.ParseInt accepts in base 0.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	text := word
	base := 0
	switch {
	case strings.HasPrefix(text, "$"):
		base = 16
		text = text[1:]
	case strings.HasPrefix(text, "%"):
		base = 2
		text = text[1:]
	}

	v64, err := strconv.ParseInt(text, base, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -0x8000 || v64 > 0xffff {
		err = ErrValueRange
		return
	}

	value = int(v64)
	return
}

// resolve returns the value of an operand expression: a number, an equate,
// or a label, optionally prefixed with '<' (low byte) or '>' (high byte).
// A label that is not yet defined is returned by name for later linking.
func (asm *Assembler) resolve(word string) (value int, label string, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	token := word
	part := byte(0)
	if token[0] == '<' || token[0] == '>' {
		part = token[0]
		token = token[1:]
	}

	equate, ok := asm.Equate[token]
	if ok {
		token = equate
	}

	addr, ok := asm.Label[token]
	switch {
	case ok:
		value = int(addr)
	case labelRe.MatchString(token):
		if part != 0 {
			// Cannot split an address that is not known yet.
			err = ErrParseOperand(word)
			return
		}
		label = token
		return
	default:
		value, err = asm.valueOf(token)
		if err != nil {
			return
		}
	}

	switch part {
	case '<':
		value = int(uint16(value) & 0xff)
	case '>':
		value = int(uint16(value) >> 8)
	}

	return
}

// toByte checks that a value fits in a byte, signed or unsigned.
func toByte(value int) (b byte, err error) {
	if value < -0x80 || value > 0xff {
		err = ErrValueRange
		return
	}

	b = byte(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var number int
		number, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(number)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x8000 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine parses a single line, defining labels and expanding macros,
// and returns the words left to assemble.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.address
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each invocation.
		local := fmt.Sprintf("%v_%v_", name, lineno)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program. Code is placed from
// RESET_VECTOR until the first .org directive.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint16, 16)
	asm.Lines = asm.Lines[:0]
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(_cpu_defines)
	asm.Equate["LINENO"] = "0"
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.address = RESET_VECTOR

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Bytes[len(op.Bytes)-2] = byte(addr & 0xff)
		op.Bytes[len(op.Bytes)-1] = byte(addr >> 8)
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// splitValues splits directive arguments on spaces and commas.
func splitValues(words []string) (values []string) {
	for _, word := range words {
		for _, value := range strings.Split(word, ",") {
			if len(value) > 0 {
				values = append(values, value)
			}
		}
	}

	return
}

// parseOperand selects the addressing mode for an operand, preferring the
// zero page form when the value is a known byte.
func (asm *Assembler) parseOperand(mnemonic Mnemonic, operand string) (mode Mode, value int, label string, err error) {
	lower := strings.ToLower(operand)

	var core string
	var short, long Mode
	switch {
	case len(operand) == 0:
		short, long = IMPLIED, IMPLIED
	case strings.HasPrefix(operand, "#"):
		core = operand[1:]
		short, long = IMMEDIATE, IMMEDIATE
	case strings.HasPrefix(lower, "(") && strings.HasSuffix(lower, ",x)"):
		core = operand[1 : len(operand)-3]
		short, long = INDIRECT_X, INDIRECT_X
	case strings.HasPrefix(lower, "(") && strings.HasSuffix(lower, "),y"):
		core = operand[1 : len(operand)-3]
		short, long = INDIRECT_Y, INDIRECT_Y
	case strings.HasPrefix(lower, "("):
		err = ErrParseOperand(operand)
		return
	case strings.HasSuffix(lower, ",x"):
		core = operand[:len(operand)-2]
		short, long = ZERO_PAGE_X, ABSOLUTE_X
	case strings.HasSuffix(lower, ",y"):
		core = operand[:len(operand)-2]
		short, long = ZERO_PAGE_Y, ABSOLUTE_Y
	default:
		core = operand
		short, long = ZERO_PAGE, ABSOLUTE
	}

	if short != IMPLIED {
		value, label, err = asm.resolve(core)
		if err != nil {
			return
		}
	}

	_, has_short := Encode(mnemonic, short)
	_, has_long := Encode(mnemonic, long)

	switch {
	case len(label) != 0:
		// Unresolved labels are always linked as absolute addresses.
		if !has_long || long.Operands() != 2 {
			err = ErrModeInvalid
			return
		}
		mode = long
	case has_short && short != long && value >= 0 && value <= 0xff:
		mode = short
	case has_long:
		mode = long
	default:
		err = ErrModeInvalid
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(bytes) == 0 {
			return
		}
		line := Line{LineNo: lineno, Address: asm.address, Words: initial_words, Bytes: bytes, LinkLabel: label}
		asm.Lines = append(asm.Lines, line)
		asm.address += uint16(len(bytes))
	}()

	switch strings.ToLower(words[0]) {
	case ".org":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var value int
		var org string
		value, org, err = asm.resolve(words[1])
		if err != nil {
			return
		}
		if len(org) != 0 {
			err = ErrLabelMissing(org)
			return
		}
		asm.address = uint16(value)
		return
	case ".byte":
		values := splitValues(words[1:])
		if len(values) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range values {
			var value int
			var ref string
			value, ref, err = asm.resolve(word)
			if err != nil {
				return
			}
			if len(ref) != 0 {
				err = ErrParseOperand(word)
				return
			}
			var b byte
			b, err = toByte(value)
			if err != nil {
				return
			}
			bytes = append(bytes, b)
		}
		return
	case ".word":
		values := splitValues(words[1:])
		if len(values) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for n, word := range values {
			var value int
			var ref string
			value, ref, err = asm.resolve(word)
			if err != nil {
				return
			}
			if len(ref) != 0 {
				if n != len(values)-1 {
					err = ErrLabelMisplaced
					return
				}
				label = ref
			}
			bytes = append(bytes, byte(uint16(value)&0xff), byte(uint16(value)>>8))
		}
		return
	}

	if strings.HasPrefix(words[0], ".") {
		err = ErrDirectiveInvalid
		return
	}

	mnemonic, ok := mnemonicMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	mode, value, label, err := asm.parseOperand(mnemonic, strings.Join(words[1:], ""))
	if err != nil {
		return
	}

	opcode, _ := Encode(mnemonic, mode)
	bytes = append(bytes, opcode)

	switch mode.Operands() {
	case 1:
		var b byte
		b, err = toByte(value)
		if err != nil {
			return
		}
		bytes = append(bytes, b)
	case 2:
		bytes = append(bytes, byte(uint16(value)&0xff), byte(uint16(value)>>8))
	}

	return
}
