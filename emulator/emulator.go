// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/m6502/cpu"
	"github.com/ezrec/m6502/internal"
	"github.com/ezrec/m6502/memory"
)

const (
	STEP_BUDGET = 1 // Budget that runs exactly one instruction.
)

var _emulator_defines = map[string]string{
	"STEP_BUDGET": fmt.Sprintf("%v", STEP_BUDGET),
}

// Emulator state. CPU + memory + the program loaded into it.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Memory   *memory.Memory // Memory image owned by the emulator.
	Program  *cpu.Program   // Reference to the currently loaded program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Memory:  &memory.Memory{},
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(emu.Memory)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Memory.Defines(),
	)
}

// Reset the CPU and memory, then load the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset(emu.Memory)
	emu.Program.Load(emu.Memory)

	return
}

// Ticks returns the total cycles since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() uint16 {
	return emu.Cpu.PC
}

// LineNo returns the source line number for the instruction at PC.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.PC)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Disassemble returns the instruction at PC.
func (emu *Emulator) Disassemble() string {
	text, _ := cpu.Disassemble(emu.Memory, emu.Cpu.PC)
	return text
}

// Run executes whole instructions until the budget is spent.
func (emu *Emulator) Run(cycles int32) (used int32, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	defer func() {
		if err != nil {
			// A halted CPU leaves PC on the failing instruction.
			err = &ErrRuntime{LineNo: emu.LineNo(), Address: emu.Cpu.PC, Err: err}
		}
	}()

	used, err = emu.Cpu.Execute(cycles, emu.Memory)

	return
}

// Step executes a single instruction.
func (emu *Emulator) Step() (used int32, err error) {
	return emu.Run(STEP_BUDGET)
}
