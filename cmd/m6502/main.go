// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/m6502/cpu"
	"github.com/ezrec/m6502/emulator"
	"github.com/ezrec/m6502/translate"
)

// demo calls a subroutine that loads the accumulator.
var demo = []string{
	"        jsr sub",
	"        .org $4242",
	"sub:    lda #$69",
}

func main() {
	var compile string
	var binary string
	var org string
	var cycles int
	var step bool
	var list bool
	var nop bool
	var verbose bool
	var lang string

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "binary file to load")
	flag.StringVar(&org, "org", "0xfffc", "load address for -b")
	flag.IntVar(&cycles, "n", 8, "cycle budget")
	flag.BoolVar(&step, "s", false, "Step one instruction at a time")
	flag.BoolVar(&list, "l", false, "List the program before running")
	flag.BoolVar(&nop, "x", false, "Treat illegal opcodes as NOP")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "L", "", "Message locale (default: host locale)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocale(lang)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	if nop {
		emu.Cpu.Illegal = cpu.ILLEGAL_NOP
	}

	var prog *cpu.Program
	var err error

	switch {
	case len(binary) != 0:
		address, err := strconv.ParseUint(org, 0, 16)
		if err != nil {
			log.Fatalf("-org %v: %v", org, err)
		}
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		prog = &cpu.Program{
			Lines: []cpu.Line{{Address: uint16(address), Bytes: data}},
		}
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for equ, value := range emu.Defines() {
			asm.Predefine(equ, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	default:
		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(strings.NewReader(strings.Join(demo, "\n")))
		if err != nil {
			log.Fatalf("demo: %v", err)
		}
	}

	emu.Program = prog
	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if list {
		for _, line := range prog.Lines {
			for n := 0; n < len(line.Bytes); {
				address := line.Address + uint16(n)
				text, size := cpu.Disassemble(emu.Memory, address)
				fmt.Printf("%04X  %-16s ; line %d\n", address, text, line.LineNo)
				n += size
			}
		}
	}

	var used int32
	if step {
		for remaining := int32(cycles); remaining > 0; {
			fmt.Printf("%04X  %v\n", emu.Pc(), emu.Disassemble())
			var taken int32
			taken, err = emu.Step()
			used += taken
			remaining -= taken
			if err != nil {
				break
			}
		}
	} else {
		used, err = emu.Run(int32(cycles))
	}

	fmt.Printf("cycles: %d\n", used)
	fmt.Print(emu.Cpu.String())

	if err != nil {
		log.Fatal(err)
	}
}
