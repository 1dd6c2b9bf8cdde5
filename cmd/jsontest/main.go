// Command jsontest replays a SingleStepTests-style per-opcode JSON
// conformance corpus against the CPU in isolation, using the bus's
// flat test-mode memory so no timer/PPU/cartridge state interferes
// with a single-instruction test vector.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pinebrook/dmgcore/internal/bus"
	"github.com/pinebrook/dmgcore/internal/cpu"
)

// state mirrors one "initial"/"final" block of a SingleStepTests
// vector: named registers plus a list of [addr, value] memory pokes.
type state struct {
	PC  uint16      `json:"pc"`
	SP  uint16      `json:"sp"`
	A   byte        `json:"a"`
	B   byte        `json:"b"`
	C   byte        `json:"c"`
	D   byte        `json:"d"`
	E   byte        `json:"e"`
	F   byte        `json:"f"`
	H   byte        `json:"h"`
	L   byte        `json:"l"`
	IME int         `json:"ime"`
	RAM [][2]uint32 `json:"ram"`
}

type vector struct {
	Name    string  `json:"name"`
	Initial state   `json:"initial"`
	Final   state   `json:"final"`
	Cycles  []any   `json:"cycles"`
}

func apply(b *bus.Bus, c *cpu.CPU, s state) {
	c.PC, c.SP = s.PC, s.SP
	c.A, c.B, c.C, c.D, c.E, c.F, c.H, c.L = s.A, s.B, s.C, s.D, s.E, s.F, s.H, s.L
	for _, poke := range s.RAM {
		b.Write(uint16(poke[0]), byte(poke[1]))
	}
}

// diff compares the CPU/memory state against want, returning a
// human-readable list of mismatches (empty if the vector passed).
func diff(b *bus.Bus, c *cpu.CPU, want state) []string {
	var problems []string
	check := func(name string, got, wantv uint16) {
		if got != wantv {
			problems = append(problems, fmt.Sprintf("%s: got %#x want %#x", name, got, wantv))
		}
	}
	check("pc", c.PC, want.PC)
	check("sp", c.SP, want.SP)
	check("a", uint16(c.A), uint16(want.A))
	check("b", uint16(c.B), uint16(want.B))
	check("c", uint16(c.C), uint16(want.C))
	check("d", uint16(c.D), uint16(want.D))
	check("e", uint16(c.E), uint16(want.E))
	check("f", uint16(c.F), uint16(want.F))
	check("h", uint16(c.H), uint16(want.H))
	check("l", uint16(c.L), uint16(want.L))
	for _, poke := range want.RAM {
		addr, wantv := uint16(poke[0]), byte(poke[1])
		if got := b.Read(addr); got != wantv {
			problems = append(problems, fmt.Sprintf("ram[%#x]: got %#x want %#x", addr, got, wantv))
		}
	}
	return problems
}

func runFile(path string) (pass, fail int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	var vectors []vector
	if err := json.Unmarshal(raw, &vectors); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}

	for _, v := range vectors {
		b := bus.New()
		b.SetTestMode(true)
		c := cpu.New(b)
		b.SetInterruptLines(c)
		c.SetIE(0)
		c.SetIF(0)

		apply(b, c, v.Initial)
		if v.Initial.IME != 0 {
			c.IME = true
		}

		if _, stepErr := c.Step(); stepErr != nil {
			fail++
			log.Printf("FAIL %s/%s: %v", path, v.Name, stepErr)
			continue
		}

		if problems := diff(b, c, v.Final); len(problems) > 0 {
			fail++
			log.Printf("FAIL %s/%s: %v", path, v.Name, problems)
			continue
		}
		pass++
	}
	return pass, fail, nil
}

func main() {
	dir := flag.String("dir", "", "directory of *.json SingleStepTests-style vectors")
	flag.Parse()
	if *dir == "" {
		log.Fatal("jsontest: -dir is required")
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil {
		log.Fatalf("jsontest: glob: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("jsontest: no .json files found under %s", *dir)
	}

	var totalPass, totalFail int
	for _, f := range files {
		pass, fail, err := runFile(f)
		if err != nil {
			log.Printf("%s: %v", f, err)
			continue
		}
		totalPass += pass
		totalFail += fail
	}
	fmt.Printf("jsontest: %d passed, %d failed\n", totalPass, totalFail)
	if totalFail > 0 {
		os.Exit(1)
	}
}
