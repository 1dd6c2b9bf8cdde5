// Package system wires the Bus, Timer, PPU and CPU into one steppable
// DMG core and owns the only order-of-operations the spec mandates:
// CPU first, then Timer, then PPU, once per Step.
package system

import (
	"github.com/pinebrook/dmgcore/internal/bus"
	"github.com/pinebrook/dmgcore/internal/cart"
	"github.com/pinebrook/dmgcore/internal/cpu"
	"github.com/pinebrook/dmgcore/internal/ppu"
	"github.com/pinebrook/dmgcore/internal/timer"
)

// Post-boot-ROM register values a real DMG would have after its
// internal boot ROM finishes and hands off to the cartridge at $0100.
const (
	resetLCDC = 0x91
	resetSTAT = 0x85
	resetBGP  = 0xFC
)

// System is the aggregate machine: Bus owns the address space, Timer
// and PPU observe it through small interfaces, CPU drives the clock.
type System struct {
	Bus   *bus.Bus
	Timer *timer.Timer
	PPU   *ppu.PPU
	CPU   *cpu.CPU
}

// New constructs a fully wired System with no cartridge inserted
// (bus reads as a NullCartridge until LoadCartridge is called) and
// resets it to the documented post-boot-ROM state.
func New() *System {
	b := bus.New()
	c := cpu.New(b)
	b.SetInterruptLines(c)

	s := &System{Bus: b, CPU: c}

	s.Timer = timer.New(func() { c.RequestInterrupt(cpu.Timer) })
	b.SetTimer(s.Timer)

	s.PPU = ppu.New(b, func(kind ppu.InterruptKind) {
		switch kind {
		case ppu.InterruptVBlank:
			c.RequestInterrupt(cpu.VBlank)
		case ppu.InterruptLCDStat:
			c.RequestInterrupt(cpu.LCDStat)
		}
	})

	s.Reset()
	return s
}

// LoadCartridge parses and inserts a ROM image, replacing whatever
// cartridge (if any) was previously mounted.
func (s *System) LoadCartridge(rom []byte) {
	s.Bus.SetCartridge(cart.New(rom))
}

// Reset restores CPU registers and the PPU/LCD register block to the
// documented DMG post-boot-ROM state. The timer is not touched: its
// free-running system counter starts at zero when New builds it and
// keeps whatever value it has when Reset is called later.
func (s *System) Reset() {
	s.CPU.Reset()
	s.Bus.Write(0xFF40, resetLCDC)
	s.Bus.Write(0xFF41, resetSTAT)
	s.Bus.Write(0xFF44, 0x00)
	s.Bus.Write(0xFF47, resetBGP)
}

// Step executes one CPU instruction (or interrupt dispatch, or HALT
// idle cycle) and advances the Timer and PPU by the same M-cycle
// count, in that order. err is non-nil only on an undefined-opcode
// lockup, matching CPU.Step's contract.
func (s *System) Step() (mCycles int, err error) {
	m, err := s.CPU.Step()
	if err != nil {
		return m, err
	}
	s.Timer.Tick(m)
	s.PPU.Tick(m)
	return m, nil
}

// StepFrame runs Step until a complete frame has been rendered (the
// PPU's FrameReady edge), or until maxSteps instructions have executed
// without one — a safety bound against a runaway or locked-up core.
func (s *System) StepFrame(maxSteps int) error {
	for i := 0; i < maxSteps; i++ {
		if _, err := s.Step(); err != nil {
			return err
		}
		if s.PPU.FrameReady() {
			return nil
		}
	}
	return nil
}

// FrameBuffer returns the PPU's current 160x144 framebuffer of 2-bit
// palette-resolved color indices.
func (s *System) FrameBuffer() *[160 * 144]byte {
	return &s.PPU.FrameBuffer
}

// FrameReady reports whether the most recent Step (or StepFrame) call
// completed a frame.
func (s *System) FrameReady() bool {
	return s.PPU.FrameReady()
}
