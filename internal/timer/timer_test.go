package timer

import "testing"

func TestTimer_DIVIncrementsAtExpectedRate(t *testing.T) {
	tm := New(nil)
	tm.Tick(256) // 256 M-cycles = 1024 T-cycles
	if v := tm.Read(0xFF04); v != 4 {
		t.Fatalf("DIV got %d want 4", v)
	}
}

func TestTimer_TIMARunsAtSelectedFrequency(t *testing.T) {
	tm := New(nil)
	tm.Write(0xFF07, 0x04) // enable, sel=00 -> bit 9, period 1024 T-cycles
	tm.Tick(256)           // 1024 T-cycles: exactly one period
	if v := tm.Read(0xFF05); v != 1 {
		t.Fatalf("TIMA got %d want 1", v)
	}
}

func TestTimer_OverflowReloadsAndRaisesInterrupt(t *testing.T) {
	var fired bool
	tm := New(func() { fired = true })
	tm.Write(0xFF05, 0xFF)
	tm.Write(0xFF06, 0x50)
	tm.Write(0xFF07, 0x04)
	tm.Tick(300)
	if v := tm.Read(0xFF05); v != 0x50 {
		t.Fatalf("TIMA after overflow got %02x want 50", v)
	}
	if !fired {
		t.Fatalf("expected TIMER interrupt request on overflow")
	}
}

func TestTimer_DIVWriteResetsToZero(t *testing.T) {
	tm := New(nil)
	tm.Tick(1000)
	tm.Write(0xFF04, 0x42) // value is ignored; any write resets
	if v := tm.Read(0xFF04); v != 0 {
		t.Fatalf("DIV after write got %d want 0", v)
	}
}

func TestTimer_DIVResetCanCauseFallingEdgeIncrement(t *testing.T) {
	tm := New(nil)
	tm.Write(0xFF07, 0x05) // enable, sel=01 -> bit 3
	// Raise the counter so bit 3 is currently set, producing a 1->0
	// transition the instant the counter is zeroed.
	tm.Tick(2) // systemCounter = 8 (bit3 set)
	if tm.Read(0xFF05) != 0 {
		t.Fatalf("no increment expected yet")
	}
	tm.Write(0xFF04, 0x00)
	if v := tm.Read(0xFF05); v != 1 {
		t.Fatalf("TIMA after DIV-reset falling edge got %d want 1", v)
	}
}

func TestTimer_TACWriteLowerBitsUnaffectedOnRead(t *testing.T) {
	tm := New(nil)
	tm.Write(0xFF07, 0x07)
	if v := tm.Read(0xFF07); v != 0xFF {
		t.Fatalf("TAC read got %02x want FF (F8 | 07)", v)
	}
}
