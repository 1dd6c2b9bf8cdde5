package cart

import "testing"

// makeROM builds a fake banked ROM of the given size where each 0x4000
// bank's first byte is the bank number, so reads can assert which bank
// is actually mapped in.
func makeROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	return rom
}

func TestMBC1_DefaultsToBank1InSwitchableWindow(t *testing.T) {
	m := NewMBC1(makeROM(4), 0)
	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("bank got %d want 1", got)
	}
	if got := m.Read(0x0000); got != 0 {
		t.Fatalf("fixed bank0 got %d want 0", got)
	}
}

func TestMBC1_ROMBankSwitchLow5Bits(t *testing.T) {
	m := NewMBC1(makeROM(4), 0)
	m.Write(0x2000, 0x03)
	if got := m.Read(0x4000); got != 3 {
		t.Fatalf("bank got %d want 3", got)
	}
}

func TestMBC1_ROMBank0RemapsTo1(t *testing.T) {
	m := NewMBC1(makeROM(4), 0)
	m.Write(0x2000, 0x00)
	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("bank got %d want 1 (bank 0 remaps to 1)", got)
	}
}

func TestMBC1_RAMDisabledByDefault(t *testing.T) {
	m := NewMBC1(makeROM(2), 8*1024)
	m.Write(0xA000, 0x42)
	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("disabled RAM read got %#x want 0xFF", got)
	}
}

func TestMBC1_RAMEnableAndReadWrite(t *testing.T) {
	m := NewMBC1(makeROM(2), 8*1024)
	m.Write(0x0000, 0x0A) // enable RAM
	m.Write(0xA010, 0x7E)
	if got := m.Read(0xA010); got != 0x7E {
		t.Fatalf("RAM got %#x want 0x7E", got)
	}
}

func TestMBC1_RAMBankingModeSelectsBank(t *testing.T) {
	m := NewMBC1(makeROM(2), 32*1024) // 4 RAM banks of 8KB
	m.Write(0x0000, 0x0A)             // enable RAM
	m.Write(0x6000, 0x01)             // mode 1: RAM banking
	m.Write(0x4000, 0x02)             // select RAM bank 2
	m.Write(0xA000, 0x11)
	m.Write(0x4000, 0x00) // back to bank 0
	m.Write(0xA000, 0x22)
	if got := m.Read(0xA000); got != 0x22 {
		t.Fatalf("bank0 RAM got %#x want 0x22", got)
	}
	m.Write(0x4000, 0x02)
	if got := m.Read(0xA000); got != 0x11 {
		t.Fatalf("bank2 RAM got %#x want 0x11", got)
	}
}

func TestMBC1_RAMWriteIgnoredWhenDisabled(t *testing.T) {
	m := NewMBC1(makeROM(2), 8*1024)
	m.Write(0xA000, 0x99) // RAM not enabled
	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("got %#x want 0xFF (write should have been dropped)", got)
	}
}
