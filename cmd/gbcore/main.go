// Command gbcore is a thin ebiten frontend over internal/system: it
// loads a ROM, steps the core one frame per Update tick, and blits the
// PPU's 2-bit framebuffer through a fixed DMG palette.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pinebrook/dmgcore/internal/cart"
	"github.com/pinebrook/dmgcore/internal/system"
)

const (
	screenWidth  = 160
	screenHeight = 144

	// maxStepsPerFrame bounds how many instructions Update will execute
	// looking for a frame-ready edge, so a locked-up core (STOP, or a
	// program that never re-enables the LCD) cannot hang the UI loop.
	maxStepsPerFrame = 200000
)

// dmgPalette maps the PPU's 2-bit color indices to the classic
// four-shade DMG green palette.
var dmgPalette = [4][4]byte{
	{0xE0, 0xF8, 0xD0, 0xFF},
	{0x88, 0xC0, 0x70, 0xFF},
	{0x34, 0x68, 0x56, 0xFF},
	{0x08, 0x18, 0x20, 0xFF},
}

type game struct {
	sys *system.System
	rgba []byte
}

func newGame(sys *system.System) *game {
	return &game{sys: sys, rgba: make([]byte, screenWidth*screenHeight*4)}
}

func (g *game) Update() error {
	if err := g.sys.StepFrame(maxStepsPerFrame); err != nil {
		return err
	}
	fb := g.sys.FrameBuffer()
	for i, colorID := range fb {
		copy(g.rgba[i*4:i*4+4], dmgPalette[colorID&0x03][:])
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.rgba)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	romPath := flag.String("rom", "", "path to a Game Boy ROM image")
	scale := flag.Int("scale", 3, "window scale factor")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("gbcore: -rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("gbcore: read ROM: %v", err)
	}

	if h, err := cart.ParseHeader(rom); err == nil {
		log.Printf("gbcore: loaded %q (type=%s, banks=%d, ram=%dB)",
			h.Title, h.CartTypeStr, h.ROMBanks, h.RAMSizeBytes)
	}

	sys := system.New()
	sys.LoadCartridge(rom)

	ebiten.SetWindowSize(screenWidth*(*scale), screenHeight*(*scale))
	ebiten.SetWindowTitle("gbcore")
	if err := ebiten.RunGame(newGame(sys)); err != nil {
		log.Fatal(err)
	}
}
