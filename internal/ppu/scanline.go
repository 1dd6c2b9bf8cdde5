package ppu

// renderScanline fills FrameBuffer[ly*160 : ly*160+160] with the
// background layer for scanline ly, following spec.md's per-pixel
// algorithm directly (addressing mode, tile map selection, BGP lookup)
// rather than a pixel-FIFO fetcher — window and sprite compositing are
// out of scope for this core.
func (p *PPU) renderScanline(ly byte) {
	lcdc := p.lcdc()
	if lcdc&lcdcBGEnable == 0 {
		return
	}

	tileMapBase := uint16(0x9800)
	if lcdc&lcdcTileMapSelect != 0 {
		tileMapBase = 0x9C00
	}
	unsignedAddressing := lcdc&lcdcTileDataSel != 0

	scy := p.mem.Read(regSCY)
	scx := p.mem.Read(regSCX)
	bgp := p.mem.Read(regBGP)

	mapY := uint16(ly) + uint16(scy) // mod 256 by byte truncation below
	tileRow := byte(mapY) & 7
	mapRowIdx := uint16(byte(mapY) >> 3)

	for px := 0; px < screenWidth; px++ {
		mapX := byte(uint16(px) + uint16(scx))
		mapColIdx := uint16(mapX >> 3)

		tileIDAddr := tileMapBase + mapRowIdx*32 + mapColIdx
		tileID := p.mem.Read(tileIDAddr)

		var tileAddr uint16
		if unsignedAddressing {
			tileAddr = 0x8000 + uint16(tileID)*16
		} else {
			tileAddr = uint16(int32(0x9000) + int32(int8(tileID))*16)
		}

		lo := p.mem.Read(tileAddr + uint16(tileRow)*2)
		hi := p.mem.Read(tileAddr + uint16(tileRow)*2 + 1)

		col := mapX & 7
		bit := 7 - col
		colorID := ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)

		paletteColor := (bgp >> (colorID * 2)) & 0x03
		p.FrameBuffer[int(ly)*screenWidth+px] = paletteColor
	}
}
