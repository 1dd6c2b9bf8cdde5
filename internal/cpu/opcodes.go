package cpu

func (c *CPU) add8(a, b byte) (res byte, z, n, h, cy bool) {
	r := uint16(a) + uint16(b)
	res = byte(r)
	z = res == 0
	h = ((a & 0x0F) + (b & 0x0F)) > 0x0F
	cy = r > 0xFF
	return
}

func (c *CPU) adc8(a, b byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := uint16(a) + uint16(b) + uint16(ci)
	res = byte(r)
	z = res == 0
	h = ((a & 0x0F) + (b & 0x0F) + ci) > 0x0F
	cy = r > 0xFF
	return
}

func (c *CPU) sub8(a, b byte) (res byte, z, n, h, cy bool) {
	r := int16(a) - int16(b)
	res = byte(r)
	z = res == 0
	n = true
	h = (a & 0x0F) < (b & 0x0F)
	cy = int16(a) < int16(b)
	return
}

func (c *CPU) sbc8(a, b byte, carryIn bool) (res byte, z, n, h, cy bool) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := int16(a) - int16(b) - int16(ci)
	res = byte(r)
	z = res == 0
	n = true
	h = (a & 0x0F) < (b&0x0F)+ci
	cy = int16(a) < int16(b)+int16(ci)
	return
}

func (c *CPU) and8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a & b
	z = res == 0
	h = true
	return
}

func (c *CPU) xor8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a ^ b
	z = res == 0
	return
}

func (c *CPU) or8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a | b
	z = res == 0
	return
}

func (c *CPU) cp8(a, b byte) (z, n, h, cy bool) {
	_, z, n, h, cy = c.sub8(a, b)
	return
}

// reg8 maps a 3-bit register index (000..111 = B,C,D,E,H,L,(HL),A) to
// its value; idx 6 is an indirect (HL) access.
func (c *CPU) reg8(idx byte) byte {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read8(c.getHL())
	default:
		return c.A
	}
}

func (c *CPU) setReg8(idx byte, v byte) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.write8(c.getHL(), v)
	default:
		c.A = v
	}
}

// aluApply applies one of the eight ALU operations (selected by the CB-
// table-style 3-bit group used by $80-$BF and their immediate/($HL)
// forms) to A and src.
func (c *CPU) aluApply(group byte, src byte) {
	switch group {
	case 0: // ADD
		r, z, n, h, cy := c.add8(c.A, src)
		c.A = r
		c.setZNHC(z, n, h, cy)
	case 1: // ADC
		r, z, n, h, cy := c.adc8(c.A, src, c.F&flagC != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
	case 2: // SUB
		r, z, n, h, cy := c.sub8(c.A, src)
		c.A = r
		c.setZNHC(z, n, h, cy)
	case 3: // SBC
		r, z, n, h, cy := c.sbc8(c.A, src, c.F&flagC != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
	case 4: // AND
		r, z, n, h, cy := c.and8(c.A, src)
		c.A = r
		c.setZNHC(z, n, h, cy)
	case 5: // XOR
		r, z, n, h, cy := c.xor8(c.A, src)
		c.A = r
		c.setZNHC(z, n, h, cy)
	case 6: // OR
		r, z, n, h, cy := c.or8(c.A, src)
		c.A = r
		c.setZNHC(z, n, h, cy)
	case 7: // CP
		z, n, h, cy := c.cp8(c.A, src)
		c.setZNHC(z, n, h, cy)
	}
}

// exec decodes and runs a single non-CB opcode, returning its M-cycle
// cost (base cost plus any branch-taken penalty).
func (c *CPU) exec(op byte) int {
	// 01 ddd sss: LD r,r' / LD r,(HL) / LD (HL),r, except $76 = HALT.
	if op >= 0x40 && op <= 0x7F && op != 0x76 {
		d := (op >> 3) & 7
		s := op & 7
		c.setReg8(d, c.reg8(s))
		if d == 6 || s == 6 {
			return 2
		}
		return 1
	}
	// 10 ggg sss: ALU A,r / A,(HL).
	if op >= 0x80 && op <= 0xBF {
		group := (op >> 3) & 7
		src := op & 7
		c.aluApply(group, c.reg8(src))
		if src == 6 {
			return 2
		}
		return 1
	}

	switch op {
	case 0x00: // NOP
		return 1
	case 0x10: // STOP
		c.fetch8() // padding byte, always $00
		c.stopped = true
		c.write8(0xFF04, 0) // STOP resets the timer's free-running system counter
		return 1

	// LD r,d8
	case 0x06:
		c.B = c.fetch8()
		return 2
	case 0x0E:
		c.C = c.fetch8()
		return 2
	case 0x16:
		c.D = c.fetch8()
		return 2
	case 0x1E:
		c.E = c.fetch8()
		return 2
	case 0x26:
		c.H = c.fetch8()
		return 2
	case 0x2E:
		c.L = c.fetch8()
		return 2
	case 0x3E:
		c.A = c.fetch8()
		return 2
	case 0x36:
		c.write8(c.getHL(), c.fetch8())
		return 3

	// 16-bit loads
	case 0x01:
		c.setBC(c.fetch16())
		return 3
	case 0x11:
		c.setDE(c.fetch16())
		return 3
	case 0x21:
		c.setHL(c.fetch16())
		return 3
	case 0x31:
		c.SP = c.fetch16()
		return 3
	case 0x08: // LD (a16),SP
		c.write16(c.fetch16(), c.SP)
		return 5

	// LD (BC)/(DE),A and the reverse
	case 0x02:
		c.write8(c.getBC(), c.A)
		return 2
	case 0x12:
		c.write8(c.getDE(), c.A)
		return 2
	case 0x0A:
		c.A = c.read8(c.getBC())
		return 2
	case 0x1A:
		c.A = c.read8(c.getDE())
		return 2

	// LDI/LDD
	case 0x22:
		hl := c.getHL()
		c.write8(hl, c.A)
		c.setHL(hl + 1)
		return 2
	case 0x2A:
		hl := c.getHL()
		c.A = c.read8(hl)
		c.setHL(hl + 1)
		return 2
	case 0x32:
		hl := c.getHL()
		c.write8(hl, c.A)
		c.setHL(hl - 1)
		return 2
	case 0x3A:
		hl := c.getHL()
		c.A = c.read8(hl)
		c.setHL(hl - 1)
		return 2

	// LDH
	case 0xE0:
		c.write8(0xFF00+uint16(c.fetch8()), c.A)
		return 3
	case 0xF0:
		c.A = c.read8(0xFF00 + uint16(c.fetch8()))
		return 3
	case 0xE2:
		c.write8(0xFF00+uint16(c.C), c.A)
		return 2
	case 0xF2:
		c.A = c.read8(0xFF00 + uint16(c.C))
		return 2

	case 0xEA:
		c.write8(c.fetch16(), c.A)
		return 4
	case 0xFA:
		c.A = c.read8(c.fetch16())
		return 4

	// Rotate-A and flag ops
	case 0x07: // RLCA
		cv := (c.A >> 7) & 1
		c.A = (c.A << 1) | cv
		c.setZNHC(false, false, false, cv == 1)
		return 1
	case 0x0F: // RRCA
		cv := c.A & 1
		c.A = (c.A >> 1) | (cv << 7)
		c.setZNHC(false, false, false, cv == 1)
		return 1
	case 0x17: // RLA
		cv := (c.A >> 7) & 1
		ci := byte(0)
		if c.F&flagC != 0 {
			ci = 1
		}
		c.A = (c.A << 1) | ci
		c.setZNHC(false, false, false, cv == 1)
		return 1
	case 0x1F: // RRA
		cv := c.A & 1
		ci := byte(0)
		if c.F&flagC != 0 {
			ci = 1
		}
		c.A = (c.A >> 1) | (ci << 7)
		c.setZNHC(false, false, false, cv == 1)
		return 1
	case 0x27: // DAA
		a := c.A
		cf := c.F&flagC != 0
		if c.F&flagN == 0 {
			if cf || a > 0x99 {
				a += 0x60
				cf = true
			}
			if c.F&flagH != 0 || (a&0x0F) > 9 {
				a += 0x06
			}
		} else {
			if cf {
				a -= 0x60
			}
			if c.F&flagH != 0 {
				a -= 0x06
			}
		}
		c.A = a
		c.setZNHC(c.A == 0, c.F&flagN != 0, false, cf)
		return 1
	case 0x2F: // CPL
		c.A = ^c.A
		c.F = (c.F & (flagZ | flagC)) | flagN | flagH
		return 1
	case 0x37: // SCF
		c.F = (c.F & flagZ) | flagC
		return 1
	case 0x3F: // CCF
		c.setZNHC(c.F&flagZ != 0, false, false, c.F&flagC == 0)
		return 1

	// 8-bit INC/DEC
	case 0x04:
		c.B = c.inc8(c.B)
		return 1
	case 0x0C:
		c.C = c.inc8(c.C)
		return 1
	case 0x14:
		c.D = c.inc8(c.D)
		return 1
	case 0x1C:
		c.E = c.inc8(c.E)
		return 1
	case 0x24:
		c.H = c.inc8(c.H)
		return 1
	case 0x2C:
		c.L = c.inc8(c.L)
		return 1
	case 0x3C:
		c.A = c.inc8(c.A)
		return 1
	case 0x34:
		addr := c.getHL()
		c.write8(addr, c.inc8(c.read8(addr)))
		return 3
	case 0x05:
		c.B = c.dec8(c.B)
		return 1
	case 0x0D:
		c.C = c.dec8(c.C)
		return 1
	case 0x15:
		c.D = c.dec8(c.D)
		return 1
	case 0x1D:
		c.E = c.dec8(c.E)
		return 1
	case 0x25:
		c.H = c.dec8(c.H)
		return 1
	case 0x2D:
		c.L = c.dec8(c.L)
		return 1
	case 0x3D:
		c.A = c.dec8(c.A)
		return 1
	case 0x35:
		addr := c.getHL()
		c.write8(addr, c.dec8(c.read8(addr)))
		return 3

	// ALU immediate
	case 0xC6:
		c.aluApply(0, c.fetch8())
		return 2
	case 0xCE:
		c.aluApply(1, c.fetch8())
		return 2
	case 0xD6:
		c.aluApply(2, c.fetch8())
		return 2
	case 0xDE:
		c.aluApply(3, c.fetch8())
		return 2
	case 0xE6:
		c.aluApply(4, c.fetch8())
		return 2
	case 0xEE:
		c.aluApply(5, c.fetch8())
		return 2
	case 0xF6:
		c.aluApply(6, c.fetch8())
		return 2
	case 0xFE:
		c.aluApply(7, c.fetch8())
		return 2

	// Jumps/calls/returns
	case 0xC3:
		c.PC = c.fetch16()
		return 4
	case 0xE9:
		c.PC = c.getHL()
		return 1
	case 0x18:
		off := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(off))
		return 3
	case 0x20:
		return c.jrCC(c.F&flagZ == 0)
	case 0x28:
		return c.jrCC(c.F&flagZ != 0)
	case 0x30:
		return c.jrCC(c.F&flagC == 0)
	case 0x38:
		return c.jrCC(c.F&flagC != 0)

	case 0xCD:
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 6
	case 0xC9:
		c.PC = c.pop16()
		return 4
	case 0xD9:
		c.PC = c.pop16()
		c.IME = true
		return 4

	case 0xC7:
		c.push16(c.PC)
		c.PC = 0x00
		return 4
	case 0xCF:
		c.push16(c.PC)
		c.PC = 0x08
		return 4
	case 0xD7:
		c.push16(c.PC)
		c.PC = 0x10
		return 4
	case 0xDF:
		c.push16(c.PC)
		c.PC = 0x18
		return 4
	case 0xE7:
		c.push16(c.PC)
		c.PC = 0x20
		return 4
	case 0xEF:
		c.push16(c.PC)
		c.PC = 0x28
		return 4
	case 0xF7:
		c.push16(c.PC)
		c.PC = 0x30
		return 4
	case 0xFF:
		c.push16(c.PC)
		c.PC = 0x38
		return 4

	case 0xC4:
		return c.callCC(c.F&flagZ == 0)
	case 0xCC:
		return c.callCC(c.F&flagZ != 0)
	case 0xD4:
		return c.callCC(c.F&flagC == 0)
	case 0xDC:
		return c.callCC(c.F&flagC != 0)

	case 0xC0:
		return c.retCC(c.F&flagZ == 0)
	case 0xC8:
		return c.retCC(c.F&flagZ != 0)
	case 0xD0:
		return c.retCC(c.F&flagC == 0)
	case 0xD8:
		return c.retCC(c.F&flagC != 0)

	case 0xC2:
		return c.jpCC(c.F&flagZ == 0)
	case 0xCA:
		return c.jpCC(c.F&flagZ != 0)
	case 0xD2:
		return c.jpCC(c.F&flagC == 0)
	case 0xDA:
		return c.jpCC(c.F&flagC != 0)

	// 16-bit INC/DEC, ADD HL,rr
	case 0x03:
		c.setBC(c.getBC() + 1)
		return 2
	case 0x13:
		c.setDE(c.getDE() + 1)
		return 2
	case 0x23:
		c.setHL(c.getHL() + 1)
		return 2
	case 0x33:
		c.SP++
		return 2
	case 0x0B:
		c.setBC(c.getBC() - 1)
		return 2
	case 0x1B:
		c.setDE(c.getDE() - 1)
		return 2
	case 0x2B:
		c.setHL(c.getHL() - 1)
		return 2
	case 0x3B:
		c.SP--
		return 2
	case 0x09:
		c.addHL(c.getBC())
		return 2
	case 0x19:
		c.addHL(c.getDE())
		return 2
	case 0x29:
		c.addHL(c.getHL())
		return 2
	case 0x39:
		c.addHL(c.SP)
		return 2

	// Stack/SP
	case 0xF8: // LD HL,SP+r8
		off := int8(c.fetch8())
		low := byte(c.SP)
		_, _, _, h, cy := c.add8(low, byte(off))
		c.setHL(uint16(int32(c.SP) + int32(off)))
		c.setZNHC(false, false, h, cy)
		return 3
	case 0xF9:
		c.SP = c.getHL()
		return 2
	case 0xE8: // ADD SP,r8
		off := int8(c.fetch8())
		low := byte(c.SP)
		_, _, _, h, cy := c.add8(low, byte(off))
		c.SP = uint16(int32(c.SP) + int32(off))
		c.setZNHC(false, false, h, cy)
		return 4

	case 0xF3: // DI
		c.IME = false
		c.eiDelay = false
		return 1
	case 0xFB: // EI
		c.eiDelay = true
		return 1

	case 0xF5:
		c.push16(c.getAF())
		return 4
	case 0xC5:
		c.push16(c.getBC())
		return 4
	case 0xD5:
		c.push16(c.getDE())
		return 4
	case 0xE5:
		c.push16(c.getHL())
		return 4
	case 0xF1:
		c.setAF(c.pop16())
		return 3
	case 0xC1:
		c.setBC(c.pop16())
		return 3
	case 0xD1:
		c.setDE(c.pop16())
		return 3
	case 0xE1:
		c.setHL(c.pop16())
		return 3

	case 0x76: // HALT
		pending := c.ie & c.ifReg & 0x1F
		switch {
		case c.IME:
			c.halted = true
		case pending == 0:
			c.halted = true
		default:
			c.haltBug = true
		}
		return 1
	}

	// Unreachable: isUndefined filters every opcode with no case above
	// before exec is called.
	return 1
}

func (c *CPU) inc8(v byte) byte {
	old := v
	v++
	c.setZNHC(v == 0, false, old&0x0F == 0x0F, c.F&flagC != 0)
	return v
}

func (c *CPU) dec8(v byte) byte {
	old := v
	v--
	c.setZNHC(v == 0, true, old&0x0F == 0x00, c.F&flagC != 0)
	return v
}

func (c *CPU) addHL(operand uint16) {
	hl := c.getHL()
	r := uint32(hl) + uint32(operand)
	h := (hl&0x0FFF)+(operand&0x0FFF) > 0x0FFF
	c.setHL(uint16(r))
	c.setZNHC(c.F&flagZ != 0, false, h, r > 0xFFFF)
}

func (c *CPU) jrCC(taken bool) int {
	off := int8(c.fetch8())
	if taken {
		c.PC = uint16(int32(c.PC) + int32(off))
		return 3
	}
	return 2
}

func (c *CPU) jpCC(taken bool) int {
	addr := c.fetch16()
	if taken {
		c.PC = addr
		return 4
	}
	return 3
}

func (c *CPU) callCC(taken bool) int {
	addr := c.fetch16()
	if taken {
		c.push16(c.PC)
		c.PC = addr
		return 6
	}
	return 3
}

func (c *CPU) retCC(taken bool) int {
	if taken {
		c.PC = c.pop16()
		return 5
	}
	return 2
}
