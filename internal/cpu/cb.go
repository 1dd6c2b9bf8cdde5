package cpu

// execCB decodes and runs a single CB-prefixed opcode: rotate/shift/
// swap (group 0), BIT (group 1), RES (group 2), SET (group 3), each
// operating on one of the eight reg8 operand slots.
func (c *CPU) execCB(op byte) int {
	reg := op & 7
	group := (op >> 6) & 3
	y := (op >> 3) & 7

	cycles := 2
	if reg == 6 {
		cycles = 4
	}

	switch group {
	case 0:
		v := c.reg8(reg)
		var cv byte
		switch y {
		case 0: // RLC
			cv = (v >> 7) & 1
			v = (v << 1) | cv
			c.setZNHC(v == 0, false, false, cv == 1)
		case 1: // RRC
			cv = v & 1
			v = (v >> 1) | (cv << 7)
			c.setZNHC(v == 0, false, false, cv == 1)
		case 2: // RL
			cv = (v >> 7) & 1
			ci := byte(0)
			if c.F&flagC != 0 {
				ci = 1
			}
			v = (v << 1) | ci
			c.setZNHC(v == 0, false, false, cv == 1)
		case 3: // RR
			cv = v & 1
			ci := byte(0)
			if c.F&flagC != 0 {
				ci = 1
			}
			v = (v >> 1) | (ci << 7)
			c.setZNHC(v == 0, false, false, cv == 1)
		case 4: // SLA
			cv = (v >> 7) & 1
			v <<= 1
			c.setZNHC(v == 0, false, false, cv == 1)
		case 5: // SRA
			cv = v & 1
			v = (v >> 1) | (v & 0x80)
			c.setZNHC(v == 0, false, false, cv == 1)
		case 6: // SWAP
			v = (v << 4) | (v >> 4)
			c.setZNHC(v == 0, false, false, false)
		case 7: // SRL
			cv = v & 1
			v >>= 1
			c.setZNHC(v == 0, false, false, cv == 1)
		}
		c.setReg8(reg, v)
	case 1: // BIT y,r: Z set if bit clear, N=0, H=1, C unchanged.
		v := c.reg8(reg)
		bit := (v >> y) & 1
		c.F = (c.F & flagC) | flagH
		if bit == 0 {
			c.F |= flagZ
		}
		if reg == 6 {
			cycles = 3
		}
	case 2: // RES y,r
		c.setReg8(reg, c.reg8(reg)&^(1<<y))
	case 3: // SET y,r
		c.setReg8(reg, c.reg8(reg)|(1<<y))
	}
	return cycles
}
