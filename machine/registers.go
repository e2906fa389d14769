package machine

// Condition flags. Exactly one is set at any time.
const (
	flagPositive uint16 = 1 << 0
	flagZero     uint16 = 1 << 1
	flagNegative uint16 = 1 << 2
)

// PCStart is the default load address for user programs.
const PCStart uint16 = 0x3000

type registers struct {
	r    [8]uint16
	pc   uint16
	cond uint16
}

func newRegisters() registers {
	return registers{pc: PCStart, cond: flagZero}
}

func (rg *registers) get(i uint16) uint16 {
	return rg.r[i&0x7]
}

func (rg *registers) set(i, value uint16) {
	rg.r[i&0x7] = value
	switch {
	case value == 0:
		rg.cond = flagZero
	case value&0x8000 != 0:
		rg.cond = flagNegative
	default:
		rg.cond = flagPositive
	}
}

func signExtend(value uint16, bits uint) uint16 {
	if (value>>(bits-1))&1 == 1 {
		value |= 0xFFFF << bits
	}
	return value
}
