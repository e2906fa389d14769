package machine

// MemorySize is the full 16-bit address space in words.
const MemorySize = 1 << 16

// Memory-mapped keyboard registers.
const (
	addrKBSR uint16 = 0xFE00 // status: high bit set when a key is waiting
	addrKBDR uint16 = 0xFE02 // data: the waiting key byte
)

const kbReady uint16 = 1 << 15

// InputSource is the keyboard device the memory-mapped registers and the
// input traps read from. Pop removes the next byte; when nothing is
// buffered it returns 0, so HasData is the authoritative emptiness check.
type InputSource interface {
	HasData() bool
	Pop() byte
}

type memory struct {
	words [MemorySize]uint16
	keys  InputSource

	// polled is set when a read touched KBSR, so the running burst can
	// yield and let the host deliver pending input.
	polled bool
}

func (m *memory) read(addr uint16) uint16 {
	if addr == addrKBSR {
		m.polled = true
		if m.keys != nil && m.keys.HasData() {
			m.words[addrKBSR] = kbReady
			m.words[addrKBDR] = uint16(m.keys.Pop())
		} else {
			m.words[addrKBSR] = 0
		}
	}
	return m.words[addr]
}

func (m *memory) write(addr, value uint16) {
	m.words[addr] = value
}
