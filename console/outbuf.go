package console

// OutputBuffer batches simulator output into one surface write per frame.
// Writing to the surface per character would be far too chatty at
// simulator speed, so characters accumulate here until the scheduled
// flush runs.
type OutputBuffer struct {
	surface Surface
	host    Host
	pending []byte
}

func NewOutputBuffer(surface Surface, host Host) *OutputBuffer {
	return &OutputBuffer{surface: surface, host: host}
}

// Push queues one output byte for display. Newlines expand to CRLF for
// the surface's line convention. The byte that takes the buffer from
// empty to non-empty schedules exactly one flush; later pushes ride along
// until that flush runs.
func (b *OutputBuffer) Push(c byte) {
	wasEmpty := len(b.pending) == 0
	if c == '\n' {
		b.pending = append(b.pending, '\r', '\n')
	} else {
		b.pending = append(b.pending, c)
	}
	if wasEmpty {
		b.host.RequestFlush()
	}
}

// Flush takes everything accumulated since the flush was scheduled,
// empties the buffer, and writes it to the surface in one call. A flush
// that finds the buffer already cleared is a no-op.
func (b *OutputBuffer) Flush() {
	if len(b.pending) == 0 {
		return
	}
	text := string(b.pending)
	b.pending = b.pending[:0]
	b.surface.Write(text)
}

func (b *OutputBuffer) Clear() {
	b.pending = b.pending[:0]
}
