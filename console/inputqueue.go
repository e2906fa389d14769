package console

// InputQueue buffers key bytes between the host's input events and the
// simulator's one-byte-at-a-time consumption. Bytes come out in press
// order; nothing is dropped except by Clear on an image load.
type InputQueue struct {
	buf []byte
}

func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Push appends one key byte. The queue is unbounded.
func (q *InputQueue) Push(b byte) {
	q.buf = append(q.buf, b)
}

// Pop removes and returns the oldest byte, or 0 when the queue is empty.
// The zero sentinel lets the simulator poll without blocking; pair it with
// HasData to tell an empty queue from a NUL byte.
func (q *InputQueue) Pop() byte {
	if len(q.buf) == 0 {
		return 0
	}
	b := q.buf[0]
	q.buf = q.buf[1:]
	return b
}

func (q *InputQueue) HasData() bool {
	return len(q.buf) > 0
}

func (q *InputQueue) Clear() {
	q.buf = nil
}
