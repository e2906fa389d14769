package main

// tickMsg is a frame boundary the scheduler asked for.
type tickMsg struct{}

// flushMsg is the deferred output flush the buffer asked for.
type flushMsg struct{}

// fileReadMsg carries the result of reading a program image off disk.
type fileReadMsg struct {
	path string
	data []byte
	err  error
}

// frameHost records frame-boundary requests made during a console call so
// Update can turn them into commands once the call returns. Everything
// runs on the tea event loop, so plain fields are enough.
type frameHost struct {
	tick  bool
	flush bool
}

func (h *frameHost) RequestTick()  { h.tick = true }
func (h *frameHost) RequestFlush() { h.flush = true }

// screen accumulates the text the console writes, standing in for the
// terminal widget the viewport renders from.
type screen struct {
	text   []byte
	halted bool
}

func (s *screen) Write(text string) { s.text = append(s.text, text...) }
func (s *screen) Clear()            { s.text = s.text[:0] }
func (s *screen) SetHalted(h bool)  { s.halted = h }
