// Package console bridges a stepping simulator with a frame-driven host.
// It schedules bounded execution bursts against the host's rendering
// cadence, buffers keyboard input for the simulator, batches simulator
// output into one surface write per frame, and swaps program images in
// without corrupting in-flight state.
//
// Everything here assumes a single serial event queue: Tick, Key, Load and
// Flush must all be invoked from the same host loop. No call blocks; the
// only deferral is asking the Host to schedule work on a later frame.
package console

import "log/slog"

// Machine is the simulator the console drives. RunBurst reports whether
// another burst can make progress without new external input. Install must
// leave prior program state untouched when it rejects an image.
type Machine interface {
	Halted() bool
	Halt()
	RunBurst() (needsMore bool)
	Install(image []byte) bool
}

// Surface is the rendering target. Write appends display text, Clear
// erases the visible history, and SetHalted toggles the halted indicator.
type Surface interface {
	Write(text string)
	Clear()
	SetHalted(halted bool)
}

// Host defers work to the next frame boundary. Requests may coalesce:
// several RequestTick calls before the frame runs yield a single tick.
type Host interface {
	RequestTick()
	RequestFlush()
}

type Config struct {
	Machine Machine
	Surface Surface
	Host    Host
	Logger  *slog.Logger
}

// Console owns the input queue, output buffer, scheduler and loader for
// one simulator session. Build it once per machine; an image load resets
// the session in place rather than recreating it.
type Console struct {
	machine Machine
	host    Host
	in      *InputQueue
	out     *OutputBuffer
	sched   *Scheduler
	loader  *Loader
}

func New(cfg Config) *Console {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	in := NewInputQueue()
	out := NewOutputBuffer(cfg.Surface, cfg.Host)
	return &Console{
		machine: cfg.Machine,
		host:    cfg.Host,
		in:      in,
		out:     out,
		sched:   newScheduler(cfg.Machine, cfg.Surface, cfg.Host),
		loader:  newLoader(cfg.Machine, cfg.Surface, cfg.Host, in, out, logger),
	}
}

// Tick runs one scheduling step. The host calls it on each frame the
// scheduler asked for.
func (c *Console) Tick() {
	c.sched.Tick()
}

// Key records one input byte. While the machine is halted the byte is
// still queued but no frame is requested; nothing visible happens until a
// program resumes.
func (c *Console) Key(b byte) {
	c.in.Push(b)
	if !c.machine.Halted() {
		c.host.RequestTick()
	}
}

// Load installs a new program image, reporting whether it was accepted.
func (c *Console) Load(image []byte) bool {
	return c.loader.Load(image)
}

// Flush writes buffered output to the surface. The host calls it when the
// flush it was asked to schedule comes due.
func (c *Console) Flush() {
	c.out.Flush()
}

func (c *Console) State() State {
	return c.sched.State()
}

// Input exposes the key queue so it can be wired to the machine's
// keyboard device.
func (c *Console) Input() *InputQueue {
	return c.in
}

// Output exposes the output buffer so its Push can be wired to the
// machine's display hook.
func (c *Console) Output() *OutputBuffer {
	return c.out
}
