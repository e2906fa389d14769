package console

import "log/slog"

// Loader swaps a new program image into the machine without leaving the
// scheduler, queues, or display inconsistent.
type Loader struct {
	machine Machine
	surface Surface
	host    Host
	in      *InputQueue
	out     *OutputBuffer
	logger  *slog.Logger
}

func newLoader(machine Machine, surface Surface, host Host, in *InputQueue, out *OutputBuffer, logger *slog.Logger) *Loader {
	return &Loader{machine: machine, surface: surface, host: host, in: in, out: out, logger: logger}
}

// Load halts the machine first, so any burst already scheduled for the
// next frame observes the halt and becomes a no-op, then asks the machine
// to install the image. On success the visible history and both queues are
// cleared and a frame is requested for the fresh program. On rejection the
// previous program's state is preserved (the machine guarantees a failed
// install mutates nothing) and a frame is still requested so the halted
// indicator catches up. Rejection is reported to the caller and the log,
// nowhere else.
func (l *Loader) Load(image []byte) bool {
	l.machine.Halt()
	if !l.machine.Install(image) {
		l.logger.Warn("program image rejected", "size", len(image))
		l.host.RequestTick()
		return false
	}
	l.surface.Clear()
	l.in.Clear()
	l.out.Clear()
	l.logger.Info("program image installed", "size", len(image))
	l.host.RequestTick()
	return true
}
