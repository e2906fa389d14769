package console

// State is the scheduler's position in its idle/running/halted machine.
// Idle means the simulator is blocked on input and no frame is requested;
// a key press or an image load wakes it back up.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// Scheduler drives the simulator in lock-step with the host's frames:
// at most one execution burst per Tick, at most one reschedule request.
type Scheduler struct {
	machine Machine
	surface Surface
	host    Host
	state   State
}

func newScheduler(machine Machine, surface Surface, host Host) *Scheduler {
	return &Scheduler{machine: machine, surface: surface, host: host}
}

func (s *Scheduler) State() State {
	return s.state
}

// Tick observes the halted flag, runs one burst if the machine is live,
// and requests the next frame only when the burst can still make progress
// without new input. A tick that finds the machine halted touches nothing
// but the halted indicator, so stale reschedules after a halt or an image
// load are harmless.
func (s *Scheduler) Tick() {
	if s.machine.Halted() {
		s.state = StateHalted
		s.surface.SetHalted(true)
		return
	}
	s.state = StateRunning
	s.surface.SetHalted(false)

	needsMore := s.machine.RunBurst()
	if s.machine.Halted() {
		s.state = StateHalted
		s.surface.SetHalted(true)
		return
	}
	if needsMore {
		s.host.RequestTick()
		return
	}
	// Blocked awaiting input. Key or Load is responsible for waking us.
	s.state = StateIdle
}
