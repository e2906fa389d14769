package lc3term

import (
	"fmt"
	"log/slog"

	"github.com/gosuda/lc3term/console"
	"github.com/gosuda/lc3term/machine"
)

// BootConfig describes one simulator session.
type BootConfig struct {
	// Image is the first program to install; nil selects the builtin
	// hello-world image.
	Image      []byte
	StepBudget int
	Surface    console.Surface
	Host       console.Host
	Logger     *slog.Logger
}

// Boot builds a machine and console wired together: the console's input
// queue becomes the machine's keyboard, the console's output buffer its
// display. The initial image is installed before the pair is returned, so
// the first tick runs it from its entry state.
func Boot(cfg BootConfig) (*machine.VM, *console.Console, error) {
	vm := machine.New(machine.Config{StepBudget: cfg.StepBudget})
	con := console.New(console.Config{
		Machine: vm,
		Surface: cfg.Surface,
		Host:    cfg.Host,
		Logger:  cfg.Logger,
	})
	vm.SetInputSource(con.Input())
	vm.SetOutputHook(con.Output().Push)

	image := cfg.Image
	if image == nil {
		image = machine.DefaultImage()
	}
	if !vm.Install(image) {
		return nil, nil, fmt.Errorf("initial image rejected (%d bytes)", len(image))
	}
	return vm, con, nil
}
