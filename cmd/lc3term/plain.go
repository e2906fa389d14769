package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gosuda/lc3term/config"
	"github.com/gosuda/lc3term/console"
	"github.com/gosuda/lc3term/machine"
)

type stdoutSurface struct{}

func (stdoutSurface) Write(text string) {
	fmt.Print(strings.ReplaceAll(text, "\r\n", "\n"))
}

func (stdoutSurface) Clear() {
	fmt.Print("\033[2J\033[H")
}

func (stdoutSurface) SetHalted(bool) {}

// runPlain drives the same console core without the TUI. Stdin is read on
// its own goroutine so keystrokes keep flowing into the input queue even
// while a polling program has the scheduler ticking continuously.
func runPlain(cfg config.Config, logger *slog.Logger) error {
	host := &frameHost{}
	vm, con, err := bootSession(cfg, logger, stdoutSurface{}, host)
	if err != nil {
		return err
	}
	return servePlain(vm, con, host, readKeys(os.Stdin))
}

// readKeys feeds r through a channel one byte at a time, normalizing
// carriage returns, and closes the channel on EOF or error.
func readKeys(r io.Reader) <-chan byte {
	keys := make(chan byte)
	go func() {
		defer close(keys)
		reader := bufio.NewReader(r)
		for {
			b, err := reader.ReadByte()
			if err != nil {
				return
			}
			if b == '\r' {
				b = '\n'
			}
			keys <- b
		}
	}()
	return keys
}

// servePlain serves flush and tick requests immediately, handing any
// bytes already waiting on keys to the console between bursts. Only the
// idle state blocks on keys; a closed channel ends the session once the
// scheduler has nothing left to do.
func servePlain(vm *machine.VM, con *console.Console, host *frameHost, keys <-chan byte) error {
	open := true
	host.tick = true
	for {
	drain:
		for open {
			select {
			case b, ok := <-keys:
				if !ok {
					open = false
				} else {
					con.Key(b)
				}
			default:
				break drain
			}
		}
		if host.flush {
			host.flush = false
			con.Flush()
		}
		if host.tick {
			host.tick = false
			con.Tick()
			continue
		}
		if vm.Halted() || !open {
			return nil
		}
		// Idle awaiting input: block until the next key or EOF.
		b, ok := <-keys
		if !ok {
			return nil
		}
		con.Key(b)
	}
}
