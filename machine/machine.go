// Package machine implements an LC-3 simulator: 16-bit words, a 65536-word
// address space, eight general registers, and the standard trap set. It is
// driven in bounded bursts so a host event loop stays responsive, and reads
// keyboard input through a pluggable, non-blocking source.
package machine

// Opcodes, the high four bits of every instruction word.
const (
	opBR   uint16 = 0x0 // branch
	opADD  uint16 = 0x1 // add
	opLD   uint16 = 0x2 // load
	opST   uint16 = 0x3 // store
	opJSR  uint16 = 0x4 // jump register
	opAND  uint16 = 0x5 // bitwise and
	opLDR  uint16 = 0x6 // load register
	opSTR  uint16 = 0x7 // store register
	opRTI  uint16 = 0x8 // unused
	opNOT  uint16 = 0x9 // bitwise not
	opLDI  uint16 = 0xA // load indirect
	opSTI  uint16 = 0xB // store indirect
	opJMP  uint16 = 0xC // jump
	opRES  uint16 = 0xD // reserved
	opLEA  uint16 = 0xE // load effective address
	opTRAP uint16 = 0xF // execute trap
)

// Trap vectors.
const (
	trapGETC  uint16 = 0x20 // read one key, no echo
	trapOUT   uint16 = 0x21 // write one character
	trapPUTS  uint16 = 0x22 // write a word string
	trapIN    uint16 = 0x23 // read one key with echo
	trapPUTSP uint16 = 0x24 // write a byte-packed string
	trapHALT  uint16 = 0x25 // stop execution
)

type stepStatus int

const (
	stepContinue stepStatus = iota
	stepHalt
	stepYield // the program polled the keyboard status register
	stepBlock // an input trap found no data and must wait
)

// DefaultStepBudget bounds one burst so the simulator never starves the
// host's frame loop.
const DefaultStepBudget = 50000

type Config struct {
	// StepBudget is the instruction count per burst; zero or negative
	// selects DefaultStepBudget.
	StepBudget int
}

// VM is an LC-3 simulator instance. It is not safe for concurrent use; the
// host is expected to serialize all calls on one event loop.
type VM struct {
	mem     memory
	reg     registers
	halted  bool
	budget  int
	putChar func(byte)
}

func New(cfg Config) *VM {
	budget := cfg.StepBudget
	if budget <= 0 {
		budget = DefaultStepBudget
	}
	return &VM{reg: newRegisters(), budget: budget}
}

// SetInputSource attaches the keyboard device. The memory-mapped status
// register and the GETC/IN traps consume from it.
func (vm *VM) SetInputSource(src InputSource) {
	vm.mem.keys = src
}

// SetOutputHook attaches the display device. Every character the program
// emits through the output traps is passed to fn in order.
func (vm *VM) SetOutputHook(fn func(byte)) {
	vm.putChar = fn
}

func (vm *VM) Halted() bool {
	return vm.halted
}

// Halt stops execution until the next successful Install.
func (vm *VM) Halt() {
	vm.halted = true
}

// RunBurst steps the simulator until it halts, blocks on input, yields
// after polling the keyboard, or exhausts the step budget. It reports
// whether another burst can make progress without new external input.
// Internal faults (bad opcode, unknown trap) halt the machine; RunBurst
// itself never fails.
func (vm *VM) RunBurst() bool {
	if vm.halted {
		return false
	}
	for steps := 0; steps < vm.budget; steps++ {
		switch vm.step() {
		case stepHalt:
			vm.halted = true
			return false
		case stepBlock:
			return false
		case stepYield:
			return true
		}
	}
	return true
}

func (vm *VM) step() stepStatus {
	vm.mem.polled = false
	instr := vm.mem.read(vm.reg.pc)
	vm.reg.pc++

	switch instr >> 12 {
	case opADD:
		// |0001| DR|SR1|0|00|SR2|
		// |0001| DR|SR1|1| IMM5 |
		dr := (instr >> 9) & 0x7
		sr1 := (instr >> 6) & 0x7
		var value uint16
		if instr&(1<<5) != 0 {
			value = signExtend(instr&0x1F, 5)
		} else {
			value = vm.reg.get(instr & 0x7)
		}
		vm.reg.set(dr, vm.reg.get(sr1)+value)

	case opAND:
		dr := (instr >> 9) & 0x7
		sr1 := (instr >> 6) & 0x7
		var value uint16
		if instr&(1<<5) != 0 {
			value = signExtend(instr&0x1F, 5)
		} else {
			value = vm.reg.get(instr & 0x7)
		}
		vm.reg.set(dr, vm.reg.get(sr1)&value)

	case opNOT:
		// |1001| DR| SR|111111|
		vm.reg.set((instr>>9)&0x7, ^vm.reg.get((instr>>6)&0x7))

	case opBR:
		// |0000|N|Z|P|PCoffset9|
		if (instr>>9)&0x7&vm.reg.cond != 0 {
			vm.reg.pc += signExtend(instr&0x1FF, 9)
		}

	case opJMP:
		// |1100|000| SR|000000| (RET when SR=7)
		vm.reg.pc = vm.reg.get((instr >> 6) & 0x7)

	case opJSR:
		//  JSR: |0100|1|  PCoffset11 |
		// JSRR: |0100|0|00| SR|000000|
		vm.reg.r[7] = vm.reg.pc
		if instr&(1<<11) != 0 {
			vm.reg.pc += signExtend(instr&0x7FF, 11)
		} else {
			vm.reg.pc = vm.reg.get((instr >> 6) & 0x7)
		}

	case opLD:
		// |0010| DR|PCoffset9|
		dr := (instr >> 9) & 0x7
		vm.reg.set(dr, vm.mem.read(vm.reg.pc+signExtend(instr&0x1FF, 9)))

	case opLDI:
		// |1010| DR|PCoffset9|
		dr := (instr >> 9) & 0x7
		addr := vm.mem.read(vm.reg.pc + signExtend(instr&0x1FF, 9))
		vm.reg.set(dr, vm.mem.read(addr))

	case opLDR:
		// |0110| DR| SR|offset6|
		dr := (instr >> 9) & 0x7
		base := vm.reg.get((instr >> 6) & 0x7)
		vm.reg.set(dr, vm.mem.read(base+signExtend(instr&0x3F, 6)))

	case opLEA:
		// |1110| DR|PCoffset9|
		vm.reg.set((instr>>9)&0x7, vm.reg.pc+signExtend(instr&0x1FF, 9))

	case opST:
		// |0011| SR|PCoffset9|
		vm.mem.write(vm.reg.pc+signExtend(instr&0x1FF, 9), vm.reg.get((instr>>9)&0x7))

	case opSTI:
		// |1011| SR|PCoffset9|
		addr := vm.mem.read(vm.reg.pc + signExtend(instr&0x1FF, 9))
		vm.mem.write(addr, vm.reg.get((instr>>9)&0x7))

	case opSTR:
		// |0111| SR| DR|offset6|
		base := vm.reg.get((instr >> 6) & 0x7)
		vm.mem.write(base+signExtend(instr&0x3F, 6), vm.reg.get((instr>>9)&0x7))

	case opTRAP:
		if st := vm.trap(instr); st != stepContinue {
			return st
		}

	case opRES, opRTI:
		return stepHalt
	}

	if vm.mem.polled {
		return stepYield
	}
	return stepContinue
}

func (vm *VM) trap(instr uint16) stepStatus {
	// |1111|0000|trapvec8|
	vm.reg.r[7] = vm.reg.pc

	switch instr & 0xFF {
	case trapGETC:
		if vm.mem.keys == nil || !vm.mem.keys.HasData() {
			// Roll the PC back so the trap retries once input arrives.
			vm.reg.pc--
			return stepBlock
		}
		vm.reg.set(0, uint16(vm.mem.keys.Pop()))

	case trapOUT:
		vm.out(byte(vm.reg.r[0]))

	case trapPUTS:
		// One character per word, zero terminated.
		for addr := vm.reg.r[0]; vm.mem.read(addr) != 0; addr++ {
			vm.out(byte(vm.mem.read(addr)))
		}

	case trapIN:
		if vm.mem.keys == nil || !vm.mem.keys.HasData() {
			vm.reg.pc--
			return stepBlock
		}
		c := vm.mem.keys.Pop()
		vm.out(c)
		vm.reg.set(0, uint16(c))

	case trapPUTSP:
		// Two characters per word, low byte first, zero terminated.
		for addr := vm.reg.r[0]; vm.mem.read(addr) != 0; addr++ {
			w := vm.mem.read(addr)
			vm.out(byte(w & 0xFF))
			if hi := byte(w >> 8); hi != 0 {
				vm.out(hi)
			}
		}

	case trapHALT:
		return stepHalt

	default:
		return stepHalt
	}
	return stepContinue
}

func (vm *VM) out(c byte) {
	if vm.putChar != nil {
		vm.putChar(c)
	}
}
