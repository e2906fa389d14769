package machine

import (
	"encoding/binary"
	"testing"
)

type keyQueue struct {
	buf []byte
}

func (q *keyQueue) HasData() bool {
	return len(q.buf) > 0
}

func (q *keyQueue) Pop() byte {
	if len(q.buf) == 0 {
		return 0
	}
	b := q.buf[0]
	q.buf = q.buf[1:]
	return b
}

func image(origin uint16, words ...uint16) []byte {
	buf := make([]byte, 0, (len(words)+1)*2)
	buf = binary.BigEndian.AppendUint16(buf, origin)
	for _, w := range words {
		buf = binary.BigEndian.AppendUint16(buf, w)
	}
	return buf
}

func collectOutput(vm *VM) *[]byte {
	out := &[]byte{}
	vm.SetOutputHook(func(b byte) {
		*out = append(*out, b)
	})
	return out
}

func runToStop(t *testing.T, vm *VM) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if !vm.RunBurst() {
			return
		}
	}
	t.Fatalf("program did not stop within 100 bursts")
}

func TestDefaultImageHelloWorld(t *testing.T) {
	vm := New(Config{})
	out := collectOutput(vm)
	if !vm.Install(DefaultImage()) {
		t.Fatalf("default image rejected")
	}

	runToStop(t, vm)

	if !vm.Halted() {
		t.Fatalf("machine not halted after hello world")
	}
	if got := string(*out); got != "Hello, World!\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestInstallRejectsMalformed(t *testing.T) {
	vm := New(Config{})
	cases := map[string][]byte{
		"empty":       {},
		"short":       {0x30},
		"odd payload": {0x30, 0x00, 0xF0},
		"oversize":    image(0xFFFF, 0xF025, 0xF025),
	}
	for name, img := range cases {
		if vm.Install(img) {
			t.Fatalf("%s image accepted", name)
		}
	}
}

func TestFailedInstallPreservesProgram(t *testing.T) {
	vm := New(Config{})
	out := collectOutput(vm)
	if !vm.Install(DefaultImage()) {
		t.Fatalf("default image rejected")
	}
	if vm.Install([]byte{0x30}) {
		t.Fatalf("truncated image accepted")
	}
	if vm.Halted() {
		t.Fatalf("failed install halted the machine")
	}

	runToStop(t, vm)
	if got := string(*out); got != "Hello, World!\n" {
		t.Fatalf("previous program damaged by failed install: %q", got)
	}
}

func TestGetcBlocksUntilKeyArrives(t *testing.T) {
	vm := New(Config{})
	out := collectOutput(vm)
	keys := &keyQueue{}
	vm.SetInputSource(keys)

	// GETC; OUT; HALT
	if !vm.Install(image(PCStart, 0xF020, 0xF021, 0xF025)) {
		t.Fatalf("image rejected")
	}

	if vm.RunBurst() {
		t.Fatalf("burst wants rescheduling while blocked on input")
	}
	if vm.Halted() {
		t.Fatalf("blocked machine reported halted")
	}
	if len(*out) != 0 {
		t.Fatalf("output before input: %q", string(*out))
	}

	keys.buf = append(keys.buf, 'A')
	runToStop(t, vm)
	if !vm.Halted() {
		t.Fatalf("machine not halted")
	}
	if got := string(*out); got != "A" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestKeyboardStatusRegisterPolling(t *testing.T) {
	vm := New(Config{})
	out := collectOutput(vm)
	keys := &keyQueue{}
	vm.SetInputSource(keys)

	// Poll KBSR until a key is ready, echo it, halt.
	//   LDI R1, kbsr
	//   BRzp -2
	//   LDI R0, kbdr
	//   OUT
	//   HALT
	// kbsr: .FILL xFE00
	// kbdr: .FILL xFE02
	if !vm.Install(image(PCStart,
		0xA204,
		0x07FE,
		0xA003,
		0xF021,
		0xF025,
		0xFE00,
		0xFE02,
	)) {
		t.Fatalf("image rejected")
	}

	// With nothing queued, every status poll yields so input can arrive.
	for i := 0; i < 5; i++ {
		if !vm.RunBurst() {
			t.Fatalf("polling program stopped scheduling")
		}
	}
	if len(*out) != 0 {
		t.Fatalf("output before input: %q", string(*out))
	}

	keys.buf = append(keys.buf, 'Z')
	runToStop(t, vm)
	if got := string(*out); got != "Z" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestConditionFlagsDriveBranches(t *testing.T) {
	vm := New(Config{})
	out := collectOutput(vm)

	// Clear R0, branch over the early halt on zero, print "ok".
	//   AND R0, R0, #0
	//   BRz +1
	//   HALT
	//   LEA R0, msg
	//   PUTS
	//   HALT
	if !vm.Install(image(PCStart,
		0x5020,
		0x0401,
		0xF025,
		0xE002,
		0xF022,
		0xF025,
		'o', 'k', 0,
	)) {
		t.Fatalf("image rejected")
	}

	runToStop(t, vm)
	if got := string(*out); got != "ok" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestStepBudgetYieldsWithoutHalting(t *testing.T) {
	vm := New(Config{StepBudget: 16})

	// BRnzp -1: spin forever.
	if !vm.Install(image(PCStart, 0x0FFF)) {
		t.Fatalf("image rejected")
	}

	for i := 0; i < 3; i++ {
		if !vm.RunBurst() {
			t.Fatalf("budget exhaustion stopped scheduling")
		}
	}
	if vm.Halted() {
		t.Fatalf("spinning program reported halted")
	}
}

func TestInvalidInstructionHalts(t *testing.T) {
	for name, word := range map[string]uint16{
		"RTI":          0x8000,
		"reserved":     0xD000,
		"unknown trap": 0xF0FF,
	} {
		vm := New(Config{})
		if !vm.Install(image(PCStart, word)) {
			t.Fatalf("%s: image rejected", name)
		}
		if vm.RunBurst() {
			t.Fatalf("%s: invalid instruction wants rescheduling", name)
		}
		if !vm.Halted() {
			t.Fatalf("%s: invalid instruction did not halt", name)
		}
	}
}

func TestHaltedBurstIsNoOp(t *testing.T) {
	vm := New(Config{})
	out := collectOutput(vm)
	if !vm.Install(DefaultImage()) {
		t.Fatalf("default image rejected")
	}
	vm.Halt()
	if vm.RunBurst() {
		t.Fatalf("halted burst wants rescheduling")
	}
	if len(*out) != 0 {
		t.Fatalf("halted burst produced output: %q", string(*out))
	}
}
