package machine

import "encoding/binary"

// Install decodes a big-endian program image (origin word, then payload
// words) and replaces program memory and registers with it. It rejects an
// image shorter than one word, with a dangling byte, or too large for the
// space above its origin. On rejection the previous program's memory,
// registers, and halted flag are left untouched. On success the machine is
// un-halted with the PC at the image origin.
func (vm *VM) Install(image []byte) bool {
	if len(image) < 2 || len(image)%2 != 0 {
		return false
	}
	origin := binary.BigEndian.Uint16(image[:2])
	payload := image[2:]
	if len(payload)/2 > MemorySize-int(origin) {
		return false
	}

	var mem memory
	for i := 0; i < len(payload); i += 2 {
		mem.write(origin+uint16(i/2), binary.BigEndian.Uint16(payload[i:i+2]))
	}
	mem.keys = vm.mem.keys

	vm.mem = mem
	vm.reg = newRegisters()
	vm.reg.pc = origin
	vm.halted = false
	return true
}

// DefaultImage returns the program the machine boots with: it prints
// "Hello, World!" and halts.
func DefaultImage() []byte {
	words := []uint16{
		PCStart,
		0xE002, // LEA R0, msg
		0xF022, // PUTS
		0xF025, // HALT
	}
	for _, r := range "Hello, World!\n" {
		words = append(words, uint16(r))
	}
	words = append(words, 0)

	image := make([]byte, 0, len(words)*2)
	for _, w := range words {
		image = binary.BigEndian.AppendUint16(image, w)
	}
	return image
}
