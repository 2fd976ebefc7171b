// Package memory implements the simulated machine's physical memory: a
// flat, word-addressed array with bounds-checked access. It is one of
// the external hardware collaborators the kernel drives but does not
// redesign.
package memory

import "errors"

// WordSize is the number of bytes in one machine word.
const WordSize = 4

// ErrOutOfRange is returned by Read/Write when the address lies outside
// the configured memory size.
var ErrOutOfRange = errors.New("memory: address out of range")

// Memory is a physical word array shared by the CPU, the MMU and the
// loader.
type Memory struct {
	words []uint32
}

// New allocates a physical memory of the given size in words.
func New(words int) *Memory {
	return &Memory{words: make([]uint32, words)}
}

// Size returns the memory size in words.
func (m *Memory) Size() int {
	return len(m.words)
}

// Read returns the word at the given word-aligned address.
func (m *Memory) Read(addr int) (uint32, error) {
	if addr < 0 || addr >= len(m.words) {
		return 0, ErrOutOfRange
	}
	return m.words[addr], nil
}

// Write stores a word at the given word-aligned address.
func (m *Memory) Write(addr int, value uint32) error {
	if addr < 0 || addr >= len(m.words) {
		return ErrOutOfRange
	}
	m.words[addr] = value
	return nil
}

// Clear zeroes the whole array. Used by bootstrap/reset.
func (m *Memory) Clear() {
	for i := range m.words {
		m.words[i] = 0
	}
}
