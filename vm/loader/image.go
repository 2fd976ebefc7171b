// Package loader parses the on-disk program image format into
// (load_address, words[]). The format itself is an external contract
// the kernel references but does not own: a small fixed header followed
// by a flat array of big-endian 32-bit words.
package loader

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// Magic identifies a valid program image.
const Magic uint32 = 0x4b53494d // "KSIM"

// ErrBadMagic is returned when the file does not start with Magic.
var ErrBadMagic = errors.New("loader: not a program image")

// Image is the parsed contents of a program file: where it wants to be
// loaded in virtual memory, and the words that belong there.
type Image struct {
	LoadAddress int
	Words       []uint32
}

// ReadFile parses name into an Image.
func ReadFile(name string) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses an Image from r.
func Read(r io.Reader) (*Image, error) {
	var header [3]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, err
	}
	if header[0] != Magic {
		return nil, ErrBadMagic
	}
	img := &Image{
		LoadAddress: int(header[1]),
		Words:       make([]uint32, header[2]),
	}
	if err := binary.Read(r, binary.BigEndian, &img.Words); err != nil {
		return nil, err
	}
	return img, nil
}
