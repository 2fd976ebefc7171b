package loader

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func encodeImage(t *testing.T, loadAddr uint32, words []uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := [3]uint32{Magic, loadAddr, uint32(len(words))}
	if err := binary.Write(&buf, binary.BigEndian, header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := binary.Write(&buf, binary.BigEndian, words); err != nil {
		t.Fatalf("write words: %v", err)
	}
	return buf.Bytes()
}

func TestReadValidImage(t *testing.T) {
	data := encodeImage(t, 256, []uint32{1, 2, 3})
	img, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if img.LoadAddress != 256 {
		t.Fatalf("LoadAddress = %d, want 256", img.LoadAddress)
	}
	if len(img.Words) != 3 || img.Words[0] != 1 || img.Words[2] != 3 {
		t.Fatalf("Words = %v", img.Words)
	}
}

func TestReadBadMagic(t *testing.T) {
	var buf bytes.Buffer
	header := [3]uint32{0, 0, 0}
	_ = binary.Write(&buf, binary.BigEndian, header)
	if _, err := Read(&buf); err != ErrBadMagic {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestReadTruncated(t *testing.T) {
	data := encodeImage(t, 0, []uint32{1, 2})
	truncated := data[:len(data)-4]
	if _, err := Read(bytes.NewReader(truncated)); err == nil {
		t.Fatal("expected error for truncated image")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("/nonexistent/path/to/program"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
