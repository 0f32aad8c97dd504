package rom

import (
	"errors"
	"hash/crc32"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeROM(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoad_OK(t *testing.T) {
	data := []byte{0x60, 0x05, 0x70, 0x05}
	p := writeROM(t, "PONG.ch8", data)
	got, info, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("data got %x want %x", got, data)
	}
	if info.Title != "PONG" || info.Size != 4 || info.Path != p {
		t.Fatalf("info got %+v", info)
	}
	if info.CRC32 != crc32.ChecksumIEEE(data) {
		t.Fatalf("crc got %08x", info.CRC32)
	}
}

func TestLoad_MaxSize(t *testing.T) {
	p := writeROM(t, "big.ch8", make([]byte, MaxSize))
	if _, _, err := Load(p); err != nil {
		t.Fatalf("max-size rom should load: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.ch8")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file got %v want ErrNotExist", err)
	}
	p := writeROM(t, "huge.ch8", make([]byte, MaxSize+1))
	if _, _, err := Load(p); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("oversized got %v want ErrTooLarge", err)
	}
	p = writeROM(t, "empty.ch8", nil)
	if _, _, err := Load(p); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty got %v want ErrEmpty", err)
	}
}
