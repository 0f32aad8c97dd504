package rom

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/bus"
	"github.com/pkg/errors"
)

// MaxSize is the largest program that fits between 0x200 and the end of memory.
const MaxSize = bus.MemSize - bus.ProgramStart

var (
	ErrEmpty    = errors.New("rom is empty")
	ErrTooLarge = errors.New("rom too large")
)

// Info describes a loaded ROM for logs and window titles.
type Info struct {
	Path  string
	Title string // file name without extension
	Size  int
	CRC32 uint32
}

func (i Info) String() string {
	return fmt.Sprintf("%q size=%dB crc32=%08x", i.Title, i.Size, i.CRC32)
}

// Parse checks that data is a loadable program. There is no header; any
// non-empty byte string up to MaxSize is accepted.
func Parse(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > MaxSize {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes, max %d", len(data), MaxSize)
	}
	return &Info{Size: len(data), CRC32: crc32.ChecksumIEEE(data)}, nil
}

// Load reads and validates the ROM at path.
func Load(path string) ([]byte, *Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read rom %s", path)
	}
	info, err := Parse(data)
	if err != nil {
		return nil, nil, errors.Wrap(err, path)
	}
	info.Path = path
	base := filepath.Base(path)
	info.Title = strings.TrimSuffix(base, filepath.Ext(base))
	return data, info, nil
}
