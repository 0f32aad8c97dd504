package video

import "image/color"

const (
	Width  = 64
	Height = 32
)

// Framebuffer is the 64x32 monochrome display. Each cell holds 0 or 1.
type Framebuffer struct {
	pix   [Height][Width]byte
	dirty bool
}

// Clear turns every pixel off and marks the buffer dirty.
func (f *Framebuffer) Clear() {
	f.pix = [Height][Width]byte{}
	f.dirty = true
}

// DrawSprite XORs sprite rows onto the buffer at (x, y), MSB first. Both the
// origin and every pixel wrap around the screen edges. It reports whether any
// pixel went from 1 to 0.
func (f *Framebuffer) DrawSprite(x, y byte, rows []byte) (collision bool) {
	for row, bits := range rows {
		py := (int(y) + row) % Height
		for col := 0; col < 8; col++ {
			bit := (bits >> (7 - col)) & 1
			if bit == 0 {
				continue
			}
			px := (int(x) + col) % Width
			if f.pix[py][px] == 1 {
				collision = true
			}
			f.pix[py][px] ^= 1
		}
	}
	f.dirty = true
	return collision
}

// Pixel returns the cell at (x, y); coordinates outside the screen read as 0.
func (f *Framebuffer) Pixel(x, y int) byte {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	return f.pix[y][x]
}

// Snapshot returns a copy of the pixel grid.
func (f *Framebuffer) Snapshot() [Height][Width]byte { return f.pix }

// Restore replaces the pixel grid and marks the buffer dirty.
func (f *Framebuffer) Restore(pix [Height][Width]byte) {
	f.pix = pix
	f.dirty = true
}

func (f *Framebuffer) Dirty() bool { return f.dirty }
func (f *Framebuffer) ClearDirty() { f.dirty = false }

// RGBA expands the grid to 64*32*4 bytes using on/off colors, in the layout
// expected by ebiten.Image.WritePixels and image.RGBA.
func (f *Framebuffer) RGBA(dst []byte, on, off color.Color) []byte {
	if len(dst) != Width*Height*4 {
		dst = make([]byte, Width*Height*4)
	}
	onC := color.RGBAModel.Convert(on).(color.RGBA)
	offC := color.RGBAModel.Convert(off).(color.RGBA)
	i := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := offC
			if f.pix[y][x] != 0 {
				c = onC
			}
			dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return dst
}
