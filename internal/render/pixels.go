// Package render converts binary cell buffers into pixels.
package render

import (
	"image"
	"image/color"
)

// FillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
// buf must hold at least 4*len(cells) bytes.
func FillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// Image returns a w*h image of the cells scaled up by scale pixels per cell.
func Image(cells []uint8, w, h, scale int, on, off color.Color) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	row := make([]byte, 4*w)
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h; y++ {
		FillBinaryRGBA(row, cells[y*w:(y+1)*w], on, off)
		for sy := 0; sy < scale; sy++ {
			dst := img.Pix[(y*scale+sy)*img.Stride:]
			for x := 0; x < w; x++ {
				px := row[x*4 : x*4+4]
				for sx := 0; sx < scale; sx++ {
					copy(dst[(x*scale+sx)*4:], px)
				}
			}
		}
	}
	return img
}
