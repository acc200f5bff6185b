package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

const iconSize = 22

var (
	iconOnce         sync.Once
	iconConnected    []byte
	iconDisconnected []byte
)

// icon returns the PNG tray icon for the connection state.
func icon(connected bool) []byte {
	iconOnce.Do(func() {
		iconConnected = renderIcon(color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}, 0xff)
		iconDisconnected = renderIcon(color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}, 0x50)
	})
	if connected {
		return iconConnected
	}
	return iconDisconnected
}

// renderIcon draws a 3x3 dot grid. The middle row and bottom centre are drawn
// at litAlpha; the rest stay dim.
func renderIcon(c color.NRGBA, litAlpha uint8) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	const radius = 2.6
	centers := [3]float64{4.5, 11, 17.5}
	lit := [3][3]bool{
		{false, false, false},
		{true, true, true},
		{false, true, false},
	}
	for row, cy := range centers {
		for col, cx := range centers {
			dc := c
			dc.A = 0x50
			if lit[row][col] {
				dc.A = litAlpha
			}
			fillCircle(img, cx, cy, radius, dc)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func fillCircle(img *image.NRGBA, cx, cy, r float64, c color.NRGBA) {
	for y := int(cy - r - 1); y <= int(cy+r+1); y++ {
		for x := int(cx - r - 1); x <= int(cx+r+1); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}
