package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// iconPNG renders the tray icon: a 64x64 two-tone checker. Drawn at runtime
// rather than embedded so the binary ships no assets.
func iconPNG() []byte {
	const size = 64
	dark := color.RGBA{A: 0xff}
	blue := color.RGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff} // royal blue

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(dark), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(size/2, 0, size, size/2), image.NewUniform(blue), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, size/2, size/2, size), image.NewUniform(blue), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
