package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// The drawing functions below take coordinates in the following system:
// - The top-left pixel of screen has coordinates (0, 0).
// - The bottom-right pixel of screen has coordinates
// (screenWidth - 1, screenHeight - 1).
// This holds for sub-images as well, which Ebitengine doesn't do on its own.

func origin(screen *ebiten.Image) (float32, float32) {
	minPt := screen.Bounds().Min
	return float32(minPt.X), float32(minPt.Y)
}

func DrawRect(screen *ebiten.Image, x, y, width, height float32,
	clr color.Color) {
	ox, oy := origin(screen)
	vector.DrawFilledRect(screen, ox+x, oy+y, width, height, clr, false)
}

func StrokeRect(screen *ebiten.Image, x, y, width, height float32,
	strokeWidth float32, clr color.Color) {
	ox, oy := origin(screen)
	vector.StrokeRect(screen, ox+x, oy+y, width, height, strokeWidth, clr,
		false)
}

func DrawCircle(screen *ebiten.Image, cx, cy, r float32, clr color.Color) {
	ox, oy := origin(screen)
	vector.DrawFilledCircle(screen, ox+cx, oy+cy, r, clr, true)
}

func StrokeCircle(screen *ebiten.Image, cx, cy, r float32, strokeWidth float32,
	clr color.Color) {
	ox, oy := origin(screen)
	vector.StrokeCircle(screen, ox+cx, oy+cy, r, strokeWidth, clr, true)
}

func DrawLine(screen *ebiten.Image, x0, y0, x1, y1 float32, strokeWidth float32,
	clr color.Color) {
	ox, oy := origin(screen)
	vector.StrokeLine(screen, ox+x0, oy+y0, ox+x1, oy+y1, strokeWidth, clr,
		true)
}

// SubImage returns a sub-region of screen. r is in the coordinate system
// described above.
func SubImage(screen *ebiten.Image, r image.Rectangle) *ebiten.Image {
	// With img2 = img1.SubImage(pt1, pt2) I expect img2.At(0, 0) to be the
	// same pixel as img1.At(pt1). Ebitengine still wants img2.At(pt1).
	// Translating here lets the rest of the code think in local coordinates.
	minPt := screen.Bounds().Min
	r.Min = r.Min.Add(minPt)
	r.Max = r.Max.Add(minPt)
	return screen.SubImage(r).(*ebiten.Image)
}

// Fade returns clr with its alpha multiplied by alpha, which must be in
// [0, 1].
func Fade(clr color.NRGBA, alpha float64) color.NRGBA {
	clr.A = uint8(float64(clr.A) * alpha)
	return clr
}

func DrawText(screen *ebiten.Image, face font.Face, message string,
	centerX bool, centerY bool, color color.Color) {
	// text.Draw at (x, y) puts most of the text above y and a little bit
	// under it, y is the baseline. To have all the pixels of the text above
	// y, draw at (x, y - text.BoundString().Max.Y).
	textSize := text.BoundString(face, message)
	var offsetX int
	if centerX {
		offsetX = (screen.Bounds().Dx() - textSize.Dx()) / 2
	} else {
		offsetX = 0
	}

	var offsetY int
	if centerY {
		offsetY = (screen.Bounds().Dy() - textSize.Dy()) / 2
	} else {
		offsetY = 0
	}

	textX := screen.Bounds().Min.X + offsetX
	textY := screen.Bounds().Max.Y - offsetY - textSize.Max.Y
	text.Draw(screen, message, face, textX, textY, color)
}
