package render

import (
	"image"
	"image/color"
	imagedraw "image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func drawOutline(img *image.RGBA, rect image.Rectangle, width int, clr color.Color) {
	if img == nil || rect.Empty() || width <= 0 {
		return
	}
	fill := image.NewUniform(clr)
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width),
		image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y+width, rect.Min.X+width, rect.Max.Y-width),
		image.Rect(rect.Max.X-width, rect.Min.Y+width, rect.Max.X, rect.Max.Y-width),
	}
	for _, e := range edges {
		imagedraw.Draw(img, e, fill, image.Point{}, imagedraw.Over)
	}
}

func drawRoundedPanel(img *image.RGBA, rect image.Rectangle, radius int, clr color.Color) {
	if img == nil || rect.Empty() {
		return
	}
	if radius < 0 {
		radius = 0
	}
	maxRadius := rect.Dx() / 2
	if r := rect.Dy() / 2; r < maxRadius {
		maxRadius = r
	}
	if radius > maxRadius {
		radius = maxRadius
	}
	fill := image.NewUniform(clr)
	if radius == 0 {
		imagedraw.Draw(img, rect, fill, image.Point{}, imagedraw.Over)
		return
	}

	// Center column spans full height; side strips stop short of the corners.
	core := image.Rect(rect.Min.X+radius, rect.Min.Y, rect.Max.X-radius, rect.Max.Y)
	if core.Dx() > 0 {
		imagedraw.Draw(img, core, fill, image.Point{}, imagedraw.Over)
	}
	left := image.Rect(rect.Min.X, rect.Min.Y+radius, rect.Min.X+radius, rect.Max.Y-radius)
	if left.Dy() > 0 {
		imagedraw.Draw(img, left, fill, image.Point{}, imagedraw.Over)
	}
	right := image.Rect(rect.Max.X-radius, rect.Min.Y+radius, rect.Max.X, rect.Max.Y-radius)
	if right.Dy() > 0 {
		imagedraw.Draw(img, right, fill, image.Point{}, imagedraw.Over)
	}

	corners := []struct {
		center image.Point
		quad   image.Rectangle
	}{
		{image.Pt(rect.Min.X+radius, rect.Min.Y+radius), image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+radius, rect.Min.Y+radius)},
		{image.Pt(rect.Max.X-radius-1, rect.Min.Y+radius), image.Rect(rect.Max.X-radius, rect.Min.Y, rect.Max.X, rect.Min.Y+radius)},
		{image.Pt(rect.Min.X+radius, rect.Max.Y-radius-1), image.Rect(rect.Min.X, rect.Max.Y-radius, rect.Min.X+radius, rect.Max.Y)},
		{image.Pt(rect.Max.X-radius-1, rect.Max.Y-radius-1), image.Rect(rect.Max.X-radius, rect.Max.Y-radius, rect.Max.X, rect.Max.Y)},
	}
	rSquared := radius * radius
	for _, c := range corners {
		for y := c.quad.Min.Y; y < c.quad.Max.Y; y++ {
			for x := c.quad.Min.X; x < c.quad.Max.X; x++ {
				dx, dy := x-c.center.X, y-c.center.Y
				if dx*dx+dy*dy <= rSquared {
					blendPixel(img, x, y, clr)
				}
			}
		}
	}
}

// drawDisc blends a filled circle of radius r around center.
func drawDisc(img *image.RGBA, center image.Point, r int, clr color.Color) {
	if img == nil || r < 0 {
		return
	}
	box := image.Rect(center.X-r, center.Y-r, center.X+r+1, center.Y+r+1).Intersect(img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := y - center.Y
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := x - center.X
			if dx*dx+dy*dy <= r*r {
				blendPixel(img, x, y, clr)
			}
		}
	}
}

// blendPixel composites clr over the pixel at (x, y) (source-over on
// premultiplied 16-bit channels).
func blendPixel(img *image.RGBA, x, y int, clr color.Color) {
	if img == nil || !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	sr, sg, sb, sa := clr.RGBA()
	if sa == 0 {
		return
	}
	inv := 0xffff - sa
	i := img.PixOffset(x, y)
	px := img.Pix[i : i+4 : i+4]
	over := func(src uint32, dst uint8) uint8 {
		return uint8((src + uint32(dst)*0x101*inv/0xffff) >> 8)
	}
	px[0] = over(sr, px[0])
	px[1] = over(sg, px[1])
	px[2] = over(sb, px[2])
	px[3] = over(sa, px[3])
}

// fitText trims text and, when it is wider than maxWidth pixels, cuts it to
// the longest prefix that still fits with a trailing "...".
func fitText(face font.Face, text string, maxWidth int) string {
	text = strings.TrimSpace(text)
	if face == nil || maxWidth <= 0 || font.MeasureString(face, text).Round() <= maxWidth {
		return text
	}
	const dots = "..."
	room := fixed.I(maxWidth) - font.MeasureString(face, dots)
	if room < 0 {
		return ""
	}
	var used fixed.Int26_6
	for i, r := range text {
		adv, _ := face.GlyphAdvance(r)
		if used+adv > room {
			return text[:i] + dots
		}
		used += adv
	}
	return text
}

// drawLabel draws text centered on x with its baseline at y. A nil clr keeps
// the drawer's current source.
func drawLabel(d *font.Drawer, text string, clr color.Color, x, y int) {
	if d == nil || text == "" {
		return
	}
	if clr != nil {
		d.Src = image.NewUniform(clr)
	}
	half := d.MeasureString(text) / 2
	d.Dot = fixed.P(x, y).Sub(fixed.Point26_6{X: half})
	d.DrawString(text)
}

// panelBaseline vertically centers a line of face inside rect.
func panelBaseline(face font.Face, rect image.Rectangle) int {
	m := face.Metrics()
	return rect.Min.Y + (rect.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
}
