package renderer

import (
	"image"
	"image/color"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

// RenderTarget holds traced pixel colors in linear space until the render
// finishes. Workers write disjoint tiles, so no locking is needed.
type RenderTarget struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewRenderTarget creates a black target of the given dimensions.
func NewRenderTarget(width, height int) *RenderTarget {
	return &RenderTarget{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the target width in pixels.
func (t *RenderTarget) Width() int {
	return t.width
}

// Height returns the target height in pixels.
func (t *RenderTarget) Height() int {
	return t.height
}

// Set stores the color for the pixel at (x, y), with (0, 0) the top-left
// corner of the image.
func (t *RenderTarget) Set(x, y int, c core.Vec3) {
	t.pixels[y*t.width+x] = c
}

// At returns the stored color for the pixel at (x, y).
func (t *RenderTarget) At(x, y int) core.Vec3 {
	return t.pixels[y*t.width+x]
}

// ToRGBA converts the target to an 8-bit image for writing.
func (t *RenderTarget) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(t.At(x, y)))
		}
	}
	return img
}

// vec3ToColor converts a linear color to 8-bit RGBA. Channels are clamped
// to [0,1] and scaled so 1.0 maps to 255.
func vec3ToColor(v core.Vec3) color.RGBA {
	c := v.Clamp(0, 1)
	return color.RGBA{
		R: uint8(c.X * 255.9),
		G: uint8(c.Y * 255.9),
		B: uint8(c.Z * 255.9),
		A: 255,
	}
}
