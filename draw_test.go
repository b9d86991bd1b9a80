package fkpoints

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testMarker = color.NRGBA{R: 0xff, G: 0x00, B: 0xcc, A: 0xff}

func TestDrawKeypoints_Circle(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))

	out := DrawKeypoints(img, []Point{{X: 10, Y: 10}}, Circle, 2, testMarker)

	assert.Equal(t, testMarker, out.NRGBAAt(10, 10))
	assert.Equal(t, testMarker, out.NRGBAAt(12, 10))
	assert.NotEqual(t, testMarker, out.NRGBAAt(0, 0))

	// The input image stays untouched.
	assert.NotEqual(t, testMarker, img.NRGBAAt(10, 10))
}

func TestDrawKeypoints_Cross(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))

	out := DrawKeypoints(img, []Point{{X: 10, Y: 10}}, Cross, 2, testMarker)

	assert.Equal(t, testMarker, out.NRGBAAt(8, 10))
	assert.Equal(t, testMarker, out.NRGBAAt(10, 12))
	assert.NotEqual(t, testMarker, out.NRGBAAt(11, 11))
}

func TestDrawKeypoints_ClipsOutOfBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	assert.NotPanics(t, func() {
		out := DrawKeypoints(img, []Point{{X: -5, Y: -5}, {X: 100, Y: 3}, {X: 7.6, Y: 7.6}}, Circle, 2, testMarker)
		assert.Equal(t, testMarker, out.NRGBAAt(7, 7))
	})
}
