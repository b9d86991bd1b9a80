package fkpoints

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ShapeType selects the marker shape used to render keypoints.
type ShapeType string

const (
	Circle ShapeType = "circle"
	Cross  ShapeType = "cross"
)

// DrawKeypoints renders the keypoints over a copy of the image using the
// provided marker shape, radius and color. Markers falling partially or
// fully outside the image bounds are clipped.
func DrawKeypoints(img *image.NRGBA, points []Point, shape ShapeType, radius int, col color.NRGBA) *image.NRGBA {
	dst := imaging.Clone(img)

	for _, p := range points {
		x := int(math.Round(p.X))
		y := int(math.Round(p.Y))

		switch shape {
		case Cross:
			drawCross(dst, x, y, radius, col)
		default:
			drawCircle(dst, x, y, radius, col)
		}
	}
	return dst
}

// drawCircle draws a filled circle at the keypoint (x, y) coordinate with the provided radius.
func drawCircle(dst *image.NRGBA, x, y, radius int, col color.NRGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setPixel(dst, x+dx, y+dy, col)
			}
		}
	}
}

// drawCross draws a cross at the keypoint (x, y) coordinate with arms of the provided radius.
func drawCross(dst *image.NRGBA, x, y, radius int, col color.NRGBA) {
	for d := -radius; d <= radius; d++ {
		setPixel(dst, x+d, y, col)
		setPixel(dst, x, y+d, col)
	}
}

func setPixel(dst *image.NRGBA, x, y int, col color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(dst.Bounds()) {
		return
	}
	dst.SetNRGBA(x, y, col)
}
