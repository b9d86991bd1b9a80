package fkpoints

import (
	"errors"
	"fmt"
	"image"
	"math/rand"

	"github.com/disintegration/imaging"
)

// ErrCropBounds is returned when the requested crop size exceeds the image size.
var ErrCropBounds = errors.New("crop size exceeds image bounds")

// RandomCrop slices a randomly positioned window out of the image and
// translates the keypoints into the window coordinate frame. Keypoints of a
// face fully inside the window stay within [0, width) x [0, height).
type RandomCrop struct {
	width  int
	height int
	rng    *rand.Rand
}

// NewRandomCrop crops a square window with the given side length.
func NewRandomCrop(size int) *RandomCrop {
	return &RandomCrop{width: size, height: size}
}

// NewRandomCropXY crops a window of the exact width and height.
func NewRandomCropXY(width, height int) *RandomCrop {
	return &RandomCrop{width: width, height: height}
}

// Seed pins the crop offsets to a deterministic sequence, for reproducible
// exports and tests.
func (c *RandomCrop) Seed(seed int64) *RandomCrop {
	c.rng = rand.New(rand.NewSource(seed))
	return c
}

// Name implements the Transform interface.
func (c *RandomCrop) Name() string { return "randomcrop" }

// Apply implements the Transform interface.
func (c *RandomCrop) Apply(s *Sample) (*Sample, error) {
	if s.Img == nil {
		return nil, ErrNotImageDomain
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, ErrInvalidSize
	}

	w, h := s.Img.Bounds().Dx(), s.Img.Bounds().Dy()
	if c.width > w || c.height > h {
		return nil, fmt.Errorf("%w: %dx%d window on a %dx%d image",
			ErrCropBounds, c.width, c.height, w, h)
	}

	x0 := c.intn(w - c.width + 1)
	y0 := c.intn(h - c.height + 1)

	return c.cropAt(s, x0, y0), nil
}

// cropAt slices the window with its top-left corner at (x0, y0).
// The offset must already be validated against the image bounds.
func (c *RandomCrop) cropAt(s *Sample, x0, y0 int) *Sample {
	img := imaging.Crop(s.Img, image.Rect(x0, y0, x0+c.width, y0+c.height))

	points := s.clonePoints()
	for i := range points {
		points[i].X -= float64(x0)
		points[i].Y -= float64(y0)
	}

	return &Sample{Img: img, Points: points}
}

func (c *RandomCrop) intn(n int) int {
	if n <= 1 {
		return 0
	}
	if c.rng != nil {
		return c.rng.Intn(n)
	}
	return rand.Intn(n)
}
