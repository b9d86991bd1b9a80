package fkpoints

import (
	"errors"
	"math"

	"github.com/disintegration/imaging"

	"github.com/gabfec/CV-Facial-Keypoints/utils"
)

// ErrInvalidSize is returned for non-positive rescale or crop targets.
var ErrInvalidSize = errors.New("invalid target size")

// Rescale resamples the image to a new size and scales the keypoints by the
// same per-axis factors, keeping them aligned with the resampled pixels.
type Rescale struct {
	width  int
	height int
	fit    bool
}

// NewRescale rescales isotropically so that the longer image edge matches
// size, preserving the aspect ratio.
func NewRescale(size int) *Rescale {
	return &Rescale{width: size, height: size, fit: true}
}

// NewRescaleXY rescales to the exact width and height, not necessarily
// preserving the aspect ratio.
func NewRescaleXY(width, height int) *Rescale {
	return &Rescale{width: width, height: height}
}

// Name implements the Transform interface.
func (r *Rescale) Name() string { return "rescale" }

// Apply implements the Transform interface.
func (r *Rescale) Apply(s *Sample) (*Sample, error) {
	if s.Img == nil {
		return nil, ErrNotImageDomain
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, ErrInvalidSize
	}

	ow, oh := s.Img.Bounds().Dx(), s.Img.Bounds().Dy()
	nw, nh := r.width, r.height
	if r.fit {
		scale := float64(r.width) / float64(utils.Max(ow, oh))
		nw = int(math.Round(float64(ow) * scale))
		nh = int(math.Round(float64(oh) * scale))
	}

	img := imaging.Resize(s.Img, nw, nh, imaging.Lanczos)

	sx := float64(nw) / float64(ow)
	sy := float64(nh) / float64(oh)
	points := s.clonePoints()
	for i := range points {
		points[i].X *= sx
		points[i].Y *= sy
	}

	return &Sample{Img: img, Points: points}, nil
}
