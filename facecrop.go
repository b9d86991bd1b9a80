package fkpoints

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"

	"github.com/gabfec/CV-Facial-Keypoints/utils"
)

// ErrNoFace is returned when the cascade classifier finds no face in the image.
var ErrNoFace = errors.New("no face detected")

// qualityThreshold is the minimum cascade score accepted as a face.
const qualityThreshold = 5.0

// FaceCrop crops a margin-padded square around the strongest face detection
// and shifts the keypoints into the cropped coordinate frame. It is meant to
// run before Rescale so that the face fills most of the training window.
type FaceCrop struct {
	classifier *pigo.Pigo
	margin     float64
}

// NewFaceCrop unpacks the binary cascade classifier from the given file and
// returns a face cropping transform. The margin is the fraction of the
// detected face size added around it on every side.
func NewFaceCrop(cascadePath string, margin float64) (*FaceCrop, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade classifier: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}

	return &FaceCrop{classifier: classifier, margin: margin}, nil
}

// Name implements the Transform interface.
func (fc *FaceCrop) Name() string { return "facecrop" }

// Apply implements the Transform interface.
func (fc *FaceCrop) Apply(s *Sample) (*Sample, error) {
	if s.Img == nil {
		return nil, ErrNotImageDomain
	}

	cols, rows := s.Img.Bounds().Dx(), s.Img.Bounds().Dy()
	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     utils.Min(cols, rows),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(s.Img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	faces := fc.classifier.RunCascade(cParams, 0.0)
	faces = fc.classifier.ClusterDetections(faces, 0.2)

	best, ok := strongestFace(faces)
	if !ok {
		return nil, ErrNoFace
	}

	return fc.cropToFace(s, best), nil
}

// strongestFace picks the clustered detection with the highest score.
// Detections scoring below the quality threshold are discarded.
func strongestFace(faces []pigo.Detection) (pigo.Detection, bool) {
	best := pigo.Detection{}
	for _, face := range faces {
		if face.Q >= qualityThreshold && face.Q > best.Q {
			best = face
		}
	}
	return best, best.Scale > 0
}

// cropToFace slices a margin-padded square window around the detection,
// clamped to the image bounds, and translates the keypoints into the
// window coordinate frame.
func (fc *FaceCrop) cropToFace(s *Sample, face pigo.Detection) *Sample {
	cols, rows := s.Img.Bounds().Dx(), s.Img.Bounds().Dy()

	side := int(float64(face.Scale) * (1.0 + 2.0*fc.margin))
	side = utils.Min(side, utils.Min(cols, rows))

	x0 := clamp(face.Col-side/2, 0, cols-side)
	y0 := clamp(face.Row-side/2, 0, rows-side)

	img := imaging.Crop(s.Img, image.Rect(x0, y0, x0+side, y0+side))

	points := s.clonePoints()
	for i := range points {
		points[i].X -= float64(x0)
		points[i].Y -= float64(y0)
	}

	return &Sample{Img: img, Points: points}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
