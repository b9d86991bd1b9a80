package fkpoints

import "image"

// NumKeypoints is the number of facial landmarks annotated per image.
const NumKeypoints = 68

// Point is a single facial landmark coordinate.
type Point struct {
	X, Y float64
}

// Sample pairs the pixel data of one image with its facial landmarks.
// While the sample is in the image domain Img holds the interleaved pixels
// and Data is nil. Normalize and ToTensor move the sample into the tensor
// domain: Img becomes nil and Data holds the planar float values.
// The keypoints are always expressed in the coordinate frame of whichever
// representation is active.
type Sample struct {
	Img    *image.NRGBA
	Data   *Tensor
	Points []Point
}

// Dims returns the pixel dimensions of the active representation.
func (s *Sample) Dims() (width, height int) {
	switch {
	case s.Img != nil:
		return s.Img.Bounds().Dx(), s.Img.Bounds().Dy()
	case s.Data != nil:
		return s.Data.Width, s.Data.Height
	}
	return 0, 0
}

// clonePoints copies the keypoint slice so that transforms never mutate
// the keypoints of their input sample.
func (s *Sample) clonePoints() []Point {
	return append([]Point(nil), s.Points...)
}
