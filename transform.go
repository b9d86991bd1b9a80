package fkpoints

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImageDomain is returned by transforms that operate on pixel data
	// when the sample has already been converted to a tensor.
	ErrNotImageDomain = errors.New("transform requires an image-domain sample")

	// ErrEmptySample is returned when a sample carries neither pixel nor tensor data.
	ErrEmptySample = errors.New("sample holds no pixel data")
)

// Transform remaps an image/keypoint pair into a new pair. Implementations are
// stateless apart from their constructor supplied parameters and must keep the
// keypoints aligned with the pixel data they return.
type Transform interface {
	// Name identifies the transform in wrapped errors.
	Name() string

	// Apply returns the transformed sample. The input sample is left untouched.
	Apply(s *Sample) (*Sample, error)
}

// Chain is an ordered list of transforms applied strictly in sequence.
// The order is a usage contract: geometric transforms expecting a minimum
// image size (e.g. RandomCrop) should come after Rescale.
type Chain []Transform

// Apply runs the sample through every transform in order.
// The first failing transform aborts the chain.
func (c Chain) Apply(s *Sample) (*Sample, error) {
	var err error
	for _, t := range c {
		s, err = t.Apply(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}
	return s, nil
}
