package fkpoints

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSample(width, height int, points ...Point) *Sample {
	return &Sample{
		Img:    image.NewNRGBA(image.Rect(0, 0, width, height)),
		Points: points,
	}
}

func TestRescale_FitLongerEdge(t *testing.T) {
	s := newTestSample(400, 300, Point{X: 150, Y: 200})

	out, err := NewRescale(100).Apply(s)
	assert.NoError(t, err)

	w, h := out.Dims()
	assert.Equal(t, 100, w)
	assert.Equal(t, 75, h)
	assert.InDelta(t, 37.5, out.Points[0].X, 1e-9)
	assert.InDelta(t, 50.0, out.Points[0].Y, 1e-9)
}

func TestRescale_ExactSize(t *testing.T) {
	s := newTestSample(200, 100, Point{X: 100, Y: 50})

	out, err := NewRescaleXY(100, 100).Apply(s)
	assert.NoError(t, err)

	w, h := out.Dims()
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
	assert.InDelta(t, 50.0, out.Points[0].X, 1e-9)
	assert.InDelta(t, 50.0, out.Points[0].Y, 1e-9)
}

func TestRescale_InverseRecoversKeypoints(t *testing.T) {
	points := []Point{
		{X: 150, Y: 200},
		{X: 10, Y: 20},
		{X: 399, Y: 299},
	}
	s := newTestSample(400, 300, points...)

	down, err := NewRescale(100).Apply(s)
	assert.NoError(t, err)

	up, err := NewRescaleXY(400, 300).Apply(down)
	assert.NoError(t, err)

	for i, p := range points {
		assert.InDelta(t, p.X, up.Points[i].X, 1e-9)
		assert.InDelta(t, p.Y, up.Points[i].Y, 1e-9)
	}
}

func TestRescale_InputUntouched(t *testing.T) {
	s := newTestSample(400, 300, Point{X: 150, Y: 200})

	_, err := NewRescale(100).Apply(s)
	assert.NoError(t, err)

	w, h := s.Dims()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
	assert.Equal(t, Point{X: 150, Y: 200}, s.Points[0])
}

func TestRescale_Errors(t *testing.T) {
	_, err := NewRescale(0).Apply(newTestSample(10, 10))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewRescale(100).Apply(&Sample{Data: &Tensor{}})
	assert.ErrorIs(t, err, ErrNotImageDomain)
}
