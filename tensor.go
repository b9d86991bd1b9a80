package fkpoints

import "image"

// Layout describes the memory order of the tensor values.
type Layout int

const (
	// LayoutHWC stores the values row major with interleaved channels.
	LayoutHWC Layout = iota
	// LayoutCHW stores one full plane per channel, channel first.
	LayoutCHW
)

// Tensor holds planar float image data together with its memory layout.
type Tensor struct {
	Layout   Layout
	Channels int
	Height   int
	Width    int
	Data     []float32
}

// At returns the value of channel c at pixel (x, y) regardless of the layout.
func (t *Tensor) At(c, y, x int) float32 {
	if t.Layout == LayoutCHW {
		return t.Data[c*t.Height*t.Width+y*t.Width+x]
	}
	return t.Data[(y*t.Width+x)*t.Channels+c]
}

// ToCHW returns a channel-first copy of the tensor.
// Calling it on a CHW tensor returns the tensor unchanged.
func (t *Tensor) ToCHW() *Tensor {
	if t.Layout == LayoutCHW {
		return t
	}
	dst := &Tensor{
		Layout:   LayoutCHW,
		Channels: t.Channels,
		Height:   t.Height,
		Width:    t.Width,
		Data:     make([]float32, len(t.Data)),
	}
	for c := 0; c < t.Channels; c++ {
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				dst.Data[c*t.Height*t.Width+y*t.Width+x] = t.Data[(y*t.Width+x)*t.Channels+c]
			}
		}
	}
	return dst
}

// ToHWC returns a channel-last copy of the tensor. It is the semantic
// inverse of ToCHW: transposing back and forth recovers the original values.
func (t *Tensor) ToHWC() *Tensor {
	if t.Layout == LayoutHWC {
		return t
	}
	dst := &Tensor{
		Layout:   LayoutHWC,
		Channels: t.Channels,
		Height:   t.Height,
		Width:    t.Width,
		Data:     make([]float32, len(t.Data)),
	}
	for c := 0; c < t.Channels; c++ {
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				dst.Data[(y*t.Width+x)*t.Channels+c] = t.Data[c*t.Height*t.Width+y*t.Width+x]
			}
		}
	}
	return dst
}

// imageToTensor converts interleaved NRGBA pixel data to a channel-last
// float tensor holding the raw byte values. The alpha channel is dropped.
func imageToTensor(img *image.NRGBA) *Tensor {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	t := &Tensor{
		Layout:   LayoutHWC,
		Channels: 3,
		Height:   height,
		Width:    width,
		Data:     make([]float32, 3*height*width),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := img.PixOffset(x, y)
			j := (y*width + x) * 3
			t.Data[j+0] = float32(img.Pix[i+0])
			t.Data[j+1] = float32(img.Pix[i+1])
			t.Data[j+2] = float32(img.Pix[i+2])
		}
	}
	return t
}

// ToTensor reorders the sample data from row major interleaved (HWC) to
// channel first planar layout (CHW). The values themselves are not changed.
// An image-domain sample is first converted to a raw value float tensor.
type ToTensor struct{}

// Name implements the Transform interface.
func (ToTensor) Name() string { return "totensor" }

// Apply implements the Transform interface.
func (ToTensor) Apply(s *Sample) (*Sample, error) {
	var t *Tensor
	switch {
	case s.Data != nil:
		t = s.Data
	case s.Img != nil:
		t = imageToTensor(s.Img)
	default:
		return nil, ErrEmptySample
	}
	return &Sample{Data: t.ToCHW(), Points: s.clonePoints()}, nil
}
