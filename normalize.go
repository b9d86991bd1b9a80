package fkpoints

// Keypoint centering constants. These are empirically chosen for faces
// rescaled to roughly the 224 pixel range, not statistics computed from the
// table; see TableStats for the measured values of a concrete dataset.
const (
	KeypointMean  = 100.0
	KeypointScale = 50.0
)

// Normalize converts the image to a single channel grayscale tensor with
// values in [0, 1] and affinely centers the keypoints with the fixed
// KeypointMean/KeypointScale constants. The resulting tensor keeps the
// row major channel-last layout; ToTensor reorders it to channel-first.
type Normalize struct{}

// Name implements the Transform interface.
func (Normalize) Name() string { return "normalize" }

// Apply implements the Transform interface.
func (Normalize) Apply(s *Sample) (*Sample, error) {
	if s.Img == nil {
		return nil, ErrNotImageDomain
	}

	width, height := s.Img.Bounds().Dx(), s.Img.Bounds().Dy()
	t := &Tensor{
		Layout:   LayoutHWC,
		Channels: 1,
		Height:   height,
		Width:    width,
		Data:     make([]float32, height*width),
	}

	// Standard luma weights, same as the RGB to grayscale conversion used
	// for the face detector input.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := s.Img.PixOffset(x, y)
			r := float64(s.Img.Pix[i+0])
			g := float64(s.Img.Pix[i+1])
			b := float64(s.Img.Pix[i+2])
			t.Data[y*width+x] = float32((0.299*r + 0.587*g + 0.114*b) / 255.0)
		}
	}

	points := s.clonePoints()
	for i := range points {
		points[i].X = (points[i].X - KeypointMean) / KeypointScale
		points[i].Y = (points[i].Y - KeypointMean) / KeypointScale
	}

	return &Sample{Data: t, Points: points}, nil
}
