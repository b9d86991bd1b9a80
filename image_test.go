package fkpoints

import (
	"image"
	"image/color"
	"image/color/palette"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabfec/CV-Facial-Keypoints/utils"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 7, 7)
	colors := palette.Plan9

	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "Gray",
			img:  image.NewGray(rect),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := imgToNRGBA(tc.img)

			assert.Equal(t, image.Pt(0, 0), out.Bounds().Min)
			assert.Equal(t, rect.Dx(), out.Bounds().Dx())
			assert.Equal(t, rect.Dy(), out.Bounds().Dy())

			for y := 0; y < rect.Dy(); y++ {
				for x := 0; x < rect.Dx(); x++ {
					want := color.NRGBAModel.Convert(tc.img.At(rect.Min.X+x, rect.Min.Y+y)).(color.NRGBA)
					got := out.NRGBAAt(x, y)
					if !compareBytes([]uint8{got.R, got.G, got.B, got.A}, []uint8{want.R, want.G, want.B, want.A}, 1) {
						t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

// compareBytes reports whether the two byte slices match within delta,
// absorbing off-by-one rounding between color space conversions.
func compareBytes(a, b []uint8, delta int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if utils.Abs(int(a[i])-int(b[i])) > delta {
			return false
		}
	}
	return true
}

func TestImage_StripAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: uint8(x * 60)})
		}
	}

	out := stripAlpha(img)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := out.NRGBAAt(x, y)
			assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, c)
		}
	}
}

func TestImage_DecodeImg(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "sample.png")
	writeTestImage(t, path, 12, 9)

	img, err := decodeImg(path)
	assert.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 9, img.Bounds().Dy())

	_, err = decodeImg(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	textPath := filepath.Join(dir, "notes.txt")
	assert.NoError(t, os.WriteFile(textPath, []byte("definitely not pixel data, not even close"), 0644))
	_, err = decodeImg(textPath)
	assert.Error(t, err)
}

func TestImage_EncodeImgByExtension(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))

	for _, ext := range []string{".png", ".jpg", ".bmp"} {
		path := filepath.Join(dir, "out"+ext)
		file, err := os.Create(path)
		assert.NoError(t, err)

		assert.NoError(t, EncodeImg(file, img))
		assert.NoError(t, file.Close())

		decoded, err := decodeImg(path)
		assert.NoError(t, err)
		assert.Equal(t, 6, decoded.Bounds().Dx())
		assert.Equal(t, 4, decoded.Bounds().Dy())
	}

	file, err := os.Create(filepath.Join(dir, "out.webp"))
	assert.NoError(t, err)
	defer file.Close()
	assert.Error(t, EncodeImg(file, img))
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colors[i%len(colors)])
			i++
		}
	}
	return img
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[i%len(colors)]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			i++
		}
	}
	return img
}
