package fkpoints

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrIndexRange is returned when a sample index is outside the table bounds.
var ErrIndexRange = errors.New("sample index out of range")

// Dataset resolves annotation records to image/keypoint samples.
// Images are loaded lazily on each access and never cached, so a Dataset
// is safe for concurrent read-only use by independent workers.
type Dataset struct {
	table  *AnnotationTable
	imgDir string
	chain  Chain
}

// NewDataset loads the annotation table from csvPath and returns a dataset
// resolving image names against imgDir. The optional transforms are applied
// in the given order on every sample access.
func NewDataset(csvPath, imgDir string, transforms ...Transform) (*Dataset, error) {
	table, err := LoadAnnotations(csvPath)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		table:  table,
		imgDir: imgDir,
		chain:  Chain(transforms),
	}, nil
}

// Len returns the number of samples in the dataset.
func (d *Dataset) Len() int {
	return d.table.Len()
}

// Table exposes the underlying annotation table.
func (d *Dataset) Table() *AnnotationTable {
	return d.table
}

// Sample loads the image of the i-th record, pairs it with a copy of the
// record keypoints and runs the transform chain. The source image alpha
// channel is discarded before the pairing.
func (d *Dataset) Sample(i int) (*Sample, error) {
	if i < 0 || i >= d.table.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexRange, i, d.table.Len())
	}
	rec := d.table.Record(i)

	src, err := decodeImg(filepath.Join(d.imgDir, rec.Image))
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", i, err)
	}

	s := &Sample{
		Img:    stripAlpha(imgToNRGBA(src)),
		Points: append([]Point(nil), rec.Points...),
	}
	if len(d.chain) == 0 {
		return s, nil
	}

	out, err := d.chain.Apply(s)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", i, err)
	}
	return out, nil
}
