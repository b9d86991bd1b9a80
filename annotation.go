package fkpoints

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// annotationColumns is the expected column count of the annotation table:
// the image file name followed by 68 flattened (x, y) coordinate pairs.
const annotationColumns = 1 + 2*NumKeypoints

var (
	// ErrBadHeader is returned when the annotation header row is missing
	// or does not match the expected image_name,x0,y0,...,x67,y67 shape.
	ErrBadHeader = errors.New("unexpected annotation header")

	// ErrMalformedRow is returned for annotation rows with a wrong column
	// count, an empty file name or an unparsable coordinate.
	ErrMalformedRow = errors.New("malformed annotation row")
)

// Record is a single annotation table row: an image file name together
// with its 68 facial landmark coordinates.
type Record struct {
	Image  string
	Points []Point
}

// AnnotationTable is the ordered list of annotation records.
// It is immutable after load.
type AnnotationTable struct {
	records []Record
}

// LoadAnnotations reads and parses the annotation table from a CSV file.
func LoadAnnotations(path string) (*AnnotationTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the annotation file: %w", err)
	}
	defer file.Close()

	table, err := ParseAnnotations(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseAnnotations parses a CSV annotation source. The first row must be the
// header image_name,x0,y0,...,x67,y67; every following row holds one record.
func ParseAnnotations(r io.Reader) (*AnnotationTable, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1 // column counts are validated per row below

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrBadHeader
	}
	if err != nil {
		return nil, fmt.Errorf("could not read the annotation header: %w", err)
	}
	if len(header) != annotationColumns || header[0] != "image_name" {
		return nil, fmt.Errorf("%w: got %d columns, want %d starting with image_name",
			ErrBadHeader, len(header), annotationColumns)
	}

	var records []Record
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRow, row, err)
		}
		if len(rec) != annotationColumns {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrMalformedRow, row, len(rec), annotationColumns)
		}
		if rec[0] == "" {
			return nil, fmt.Errorf("%w: row %d has an empty image name", ErrMalformedRow, row)
		}

		points := make([]Point, NumKeypoints)
		for i := 0; i < NumKeypoints; i++ {
			x, err := strconv.ParseFloat(rec[1+2*i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", ErrMalformedRow, row, 1+2*i, err)
			}
			y, err := strconv.ParseFloat(rec[2+2*i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", ErrMalformedRow, row, 2+2*i, err)
			}
			points[i] = Point{X: x, Y: y}
		}
		records = append(records, Record{Image: rec[0], Points: points})
	}

	return &AnnotationTable{records: records}, nil
}

// Len returns the number of records in the table.
func (t *AnnotationTable) Len() int {
	return len(t.records)
}

// Record returns the i-th annotation record.
func (t *AnnotationTable) Record(i int) Record {
	return t.records[i]
}
