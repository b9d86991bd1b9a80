package fkpoints

import "gonum.org/v1/gonum/stat"

// Stats summarizes the keypoint coordinate distribution of an annotation
// table. The pooled values are computed over both axes together and are the
// measured counterparts of the fixed KeypointMean/KeypointScale constants.
type Stats struct {
	MeanX, StdX float64
	MeanY, StdY float64
	Mean, Std   float64
}

// TableStats computes the keypoint coordinate statistics of the table.
func TableStats(t *AnnotationTable) Stats {
	n := t.Len() * NumKeypoints
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	all := make([]float64, 0, 2*n)

	for i := 0; i < t.Len(); i++ {
		for _, p := range t.Record(i).Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			all = append(all, p.X, p.Y)
		}
	}
	if len(all) == 0 {
		return Stats{}
	}

	return Stats{
		MeanX: stat.Mean(xs, nil),
		StdX:  stat.StdDev(xs, nil),
		MeanY: stat.Mean(ys, nil),
		StdY:  stat.StdDev(ys, nil),
		Mean:  stat.Mean(all, nil),
		Std:   stat.StdDev(all, nil),
	}
}
