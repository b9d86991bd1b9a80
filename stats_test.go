package fkpoints

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableStats_KnownDistribution(t *testing.T) {
	src := annotationCSV(
		constRow("a.png", 10, 20),
		constRow("b.png", 30, 40),
	)

	table, err := ParseAnnotations(strings.NewReader(src))
	assert.NoError(t, err)

	st := TableStats(table)
	assert.InDelta(t, 20.0, st.MeanX, 1e-9)
	assert.InDelta(t, 30.0, st.MeanY, 1e-9)
	assert.InDelta(t, 25.0, st.Mean, 1e-9)

	// Each axis is an even split between two values.
	assert.Greater(t, st.StdX, 0.0)
	assert.Greater(t, st.StdY, 0.0)
}

func TestTableStats_ConstantTable(t *testing.T) {
	src := annotationCSV(
		constRow("a.png", 100, 100),
		constRow("b.png", 100, 100),
	)

	table, err := ParseAnnotations(strings.NewReader(src))
	assert.NoError(t, err)

	st := TableStats(table)
	assert.InDelta(t, 100.0, st.Mean, 1e-9)
	assert.InDelta(t, 0.0, st.Std, 1e-9)
}

func TestTableStats_EmptyTable(t *testing.T) {
	table, err := ParseAnnotations(strings.NewReader(annotationCSV()))
	assert.NoError(t, err)
	assert.Equal(t, Stats{}, TableStats(table))
}
