package analysis

import (
	"testing"

	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByAgeBand_SmallGroupDropped(t *testing.T) {
	ds := newDataset(
		repeat(5, cert{rating: "E", ageBand: "England and Wales: before 1900"}),
		repeat(12, cert{rating: "C", ageBand: "England and Wales: 2007 onwards"}),
	)

	got := ByAgeBand(ds)
	require.Len(t, got, 1)
	assert.NotContains(t, got, "England and Wales: before 1900")

	seg, ok := got["England and Wales: 2007 onwards"]
	require.True(t, ok)
	assert.Equal(t, 12, seg.Count)
	assert.Equal(t, 0.0, seg.BelowCPercentage)
	require.Len(t, seg.Distribution, len(epc.Ratings))
}

func TestSegmentBy_ThresholdBoundary(t *testing.T) {
	ds := newDataset(
		repeat(MinSegmentSize, cert{rating: "D", propType: "House"}),
		repeat(MinSegmentSize-1, cert{rating: "D", propType: "Flat"}),
	)

	got := ByPropertyType(ds)
	assert.Contains(t, got, "House")
	assert.NotContains(t, got, "Flat")
	for _, seg := range got {
		assert.GreaterOrEqual(t, seg.Count, MinSegmentSize)
	}
}

func TestByPropertyType_Summary(t *testing.T) {
	ds := newDataset(
		repeat(6, cert{rating: "D", propType: "House"}),
		repeat(4, cert{rating: "B", propType: "House"}),
		repeat(10, cert{rating: "C", propType: "Flat"}),
		repeat(3, cert{rating: "G", propType: ""}),
	)

	got := ByPropertyType(ds)
	require.Len(t, got, 2)

	house := got["House"]
	assert.Equal(t, 10, house.Count)
	assert.Equal(t, 60.0, house.BelowCPercentage)
	require.Len(t, house.Distribution, len(epc.Ratings))
	assert.Equal(t, 6, house.Distribution[3].Count)

	assert.Equal(t, 0.0, got["Flat"].BelowCPercentage)
}

func TestByBuiltForm_OmitsDistribution(t *testing.T) {
	ds := newDataset(repeat(15, cert{rating: "F", builtForm: "Mid-Terrace"}))

	got := ByBuiltForm(ds)
	require.Contains(t, got, "Mid-Terrace")
	assert.Equal(t, 15, got["Mid-Terrace"].Count)
	assert.Equal(t, 100.0, got["Mid-Terrace"].BelowCPercentage)
	assert.Nil(t, got["Mid-Terrace"].Distribution)
}

func TestSegmentBy_DiscoversLabels(t *testing.T) {
	ds := newDataset(
		repeat(10, cert{rating: "D", builtForm: "Enclosed End-Terrace"}),
		repeat(10, cert{rating: "D", builtForm: "NO DATA!"}),
	)

	got := ByBuiltForm(ds)
	assert.Contains(t, got, "Enclosed End-Terrace")
	assert.Contains(t, got, "NO DATA!")
}

func TestSegmentBy_NoRatingColumn(t *testing.T) {
	ds := withoutColumn(newDataset(repeat(20, cert{rating: "D", builtForm: "Detached"})), epc.ColumnRating)

	got := ByBuiltForm(ds)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSegmentBy_EmptyInputs(t *testing.T) {
	full := newDataset(repeat(20, cert{rating: "D", ageBand: "1930-1949", propType: "House", builtForm: "Detached"}))

	tests := []struct {
		name string
		ds   *dataset.Dataset
	}{
		{"nil dataset", nil},
		{"no rows", &dataset.Dataset{Columns: allColumns}},
		{"no age band column", withoutColumn(full, epc.ColumnAgeBand)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByAgeBand(tt.ds)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}

	assert.Empty(t, ByPropertyType(nil))
	assert.Empty(t, ByBuiltForm(nil))
}

func TestSegmentation_Ranked(t *testing.T) {
	s := Segmentation{
		"b": {Count: 10, BelowCPercentage: 40},
		"a": {Count: 10, BelowCPercentage: 40},
		"c": {Count: 10, BelowCPercentage: 90},
		"d": {Count: 10, BelowCPercentage: 10},
	}

	ranked := s.Ranked()
	require.Len(t, ranked, 4)
	labels := make([]string, len(ranked))
	for i, r := range ranked {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, labels)
}
