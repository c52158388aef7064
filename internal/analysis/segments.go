package analysis

import (
	"cmp"
	"slices"

	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
)

// MinSegmentSize is the smallest group reported by a segmented analysis.
const MinSegmentSize = 10

// Segment is the rating summary of the rows sharing one category value.
// Distribution is nil for built-form segments.
type Segment struct {
	Count            int           `json:"count"`
	BelowCPercentage float64       `json:"below_c_percentage"`
	Distribution     []RatingShare `json:"distribution,omitempty"`
}

// Segmentation maps a category label, as found in the data, to its segment.
type Segmentation map[string]Segment

// LabeledSegment is a segment together with its label.
type LabeledSegment struct {
	Label string
	Segment
}

// Ranked returns the segments ordered by below-C percentage, highest first,
// with ties broken by label.
func (s Segmentation) Ranked() []LabeledSegment {
	out := make([]LabeledSegment, 0, len(s))
	for label, seg := range s {
		out = append(out, LabeledSegment{Label: label, Segment: seg})
	}
	slices.SortFunc(out, func(a, b LabeledSegment) int {
		if c := cmp.Compare(b.BelowCPercentage, a.BelowCPercentage); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// SegmentBy groups ds by column and summarizes every group with at least
// MinSegmentSize rows. Returns an empty Segmentation when ds is empty or
// lacks the column.
func SegmentBy(ds *dataset.Dataset, column string, withDistribution bool) Segmentation {
	result := Segmentation{}
	if ds.Empty() {
		return result
	}

	for _, g := range ds.GroupBy(column) {
		if g.Rows.Len() < MinSegmentSize {
			continue
		}
		ratings := Ratings(g.Rows, epc.Ratings)
		if ratings == nil {
			continue
		}
		seg := Segment{
			Count:            ratings.TotalProperties,
			BelowCPercentage: ratings.BelowCPercentage,
		}
		if withDistribution {
			seg.Distribution = ratings.Distribution
		}
		result[g.Key] = seg
	}
	return result
}

// ByAgeBand segments ds by construction age band.
func ByAgeBand(ds *dataset.Dataset) Segmentation {
	return SegmentBy(ds, epc.ColumnAgeBand, true)
}

// ByPropertyType segments ds by property type.
func ByPropertyType(ds *dataset.Dataset) Segmentation {
	return SegmentBy(ds, epc.ColumnPropertyType, true)
}

// ByBuiltForm segments ds by built form. Segments carry no distribution.
func ByBuiltForm(ds *dataset.Dataset) Segmentation {
	return SegmentBy(ds, epc.ColumnBuiltForm, false)
}
