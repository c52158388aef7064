package analysis

import (
	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
)

// WorstSegmentMinCount is the smallest segment considered by WorstSegment.
const WorstSegmentMinCount = 50

// Segment kinds reported by WorstSegment.
const (
	KindPropertyType = "property type"
	KindAgeBand      = "age band"
	KindBuiltForm    = "built form"
)

// Hotspot names the segment of a result with the highest below-C share.
type Hotspot struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Kind       string  `json:"type"`
}

// EstimatedUpgradeCost sums the indicative cost of bringing every below-C
// property in ds up to C.
func EstimatedUpgradeCost(ds *dataset.Dataset) int {
	if ds.Empty() || !ds.HasColumn(epc.ColumnRating) {
		return 0
	}

	total := 0
	for _, row := range ds.Rows {
		if v, ok := row.Value(epc.ColumnRating); ok {
			total += epc.UpgradeCosts[v]
		}
	}
	return total
}

// WorstSegment picks the segment with the highest below-C percentage among
// those with at least WorstSegmentMinCount properties. Property types are
// considered first, then age bands, then built forms; a later segment must
// be strictly worse to win. Returns nil when no segment qualifies.
func WorstSegment(r *Result) *Hotspot {
	var worst *Hotspot
	highest := 0.0
	consider := func(kind string, s Segmentation) {
		for _, seg := range s.Ranked() {
			if seg.Count >= WorstSegmentMinCount && seg.BelowCPercentage > highest {
				worst = &Hotspot{Name: seg.Label, Percentage: seg.BelowCPercentage, Kind: kind}
				highest = seg.BelowCPercentage
			}
		}
	}

	consider(KindPropertyType, r.ByPropertyType)
	consider(KindAgeBand, r.ByAge)
	consider(KindBuiltForm, r.ByBuiltForm)
	return worst
}
