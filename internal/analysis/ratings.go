// Package analysis turns certificate datasets into rating distributions,
// segment breakdowns and per-locale or per-property-type results.
//
// Every analyzer treats an empty dataset and a missing column the same way:
// it returns an empty result, never an error.
package analysis

import (
	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/greenlandlord/epcstats/internal/metrics"
)

// RatingShare is the count and percentage of one rating band.
type RatingShare struct {
	Rating     string  `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingDistribution summarizes the ratings of a dataset.
type RatingDistribution struct {
	TotalProperties  int           `json:"total_properties"`
	Distribution     []RatingShare `json:"distribution"`
	BelowCCount      int           `json:"below_c_count"`
	BelowCPercentage float64       `json:"below_c_percentage"`
}

// Share returns the entry for rating, or a zero share when the rating is not
// on the scale the distribution was built with.
func (d *RatingDistribution) Share(rating string) RatingShare {
	if d != nil {
		for _, s := range d.Distribution {
			if s.Rating == rating {
				return s
			}
		}
	}
	return RatingShare{Rating: rating}
}

// Ratings counts each band of scale (best first) in ds. Bands after the
// first epc.CompliantBands are rolled up as below C. Rows with a missing or
// unknown rating count towards the total only.
//
// Returns nil when ds is empty or has no rating column.
func Ratings(ds *dataset.Dataset, scale []string) *RatingDistribution {
	if ds.Empty() || !ds.HasColumn(epc.ColumnRating) {
		return nil
	}

	counts := make(map[string]int, len(scale))
	for _, row := range ds.Rows {
		if v, ok := row.Value(epc.ColumnRating); ok {
			counts[v]++
		}
	}

	total := ds.Len()
	result := &RatingDistribution{
		TotalProperties: total,
		Distribution:    make([]RatingShare, 0, len(scale)),
	}
	for i, rating := range scale {
		count := counts[rating]
		result.Distribution = append(result.Distribution, RatingShare{
			Rating:     rating,
			Count:      count,
			Percentage: metrics.Percentage(count, total),
		})
		if i >= epc.CompliantBands {
			result.BelowCCount += count
		}
	}
	result.BelowCPercentage = metrics.Percentage(result.BelowCCount, total)

	return result
}
