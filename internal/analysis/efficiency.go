package analysis

import (
	"math"
	"strconv"

	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/greenlandlord/epcstats/internal/metrics"
)

// AverageEfficiency is the mean energy efficiency score of ds rounded to
// one decimal. Missing and non-numeric values are left out of the mean.
// Returns 0 when ds is empty, has no efficiency column, or no value parses.
func AverageEfficiency(ds *dataset.Dataset) float64 {
	if ds.Empty() || !ds.HasColumn(epc.ColumnEfficiency) {
		return 0
	}

	values := make([]float64, 0, ds.Len())
	for _, row := range ds.Rows {
		v, ok := row.Value(epc.ColumnEfficiency)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		values = append(values, f)
	}

	return metrics.Round1(metrics.Mean(values))
}
