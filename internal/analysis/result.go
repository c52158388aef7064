package analysis

import (
	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
)

// Result is the analysis of one fetched dataset, for a locale or a
// property type. Segmentations that do not apply are nil.
type Result struct {
	Name                 string              `json:"name"`
	LocalAuthority       string              `json:"local_authority,omitempty"`
	TotalRecords         int                 `json:"total_records"`
	AverageEfficiency    float64             `json:"average_efficiency"`
	Ratings              *RatingDistribution `json:"ratings"`
	ByPropertyType       Segmentation        `json:"by_property_type,omitempty"`
	ByBuiltForm          Segmentation        `json:"by_built_form"`
	ByAge                Segmentation        `json:"by_age,omitempty"`
	EstimatedUpgradeCost int                 `json:"estimated_upgrade_cost"`
	WorstSegment         *Hotspot            `json:"worst_segment,omitempty"`
}

// Results keeps analysis results in the order they were produced.
type Results []Result

// Get returns the result named name.
func (rs Results) Get(name string) (*Result, bool) {
	for i := range rs {
		if rs[i].Name == name {
			return &rs[i], true
		}
	}
	return nil, false
}

// AnalyzeLocale builds the result for a locale dataset, with property type,
// built form and age band segmentations.
func AnalyzeLocale(name, code string, ds *dataset.Dataset) Result {
	r := Result{
		Name:                 name,
		LocalAuthority:       code,
		TotalRecords:         ds.Len(),
		AverageEfficiency:    AverageEfficiency(ds),
		Ratings:              Ratings(ds, epc.Ratings),
		ByPropertyType:       ByPropertyType(ds),
		ByBuiltForm:          ByBuiltForm(ds),
		ByAge:                ByAgeBand(ds),
		EstimatedUpgradeCost: EstimatedUpgradeCost(ds),
	}
	r.WorstSegment = WorstSegment(&r)
	return r
}

// AnalyzePropertyType builds the result for a property-type dataset. The
// dataset spans every locale, so only the built form segmentation applies.
func AnalyzePropertyType(name string, ds *dataset.Dataset) Result {
	r := Result{
		Name:                 name,
		TotalRecords:         ds.Len(),
		AverageEfficiency:    AverageEfficiency(ds),
		Ratings:              Ratings(ds, epc.Ratings),
		ByBuiltForm:          ByBuiltForm(ds),
		EstimatedUpgradeCost: EstimatedUpgradeCost(ds),
	}
	r.WorstSegment = WorstSegment(&r)
	return r
}
