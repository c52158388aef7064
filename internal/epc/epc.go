// Package epc holds the fixed vocabulary of the domestic Energy Performance
// Certificate register: rating scale, CSV column names, and the local
// authorities and property types analyzed by default.
package epc

// Ratings is the EPC rating scale, best to worst.
var Ratings = []string{"A", "B", "C", "D", "E", "F", "G"}

// CompliantBands is the number of bands at the top of a scale that meet the
// minimum standard (A to C). Everything below them counts as "below C".
const CompliantBands = 3

// Column names in the domestic search CSV.
const (
	ColumnRating       = "current-energy-rating"
	ColumnEfficiency   = "current-energy-efficiency"
	ColumnAgeBand      = "construction-age-band"
	ColumnPropertyType = "property-type"
	ColumnBuiltForm    = "built-form"
)

// Query parameter names accepted by the domestic search endpoint. They
// must match the mapstructure tags of epcapi.Query.
const (
	ParamLocalAuthority = "local-authority"
	ParamPropertyType   = "property-type"
	ParamSize           = "size"
)

// Locale is a local authority and its ONS code.
type Locale struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// MajorCities are the local authorities compared by a full analysis, in
// report order.
var MajorCities = []Locale{
	{Code: "E08000003", Name: "Manchester"},
	{Code: "E08000025", Name: "Birmingham"},
	{Code: "E08000035", Name: "Leeds"},
	{Code: "E06000023", Name: "Bristol"},
	{Code: "E08000012", Name: "Liverpool"},
	{Code: "E08000019", Name: "Sheffield"},
	{Code: "E08000021", Name: "Newcastle"},
	{Code: "E06000018", Name: "Nottingham"},
	{Code: "E09000012", Name: "Hackney"},
	{Code: "E08000016", Name: "Leicester"},
}

// PropertyTypes are the property-type labels compared by a full analysis.
var PropertyTypes = []string{
	"House",
	"Flat",
	"Maisonette",
	"Bungalow",
}

// UpgradeCosts is the indicative cost in GBP of bringing one property with
// the given rating up to C.
var UpgradeCosts = map[string]int{
	"D": 5500,
	"E": 8500,
	"F": 12000,
	"G": 18000,
}

// LocaleName returns the display name for a local authority code, or the
// code itself when it is not one of locales.
func LocaleName(locales []Locale, code string) string {
	for _, l := range locales {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
