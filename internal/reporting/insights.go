// Package reporting renders analysis results as the text insights report
// and as JSON, Markdown or HTML documents.
package reporting

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/greenlandlord/epcstats/internal/analysis"
	"github.com/greenlandlord/epcstats/internal/epcapi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Column widths of the text report.
const (
	localeWidth       = 15
	propertyTypeWidth = 12
)

// MaxVictorianFindings bounds the Victorian terrace list.
const MaxVictorianFindings = 5

var printer = message.NewPrinter(language.BritishEnglish)

var rule = strings.Repeat("=", 60)

// Report is the input of every renderer.
type Report struct {
	Locales       analysis.Results
	PropertyTypes analysis.Results
	GeneratedAt   time.Time
}

// VictorianFinding is a pre-1900 age band segment of one locale.
type VictorianFinding struct {
	Locale           string  `json:"locale"`
	AgeBand          string  `json:"age_band"`
	BelowCPercentage float64 `json:"below_c_percentage"`
	Count            int     `json:"count"`
}

// IsVictorian reports whether an age band label denotes construction before
// 1900. The match is textual and depends on the register's wording.
func IsVictorian(ageBand string) bool {
	return strings.Contains(ageBand, "1900") ||
		strings.Contains(ageBand, "1899") ||
		strings.Contains(strings.ToLower(ageBand), "before 1900")
}

// VictorianFindings collects the pre-1900 age band segments of every locale,
// worst first. Equal percentages keep locale order, then label order.
func VictorianFindings(locales analysis.Results) []VictorianFinding {
	var findings []VictorianFinding
	for _, r := range locales {
		labels := make([]string, 0, len(r.ByAge))
		for label := range r.ByAge {
			labels = append(labels, label)
		}
		slices.Sort(labels)

		for _, label := range labels {
			if !IsVictorian(label) {
				continue
			}
			seg := r.ByAge[label]
			findings = append(findings, VictorianFinding{
				Locale:           r.Name,
				AgeBand:          label,
				BelowCPercentage: seg.BelowCPercentage,
				Count:            seg.Count,
			})
		}
	}

	slices.SortStableFunc(findings, func(a, b VictorianFinding) int {
		switch {
		case a.BelowCPercentage > b.BelowCPercentage:
			return -1
		case a.BelowCPercentage < b.BelowCPercentage:
			return 1
		}
		return 0
	})
	return findings
}

// RankLocales returns the locales with a rating distribution, worst
// below-C percentage first. Ties keep input order.
func RankLocales(locales analysis.Results) analysis.Results {
	ranked := make(analysis.Results, 0, len(locales))
	for _, r := range locales {
		if r.Ratings != nil {
			ranked = append(ranked, r)
		}
	}
	slices.SortStableFunc(ranked, func(a, b analysis.Result) int {
		switch {
		case a.Ratings.BelowCPercentage > b.Ratings.BelowCPercentage:
			return -1
		case a.Ratings.BelowCPercentage < b.Ratings.BelowCPercentage:
			return 1
		}
		return 0
	})
	return ranked
}

// FormatInsights renders the plain-text insights report.
func FormatInsights(rep Report) string {
	lines := []string{
		rule,
		"EPC DATA ANALYSIS - KEY INSIGHTS",
		"Generated: " + rep.GeneratedAt.Format("2006-01-02 15:04"),
		rule,
	}

	if len(rep.Locales) > 0 {
		lines = append(lines, "\n## CITY COMPARISON - % of Properties Below EPC C\n")
		for _, r := range RankLocales(rep.Locales) {
			lines = append(lines, fmt.Sprintf("  %s %5.1f%% below C  (avg score: %.1f, n=%s)",
				PadRight(r.Name, localeWidth), r.Ratings.BelowCPercentage, r.AverageEfficiency, FormatCount(r.TotalRecords)))
		}
	}

	if len(rep.PropertyTypes) > 0 {
		lines = append(lines, "\n## PROPERTY TYPE COMPARISON\n")
		for _, r := range rep.PropertyTypes {
			if r.Ratings == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s %5.1f%% below C  (avg score: %.1f)",
				PadRight(r.Name, propertyTypeWidth), r.Ratings.BelowCPercentage, r.AverageEfficiency))
		}
	}

	lines = append(lines, "\n## KEY FINDING: Victorian Terraces\n")
	findings := VictorianFindings(rep.Locales)
	if len(findings) == 0 {
		lines = append(lines, "  (No Victorian-era data found in sample)")
	}
	for _, f := range findings[:min(len(findings), MaxVictorianFindings)] {
		lines = append(lines, fmt.Sprintf("  %s %5.1f%% below C  (%s, n=%d)",
			PadRight(f.Locale, localeWidth), f.BelowCPercentage, f.AgeBand, f.Count))
	}

	lines = append(lines,
		"\n"+rule,
		"Note: Data limited to "+FormatCount(epcapi.MaxPageSize)+" records per query (API limit)",
		"For full analysis, use bulk downloads",
		rule,
	)

	return strings.Join(lines, "\n")
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// PadRight pads s with spaces so its display width reaches width. Longer
// strings are returned unchanged.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
