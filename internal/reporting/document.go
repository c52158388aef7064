package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/greenlandlord/epcstats/internal/analysis"
	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/greenlandlord/epcstats/internal/epcapi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatHTML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q: must be one of text, json, markdown, html", s)
}

// Render renders rep in the given format.
func Render(f Format, rep Report) (string, error) {
	switch f {
	case FormatText, "":
		return FormatInsights(rep), nil
	case FormatJSON:
		return FormatJSONReport(rep)
	case FormatMarkdown:
		return FormatMarkdownReport(rep), nil
	case FormatHTML:
		return FormatHTMLReport(rep)
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}
}

type jsonReport struct {
	GeneratedAt       time.Time          `json:"generated_at"`
	Locales           analysis.Results   `json:"locales"`
	PropertyTypes     analysis.Results   `json:"property_types"`
	VictorianFindings []VictorianFinding `json:"victorian_findings"`
}

// FormatJSONReport renders rep as indented JSON.
func FormatJSONReport(rep Report) (string, error) {
	doc := jsonReport{
		GeneratedAt:       rep.GeneratedAt,
		Locales:           nonNil(rep.Locales),
		PropertyTypes:     nonNil(rep.PropertyTypes),
		VictorianFindings: VictorianFindings(rep.Locales),
	}
	if doc.VictorianFindings == nil {
		doc.VictorianFindings = []VictorianFinding{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

func nonNil(rs analysis.Results) analysis.Results {
	if rs == nil {
		return analysis.Results{}
	}
	return rs
}

// FormatMarkdownReport renders rep as a Markdown document with one table
// per section.
func FormatMarkdownReport(rep Report) string {
	var b strings.Builder

	b.WriteString("# EPC Data Analysis - Key Insights\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04")))

	if len(rep.Locales) > 0 {
		b.WriteString("## City comparison\n\n")
		b.WriteString("| Rank | City | Below C | Avg score | Records | Est. upgrade cost | Worst segment |\n")
		b.WriteString("|-----:|------|--------:|----------:|--------:|------------------:|---------------|\n")
		for i, r := range RankLocales(rep.Locales) {
			b.WriteString(fmt.Sprintf("| %d | %s | %.1f%% | %.1f | %s | %s | %s |\n",
				i+1, cell(r.Name), r.Ratings.BelowCPercentage, r.AverageEfficiency,
				FormatCount(r.TotalRecords), formatCost(r.EstimatedUpgradeCost), worstCell(r.WorstSegment)))
		}
		b.WriteString("\n")
		writeDistributionTable(&b, "Rating distribution by city", rep.Locales)
	}

	if len(rep.PropertyTypes) > 0 {
		b.WriteString("## Property type comparison\n\n")
		b.WriteString("| Property type | Below C | Avg score | Records | Est. upgrade cost |\n")
		b.WriteString("|---------------|--------:|----------:|--------:|------------------:|\n")
		for _, r := range rep.PropertyTypes {
			if r.Ratings == nil {
				continue
			}
			b.WriteString(fmt.Sprintf("| %s | %.1f%% | %.1f | %s | %s |\n",
				cell(r.Name), r.Ratings.BelowCPercentage, r.AverageEfficiency,
				FormatCount(r.TotalRecords), formatCost(r.EstimatedUpgradeCost)))
		}
		b.WriteString("\n")
		writeDistributionTable(&b, "Rating distribution by property type", rep.PropertyTypes)
	}

	b.WriteString("## Key finding: Victorian terraces\n\n")
	findings := VictorianFindings(rep.Locales)
	if len(findings) == 0 {
		b.WriteString("No Victorian-era data found in sample.\n\n")
	} else {
		b.WriteString("| City | Below C | Age band | Records |\n")
		b.WriteString("|------|--------:|----------|--------:|\n")
		for _, f := range findings[:min(len(findings), MaxVictorianFindings)] {
			b.WriteString(fmt.Sprintf("| %s | %.1f%% | %s | %d |\n", cell(f.Locale), f.BelowCPercentage, cell(f.AgeBand), f.Count))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("_Data limited to %s records per query (API limit). For full analysis, use bulk downloads._\n", FormatCount(epcapi.MaxPageSize)))
	return b.String()
}

func writeDistributionTable(b *strings.Builder, title string, rs analysis.Results) {
	b.WriteString("### " + title + "\n\n")
	b.WriteString("| Name |")
	for _, r := range epc.Ratings {
		b.WriteString(" " + r + " |")
	}
	b.WriteString("\n|------|")
	for range epc.Ratings {
		b.WriteString("--:|")
	}
	b.WriteString("\n")
	for _, r := range rs {
		if r.Ratings == nil {
			continue
		}
		b.WriteString("| " + cell(r.Name) + " |")
		for _, rating := range epc.Ratings {
			b.WriteString(fmt.Sprintf(" %.1f%% |", r.Ratings.Share(rating).Percentage))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func formatCost(gbp int) string {
	return "£" + FormatCount(gbp)
}

func worstCell(h *analysis.Hotspot) string {
	if h == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s, %.1f%%)", cell(h.Name), h.Kind, h.Percentage)
}

// cell escapes a value for use inside a Markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// FormatHTMLReport renders the Markdown report as a standalone HTML page.
func FormatHTMLReport(rep Report) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(FormatMarkdownReport(rep)), &body); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en-GB\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>EPC Data Analysis - Key Insights</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
