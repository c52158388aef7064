package analysis

import (
	"context"
	"log/slog"

	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/greenlandlord/epcstats/internal/epcapi"
)

//go:generate go tool mockgen -destination=fetcher_mock_test.go -package=analysis . Fetcher

// Fetcher returns the certificates matching a query. Failures are reported
// as an empty dataset.
type Fetcher interface {
	Fetch(ctx context.Context, q epcapi.Query) *dataset.Dataset
}

// Runner fetches and analyzes a fixed list of locales or property types,
// one request at a time.
type Runner struct {
	Fetcher       Fetcher
	Locales       []epc.Locale
	PropertyTypes []string
}

// NewRunner returns a Runner over the default major cities and property
// types.
func NewRunner(f Fetcher) *Runner {
	return &Runner{
		Fetcher:       f,
		Locales:       epc.MajorCities,
		PropertyTypes: epc.PropertyTypes,
	}
}

// RunLocales analyzes every configured locale in order. Locales without data
// are left out.
func (r *Runner) RunLocales(ctx context.Context) (Results, error) {
	results := Results{}
	for _, l := range r.Locales {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if res, ok := r.analyzeLocale(ctx, l.Code, l.Name); ok {
			results = append(results, res)
		}
	}
	return results, nil
}

// RunPropertyTypes analyzes every configured property type in order. Types
// without data are left out.
func (r *Runner) RunPropertyTypes(ctx context.Context) (Results, error) {
	results := Results{}
	for _, pt := range r.PropertyTypes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if res, ok := r.analyzePropertyType(ctx, pt); ok {
			results = append(results, res)
		}
	}
	return results, nil
}

// Locale analyzes a single local authority. The name comes from the
// configured locales, falling back to the code.
func (r *Runner) Locale(ctx context.Context, code string) Results {
	results := Results{}
	if res, ok := r.analyzeLocale(ctx, code, epc.LocaleName(r.Locales, code)); ok {
		results = append(results, res)
	}
	return results
}

// PropertyType analyzes a single property type across all locales.
func (r *Runner) PropertyType(ctx context.Context, label string) Results {
	results := Results{}
	if res, ok := r.analyzePropertyType(ctx, label); ok {
		results = append(results, res)
	}
	return results
}

func (r *Runner) analyzeLocale(ctx context.Context, code, name string) (Result, bool) {
	slog.Info("Analyzing locale", "name", name, "code", code)

	ds := r.Fetcher.Fetch(ctx, epcapi.Query{LocalAuthority: code})
	if ds.Empty() {
		slog.Warn("No data", "name", name)
		return Result{}, false
	}
	return AnalyzeLocale(name, code, ds), true
}

func (r *Runner) analyzePropertyType(ctx context.Context, label string) (Result, bool) {
	slog.Info("Analyzing property type", "name", label)

	ds := r.Fetcher.Fetch(ctx, epcapi.Query{PropertyType: label})
	if ds.Empty() {
		slog.Warn("No data", "name", label)
		return Result{}, false
	}
	return AnalyzePropertyType(label, ds), true
}
