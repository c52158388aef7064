package analysis

import (
	"context"
	"testing"

	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/greenlandlord/epcstats/internal/epcapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"
)

var testLocales = []epc.Locale{
	{Code: "E08000003", Name: "Manchester"},
	{Code: "E08000025", Name: "Birmingham"},
	{Code: "E08000035", Name: "Leeds"},
}

func TestRunnerLocales_SkipsEmptyAndKeepsOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)

	gomock.InOrder(
		fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{LocalAuthority: "E08000003"}).
			Return(newDataset(repeat(20, cert{rating: "D"}))),
		fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{LocalAuthority: "E08000025"}).
			Return(&dataset.Dataset{}),
		fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{LocalAuthority: "E08000035"}).
			Return(newDataset(repeat(10, cert{rating: "C"}))),
	)

	r := &Runner{Fetcher: fetcher, Locales: testLocales}
	results, err := r.RunLocales(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Manchester", results[0].Name)
	assert.Equal(t, "E08000003", results[0].LocalAuthority)
	assert.Equal(t, 100.0, results[0].Ratings.BelowCPercentage)
	assert.Equal(t, "Leeds", results[1].Name)
	assert.Equal(t, 0.0, results[1].Ratings.BelowCPercentage)

	_, ok := results.Get("Birmingham")
	assert.False(t, ok, "no data is not the same as zero below C")
}

func TestRunnerPropertyTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)

	gomock.InOrder(
		fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{PropertyType: "House"}).
			Return(newDataset(repeat(12, cert{rating: "E", builtForm: "Semi-Detached", ageBand: "1930-1949"}))),
		fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{PropertyType: "Flat"}).
			Return(nil),
	)

	r := &Runner{Fetcher: fetcher, PropertyTypes: []string{"House", "Flat"}}
	results, err := r.RunPropertyTypes(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "House", results[0].Name)
	assert.Contains(t, results[0].ByBuiltForm, "Semi-Detached")
	assert.Nil(t, results[0].ByAge)
	assert.Nil(t, results[0].ByPropertyType)
}

func TestRunnerLocale_Single(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{LocalAuthority: "E08000035"}).
		Return(newDataset(repeat(10, cert{rating: "D"})))
	fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{LocalAuthority: "E07000178"}).
		Return(newDataset(repeat(10, cert{rating: "C"})))
	fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{LocalAuthority: "E99999999"}).
		Return(&dataset.Dataset{})

	r := &Runner{Fetcher: fetcher, Locales: testLocales}

	results := r.Locale(context.Background(), "E08000035")
	require.Len(t, results, 1)
	assert.Equal(t, "Leeds", results[0].Name)

	results = r.Locale(context.Background(), "E07000178")
	require.Len(t, results, 1)
	assert.Equal(t, "E07000178", results[0].Name, "unknown codes are labelled by code")

	assert.Empty(t, r.Locale(context.Background(), "E99999999"))
}

func TestRunnerPropertyType_Single(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{PropertyType: "Maisonette"}).
		Return(newDataset(repeat(3, cert{rating: "D"})))

	r := NewRunner(fetcher)
	results := r.PropertyType(context.Background(), "Maisonette")
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].TotalRecords)
	assert.Empty(t, results[0].ByBuiltForm)
}

func TestRunnerLocales_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := NewMockFetcher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	fetcher.EXPECT().Fetch(gomock.Any(), epcapi.Query{LocalAuthority: "E08000003"}).
		DoAndReturn(func(context.Context, epcapi.Query) *dataset.Dataset {
			cancel()
			return newDataset(repeat(10, cert{rating: "D"}))
		})

	r := &Runner{Fetcher: fetcher, Locales: testLocales}
	results, err := r.RunLocales(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 1)
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(nil)
	assert.Equal(t, epc.MajorCities, r.Locales)
	assert.Equal(t, epc.PropertyTypes, r.PropertyTypes)
}

func TestAnalyzers_NoSharedState(t *testing.T) {
	ds := newDataset(localeDataset())
	want := AnalyzeLocale("Manchester", "E08000003", ds)

	var g errgroup.Group
	got := make([]Result, 8)
	for i := range got {
		g.Go(func() error {
			got[i] = AnalyzeLocale("Manchester", "E08000003", ds)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, r := range got {
		assert.Equal(t, want, r)
	}
}
