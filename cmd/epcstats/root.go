package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/greenlandlord/epcstats/internal/analysis"
	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/greenlandlord/epcstats/internal/epcapi"
	"github.com/greenlandlord/epcstats/internal/progress"
	"github.com/greenlandlord/epcstats/internal/projectconfig"
	"github.com/greenlandlord/epcstats/internal/reporting"
	"github.com/greenlandlord/epcstats/internal/wizard"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

// envFile is loaded into the environment when present. Variables already set
// win over the file.
const envFile = ".env"

// now is swapped out by tests that compare report bytes.
var now = time.Now

type analyzeOptions struct {
	localAuthority string
	propertyType   string
	fullAnalysis   bool
	output         string
	format         string
	input          string
	interactive    bool
	maxResults     int
	configPath     string
}

func newRootCommand() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "epcstats",
		Short: "Analyze Energy Performance Certificate data",
		Long: `epcstats fetches domestic Energy Performance Certificates from the Open Data
Communities API and reports how many properties fall below EPC band C, broken
down by city, property type, built form and construction age.

Without --local-authority or --property-type it runs the full analysis across
the configured cities and property types. Credentials are read from
EPC_API_EMAIL and EPC_API_KEY (a .env file in the working directory is loaded
when present).`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Project config file (default: .epcstats.yaml found from the working directory)")

	f := cmd.Flags()
	f.StringVarP(&opts.localAuthority, "local-authority", "l", "", "Local authority code (e.g. E08000003 for Manchester)")
	f.StringVarP(&opts.propertyType, "property-type", "p", "", "Property type (House, Flat, Maisonette, Bungalow)")
	f.BoolVarP(&opts.fullAnalysis, "full-analysis", "f", false, "Run the full analysis across cities and property types (default)")
	f.StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")
	f.StringVar(&opts.format, "format", projectconfig.DefaultFormat, "Report format: text, json, markdown, html")
	f.StringVar(&opts.input, "input", "", "Analyze a local bulk-download CSV instead of calling the API")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Choose what to analyze interactively")
	f.IntVar(&opts.maxResults, "max-results", 0, fmt.Sprintf("Records per query, capped at %d (default: from config)", epcapi.MaxPageSize))

	cmd.AddCommand(newLocalesCommand(&opts.configPath))
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute(ctx context.Context) error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadProjectConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, opts, cfg); err != nil {
		return err
	}

	format, err := reporting.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	if opts.interactive {
		sel, err := wizard.Run(cmd.InOrStdin(), cmd.ErrOrStderr(), cfg.Locales, cfg.PropertyTypes)
		if err != nil {
			return err
		}
		opts.localAuthority = sel.LocaleCode
		opts.propertyType = sel.PropertyType
	}

	var rep reporting.Report
	if opts.input != "" {
		rep, err = analyzeFile(opts, cfg)
	} else {
		rep, err = analyzeAPI(ctx, cmd.ErrOrStderr(), opts, cfg)
	}
	if err != nil {
		return err
	}
	rep.GeneratedAt = now()

	out, err := reporting.Render(format, rep)
	if err != nil {
		return err
	}
	if err := writeReport(cmd, cfg.Report.Output, out); err != nil {
		return err
	}

	if len(rep.Locales) == 0 && len(rep.PropertyTypes) == 0 {
		return &NoDataError{Message: "no EPC data was returned for the requested analysis"}
	}
	return nil
}

func loadProjectConfig(path string) (*projectconfig.ProjectConfig, error) {
	if path != "" {
		return projectconfig.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return projectconfig.Load(wd)
}

// applyFlags overlays explicitly set flags onto the project config.
func applyFlags(cmd *cobra.Command, opts *analyzeOptions, cfg *projectconfig.ProjectConfig) error {
	f := cmd.Flags()
	if f.Changed("max-results") {
		if opts.maxResults < 0 {
			return fmt.Errorf("--max-results must be >= 0, got %d", opts.maxResults)
		}
		cfg.API.MaxResults = opts.maxResults
	}
	if f.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if f.Changed("output") {
		cfg.Report.Output = opts.output
	}

	if opts.localAuthority != "" && opts.propertyType != "" {
		slog.Warn("Both --local-authority and --property-type given; analyzing the local authority only")
	}
	return nil
}

// apiConfig builds the client config: project settings plus credentials
// from the environment.
func apiConfig(cfg *projectconfig.ProjectConfig) epcapi.Config {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Could not load env file", "path", envFile, "error", err)
	}

	c := cfg.APIClientConfig()
	env := epcapi.ConfigFromEnv()
	c.Email = env.Email
	c.APIKey = env.APIKey
	return c
}

func analyzeAPI(ctx context.Context, errOut io.Writer, opts *analyzeOptions, cfg *projectconfig.ProjectConfig) (reporting.Report, error) {
	client, err := epcapi.New(apiConfig(cfg))
	if err != nil {
		return reporting.Report{}, err
	}

	var fetcher analysis.Fetcher = client
	if isTerminal(errOut) {
		fetcher = &progress.Fetcher{Next: client, Out: errOut}
	}

	runner := &analysis.Runner{
		Fetcher:       fetcher,
		Locales:       cfg.Locales,
		PropertyTypes: cfg.PropertyTypes,
	}

	var rep reporting.Report
	switch {
	case opts.localAuthority != "":
		rep.Locales = runner.Locale(ctx, opts.localAuthority)
	case opts.propertyType != "":
		rep.PropertyTypes = runner.PropertyType(ctx, opts.propertyType)
	default:
		slog.Info("Running full analysis (this may take a few minutes)")
		if rep.Locales, err = runner.RunLocales(ctx); err != nil {
			return rep, err
		}
		if rep.PropertyTypes, err = runner.RunPropertyTypes(ctx); err != nil {
			return rep, err
		}
	}
	return rep, ctx.Err()
}

// analyzeFile treats a local CSV as a single locale named after the file, or
// after --local-authority when given.
func analyzeFile(opts *analyzeOptions, cfg *projectconfig.ProjectConfig) (reporting.Report, error) {
	ds, err := dataset.LoadCSV(opts.input)
	if err != nil {
		return reporting.Report{}, err
	}

	name := strings.TrimSuffix(filepath.Base(opts.input), filepath.Ext(opts.input))
	if opts.localAuthority != "" {
		name = epc.LocaleName(cfg.Locales, opts.localAuthority)
	}
	slog.Info("Analyzing file", "path", opts.input, "records", ds.Len())

	var rep reporting.Report
	if !ds.Empty() {
		rep.Locales = analysis.Results{analysis.AnalyzeLocale(name, opts.localAuthority, ds)}
	}
	return rep, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeReport writes the same bytes to the output file or to stdout.
func writeReport(cmd *cobra.Command, path, report string) error {
	if !strings.HasSuffix(report, "\n") {
		report += "\n"
	}

	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), report)
		return err
	}

	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Results saved to: %s\n", path) //nolint:errcheck
	return nil
}
