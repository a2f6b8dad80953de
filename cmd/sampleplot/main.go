// Package main provides the CLI entry point for sampleplot.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/sampleplot/pkg/sampleplot"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/chart"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/grid"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/output"
)

var (
	configPath  string
	outputDir   string
	jsonPath    string
	pretty      bool
	excluded    []string
	sheetOrder  []string
	dataRange   string
	labelAxis   bool
	workers     int
	failFast    bool
	noCharts    bool
	gsheetID    string
	credentials string
)

func main() {
	setupEnvironment()

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("sampleplot failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sampleplot [workbook.xlsx]",
		Short: "Chart sample results collected across workbook sheets",
		Long: `sampleplot reads per-site sample result sheets, normalizes the measurements
(units, NS and non-detect markers, dates), merges each analyte across sheets and
renders one chart per analyte.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for chart images (default: output)")
	rootCmd.Flags().StringVar(&jsonPath, "json", "", "Write the merged dataset as JSON to this path (- for stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringSliceVar(&excluded, "exclude", nil, "Sheet names to skip")
	rootCmd.Flags().StringSliceVar(&sheetOrder, "sheet", nil, "Sheets to process, in order (default: workbook order)")
	rootCmd.Flags().StringVar(&dataRange, "range", "", "Explicit data range, e.g. D4:H40")
	rootCmd.Flags().BoolVar(&labelAxis, "label-axis", false, "Keep header cells as text labels instead of dates")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Extract sheets concurrently with this many workers")
	rootCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort on the first sheet that cannot be extracted")
	rootCmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip chart rendering")
	rootCmd.Flags().StringVar(&gsheetID, "gsheet", "", "Read a Google spreadsheet by ID instead of a file")
	rootCmd.Flags().StringVar(&credentials, "credentials", "credentials.json", "Google service account credentials file")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := sampleplot.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	ctx := context.Background()
	wb, bookName, closeFn, err := openWorkbook(ctx, args)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := sampleplot.Assemble(ctx, wb, cfg.Extract)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	res.BookName = bookName

	for _, e := range res.Report.Errors {
		log.Warn().Err(e).Msg("Reported")
	}

	if cfg.JSONPath != "" {
		if err := writeJSON(res, cfg.JSONPath, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if !noCharts {
		written, errs := chart.WriteFiles(cfg.OutputDir, res.Dataset, cfg.Chart)
		log.Info().Int("charts", len(written)).Int("errors", len(errs)).Str("dir", cfg.OutputDir).Msg("Charts written")
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *sampleplot.Config) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("json") {
		cfg.JSONPath = jsonPath
	}
	if flags.Changed("pretty") {
		cfg.Pretty = pretty
	}
	if flags.Changed("exclude") {
		cfg.Extract.ExcludedSheets = append(cfg.Extract.ExcludedSheets, excluded...)
	}
	if flags.Changed("sheet") {
		cfg.Extract.Sheets = sheetOrder
	}
	if flags.Changed("range") {
		cfg.Extract.Layout.Range = dataRange
	}
	if flags.Changed("label-axis") {
		cfg.Extract.Layout.LabelAxis = labelAxis
	}
	if flags.Changed("workers") {
		cfg.Extract.Workers = workers
	}
	if flags.Changed("fail-fast") {
		cfg.Extract.FailFast = failFast
	}
}

func openWorkbook(ctx context.Context, args []string) (grid.Workbook, string, func(), error) {
	if gsheetID != "" {
		wb, err := grid.OpenGoogleSheets(ctx, credentials, gsheetID)
		if err != nil {
			return nil, "", nil, err
		}
		return wb, gsheetID, func() {}, nil
	}

	if len(args) == 0 {
		return nil, "", nil, fmt.Errorf("a workbook path or --gsheet is required")
	}
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, "", nil, fmt.Errorf("file not found: %s", inputPath)
	}
	wb, err := grid.OpenExcel(inputPath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	closeFn := func() {
		if err := wb.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close workbook")
		}
	}
	return wb, filepath.Base(inputPath), closeFn, nil
}

func writeJSON(res *sampleplot.Result, path string, pretty bool) error {
	data, err := output.ToJSON(res, pretty)
	if err != nil {
		return err
	}
	if path == "-" {
		fmt.Println(string(data))
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
