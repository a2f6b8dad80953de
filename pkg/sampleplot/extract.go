package sampleplot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sampleplot/pkg/sampleplot/grid"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/merge"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/models"
	"github.com/ukaji3/sampleplot/pkg/sampleplot/parser"
)

// SheetStatus is the outcome of processing one sheet.
type SheetStatus string

const (
	// SheetOK means the sheet contributed series, possibly with cell errors.
	SheetOK SheetStatus = "ok"
	// SheetFailed means the sheet contributed nothing.
	SheetFailed SheetStatus = "failed"
)

// SheetReport summarizes one processed sheet.
type SheetReport struct {
	Sheet    string         `json:"sheet"`
	Label    string         `json:"label"`
	Status   SheetStatus    `json:"status"`
	Bounds   *models.Bounds `json:"bounds,omitempty"`
	Entities int            `json:"entities"`
	Errors   int            `json:"errors"`
}

// Report accumulates per-sheet outcomes and every reported error.
type Report struct {
	Sheets []SheetReport
	Errors []error
}

// Failed returns the names of sheets that contributed nothing.
func (r Report) Failed() []string {
	var out []string
	for _, s := range r.Sheets {
		if s.Status == SheetFailed {
			out = append(out, s.Sheet)
		}
	}
	return out
}

// Messages returns the error texts in report order.
func (r Report) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		out[i] = err.Error()
	}
	return out
}

// Result is the assembled dataset and its error report.
type Result struct {
	BookName string
	Dataset  models.Dataset
	Report   Report
}

type sheetResult struct {
	series *models.SheetSeries
	errs   []error
	err    error
}

// Extract assembles the dataset of an xlsx/xlsm file.
func Extract(path string, opts Options) (*Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	wb, err := grid.OpenExcel(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	res, err := Assemble(context.Background(), wb, opts)
	if err != nil {
		return nil, err
	}
	res.BookName = filepath.Base(path)
	return res, nil
}

// Assemble extracts every selected sheet and merges the series by entity in sheet order.
//
// A sheet whose bounds cannot be resolved is reported as failed and skipped unless
// opts.FailFast is set. Per-cell problems are reported and the value left absent.
func Assemble(ctx context.Context, wb grid.Workbook, opts Options) (*Result, error) {
	layout, err := opts.Layout.Compile()
	if err != nil {
		return nil, err
	}

	names := opts.SheetOrder(wb)
	if len(names) == 0 {
		return nil, ErrNoSheets
	}

	results := make([]sheetResult, len(names))
	if opts.Workers > 1 {
		err = extractConcurrent(ctx, wb, names, layout, opts, results)
	} else {
		err = extractSequential(ctx, wb, names, layout, opts, results)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{Dataset: make(models.Dataset)}
	for i, name := range names {
		fold(res, name, opts.Label(name), results[i])
	}

	for _, name := range res.Dataset.Names() {
		if err := res.Dataset[name].Validate(); err != nil {
			res.Report.Errors = append(res.Report.Errors, fmt.Errorf("entity %q: %w", name, err))
			delete(res.Dataset, name)
		}
	}

	log.Info().
		Int("sheets", len(names)).
		Int("failed", len(res.Report.Failed())).
		Int("entities", len(res.Dataset)).
		Int("errors", len(res.Report.Errors)).
		Msg("Assembled dataset")
	return res, nil
}

func extractSequential(ctx context.Context, wb grid.Workbook, names []string, layout parser.Layout, opts Options, results []sheetResult) error {
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = extractOne(wb, name, layout, opts.Label(name))
		if opts.FailFast && results[i].err != nil {
			return results[i].err
		}
	}
	return nil
}

func extractConcurrent(ctx context.Context, wb grid.Workbook, names []string, layout parser.Layout, opts Options, results []sheetResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = extractOne(wb, name, layout, opts.Label(name))
			if opts.FailFast && results[i].err != nil {
				return results[i].err
			}
			return nil
		})
	}
	return g.Wait()
}

func extractOne(wb grid.Workbook, name string, layout parser.Layout, label string) sheetResult {
	s, err := wb.Sheet(name)
	if err != nil {
		return sheetResult{err: NewExtractionError(name, "sheet", err)}
	}

	b, err := parser.DiscoverBounds(s, layout)
	if err != nil {
		return sheetResult{err: NewExtractionError(name, "bounds", err)}
	}
	log.Debug().Str("sheet", name).Stringer("bounds", b).Msg("Resolved bounds")

	series, errs := parser.ExtractSheet(s, b, layout, label)
	return sheetResult{series: series, errs: errs}
}

// fold merges one sheet's contribution into the running dataset.
func fold(res *Result, name, label string, r sheetResult) {
	rep := SheetReport{Sheet: name, Label: label, Status: SheetOK}

	if r.err != nil {
		rep.Status = SheetFailed
		rep.Errors = 1
		res.Report.Sheets = append(res.Report.Sheets, rep)
		res.Report.Errors = append(res.Report.Errors, r.err)
		log.Error().Err(r.err).Str("sheet", name).Msg("Sheet skipped")
		return
	}

	b := r.series.Bounds
	rep.Bounds = &b
	rep.Entities = len(r.series.Entities)
	rep.Errors = len(r.errs)
	res.Report.Errors = append(res.Report.Errors, r.errs...)

	for _, entity := range r.series.Entities {
		rec := r.series.Series[entity]
		existing, ok := res.Dataset[entity]
		if !ok {
			res.Dataset[entity] = rec
			continue
		}
		merged, err := merge.Merge(existing, rec)
		if err != nil {
			rep.Errors++
			res.Report.Errors = append(res.Report.Errors,
				NewExtractionError(name, "merge", fmt.Errorf("entity %q: %w", entity, err)))
			log.Warn().Err(err).Str("sheet", name).Str("entity", entity).Msg("Merge inconsistency")
			if !errors.Is(err, ErrUnitConflict) {
				continue
			}
		}
		res.Dataset[entity] = merged
	}

	res.Report.Sheets = append(res.Report.Sheets, rep)
	log.Info().
		Str("sheet", name).
		Stringer("bounds", b).
		Int("entities", rep.Entities).
		Int("errors", rep.Errors).
		Msg("Sheet extracted")
}
