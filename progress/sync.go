package progress

import (
	"context"

	"go.uber.org/zap"

	"github.com/wardtools/callings-app-sheets/callings"
)

// Sheet is a worksheet that can be read and overwritten as a whole, starting
// from the top left cell.
type Sheet interface {
	Values(ctx context.Context) ([][]string, error)
	Update(ctx context.Context, rows [][]string) error
}

type Options struct {
	DryRun bool
}

type Result struct {
	Rows     int
	Unmapped []string
	Err      *Error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Sync rebuilds the progress sheet from the calling form responses. Failures are
// returned in the result rather than as an error so that the caller can log
// them and carry on with its housekeeping.
func Sync(ctx context.Context, source, destination Sheet, options Options, log *zap.Logger) Result {
	result := Result{}

	// ... get form responses
	rows, err := source.Values(ctx)
	if err != nil {
		result.Err = Wrap(FetchError, err)
		return result
	}

	log.Debug("retrieved form responses", zap.Int("rows", len(rows)))

	// ... build progress table
	if len(rows) > 0 {
		result.Unmapped = callings.Unmapped(rows[0])
		for _, h := range result.Unmapped {
			log.Warn("unmapped form response column", zap.String("column", h))
		}
	}

	table, err := callings.MakeTable(rows)
	if err != nil {
		result.Err = Wrap(TransformError, err)
		return result
	}

	progress, err := callings.Filter(table)
	if err != nil {
		result.Err = Wrap(TransformError, err)
		return result
	}

	result.Rows = len(progress.Records)

	if options.DryRun {
		log.Debug("dry run - progress sheet not updated", zap.Int("callings", result.Rows))
		return result
	}

	if err := Replace(ctx, destination, progress.Rows(), log); err != nil {
		result.Err = err
	}

	return result
}

// Replace overwrites a worksheet with the rows. The existing data rows are
// blanked first so that no stale rows are left below the new ones.
func Replace(ctx context.Context, sheet Sheet, rows [][]string, log *zap.Logger) *Error {
	// ... clear existing rows
	current, err := sheet.Values(ctx)
	if err != nil {
		return Wrap(FetchError, err)
	}

	if len(current) > 1 {
		log.Debug("clearing worksheet", zap.Int("rows", len(current)-1))
		if err := sheet.Update(ctx, blank(current)); err != nil {
			return Wrap(WriteError, err)
		}
	}

	// ... write new rows
	log.Debug("writing worksheet", zap.Int("rows", len(rows)))
	if err := sheet.Update(ctx, rows); err != nil {
		return Wrap(WriteError, err)
	}

	return nil
}

// blank returns a grid the size of rows with the header kept and every other
// cell set to "".
func blank(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	header := make([]string, width)
	copy(header, rows[0])

	blanked := [][]string{header}
	for range rows[1:] {
		blanked = append(blanked, make([]string, width))
	}

	return blanked
}
