// Package loader reads the agent time-on-status CSV export into typed
// interval records.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

// Column names of the export header row
const (
	ColAgent          = "Agent"
	ColStartTime      = "Start Time"
	ColEndTime        = "End Time"
	ColAvailable      = "Available Time"
	ColHandling       = "Handling Time"
	ColWrapUp         = "Wrap Up Time"
	ColWorkingOffline = "Working Offline Time"
	ColOnBreak        = "On Break Time"
	ColBusy           = "Busy Time"
	ColLoggedIn       = "Logged In Time"
	ColOffering       = "Offering Time"
)

// RequiredColumns lists every column Parse needs, in export order
var RequiredColumns = []string{
	ColAgent,
	ColStartTime,
	ColEndTime,
	ColAvailable,
	ColHandling,
	ColWrapUp,
	ColWorkingOffline,
	ColOnBreak,
	ColBusy,
	ColLoggedIn,
	ColOffering,
}

// Options configures a load
type Options struct {
	SourcePath string
}

// Load opens opts.SourcePath and parses every row. Nothing is cached; each
// call re-reads the file.
func Load(ctx context.Context, opts Options) ([]types.IntervalRecord, error) {
	if opts.SourcePath == "" {
		return nil, ErrNoSource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(opts.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads CSV data from r and returns one IntervalRecord per data row.
// Columns are located by header name, so order and extra columns do not
// matter. The first bad value fails the whole parse.
func Parse(r io.Reader) ([]types.IntervalRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []types.IntervalRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// indexColumns maps each required column to its position in header
func indexColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	idx := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := positions[col]
		if !ok {
			return nil, &ParseError{Line: 1, Column: col, Err: ErrMissingColumn}
		}
		idx[col] = i
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int, line int) (types.IntervalRecord, error) {
	field := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", &ParseError{Line: line, Column: col, Err: ErrInvalidFieldCount}
		}
		return row[i], nil
	}

	var rec types.IntervalRecord

	agent, err := field(ColAgent)
	if err != nil {
		return rec, err
	}
	rec.Agent = agent

	timestamps := []struct {
		col string
		dst *time.Time
	}{
		{ColStartTime, &rec.StartTime},
		{ColEndTime, &rec.EndTime},
	}
	for _, ts := range timestamps {
		raw, err := field(ts.col)
		if err != nil {
			return rec, err
		}
		t, err := ParseTimestamp(raw)
		if err != nil {
			return rec, &ParseError{Line: line, Column: ts.col, Value: raw, Err: err}
		}
		*ts.dst = t
	}

	durations := []struct {
		col string
		dst *time.Duration
	}{
		{ColAvailable, &rec.Available},
		{ColHandling, &rec.Handling},
		{ColWrapUp, &rec.WrapUp},
		{ColWorkingOffline, &rec.WorkingOffline},
		{ColOnBreak, &rec.OnBreak},
		{ColBusy, &rec.Busy},
		{ColLoggedIn, &rec.LoggedIn},
		{ColOffering, &rec.Offering},
	}
	for _, d := range durations {
		raw, err := field(d.col)
		if err != nil {
			return rec, err
		}
		v, err := ParseDuration(raw)
		if err != nil {
			return rec, &ParseError{Line: line, Column: d.col, Value: raw, Err: err}
		}
		*d.dst = v
	}

	return rec, nil
}
