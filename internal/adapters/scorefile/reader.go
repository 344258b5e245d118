// Package scorefile reads and writes tab-separated scores logs.
package scorefile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/okian/scoreplot/internal/domain/model"
)

// DefaultName is the conventional scores log file name.
const DefaultName = "scores.txt"

// NoneToken marks a missing value.
const NoneToken = "None"

// Read parses the scores log at path.
func Read(ctx context.Context, path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}

// Decode parses a scores log from r: a header row followed by one row per
// sample. Fields are 32-bit floats; NoneToken and empty fields are missing.
func Decode(ctx context.Context, r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyLog
	}
	if err != nil {
		return nil, wrapCSV(err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	tbl := model.NewTable(columns, nil)
	if !tbl.Has(model.ColSteps) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, model.ColSteps)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSV(err)
		}
		line, _ := cr.FieldPos(0)
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := parseField(field)
			if err != nil {
				return nil, &ParseError{Line: line, Column: columns[i], Value: field, Err: err}
			}
			row[i] = v
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	if tbl.Len() == 0 {
		return nil, ErrEmptyLog
	}
	return tbl, nil
}

func parseField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == NoneToken {
		return model.Missing, nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// wrapCSV turns csv reader errors (such as a wrong field count) into a
// ParseError.
func wrapCSV(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("read: %w", err)
}
