// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	errNegative    = errors.New("must be non-negative")
	errNotIntegral = errors.New("must be a whole number")
)

// Load reads the CSV file at path into a Dataset.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided dataset path
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // read-only file

	return Read(f, path)
}

// Read parses CSV data from r. Source labels errors and the returned Dataset.
func Read(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: source, Err: ErrEmptyFile}
		}
		return nil, &LoadError{Path: source, Err: fmt.Errorf("read header: %w", err)}
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	idx, missing := locateColumns(columns)
	if len(missing) > 0 {
		return nil, &LoadError{Path: source, Missing: missing, Err: ErrMissingColumns}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var line int
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &ParseError{Path: source, Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)

		rec, perr := parseRow(row, columns, idx)
		if perr != nil {
			perr.Path = source
			perr.Line = line
			return nil, perr
		}
		records = append(records, rec)
	}

	return New(source, columns, records), nil
}

type columnIndex struct {
	year, orgType, method, records int
}

// locateColumns finds the required headers and reports any that are absent.
func locateColumns(columns []string) (columnIndex, []string) {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		key := strings.ToLower(c)
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := pos[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := columnIndex{
		year:    find(ColumnYear),
		orgType: find(ColumnOrganizationType),
		method:  find(ColumnMethod),
		records: find(ColumnRecords),
	}
	return idx, missing
}

// parseRow converts one CSV row. The returned ParseError has no path or line;
// the caller fills those in.
func parseRow(row, columns []string, idx columnIndex) (Record, *ParseError) {
	fields := make(map[string]string, len(columns))
	for i, c := range columns {
		if i < len(row) {
			fields[c] = strings.TrimSpace(row[i])
		}
	}

	yearText := fields[columns[idx.year]]
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return Record{}, &ParseError{Column: columns[idx.year], Value: yearText, Err: err}
	}

	recordsText := fields[columns[idx.records]]
	records, present, err := ParseRecords(recordsText)
	if err != nil {
		return Record{}, &ParseError{Column: columns[idx.records], Value: recordsText, Err: err}
	}

	return Record{
		Year:             year,
		OrganizationType: fields[columns[idx.orgType]],
		Method:           fields[columns[idx.method]],
		Records:          records,
		HasRecords:       present,
		Fields:           fields,
	}, nil
}

// ParseRecords coerces a Records cell. Empty text is a missing value and
// yields (0, false, nil). Thousands separators and integral float notation
// ("3000.0", "1.5e6") are accepted.
func ParseRecords(s string) (int64, bool, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, true, errNegative
		}
		return n, true, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, true, errNotIntegral
	}
	if f < 0 {
		return 0, true, errNegative
	}
	return int64(f), true, nil
}
