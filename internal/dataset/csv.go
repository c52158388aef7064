package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// Row represents a single CSV row with column name to value mapping.
// An empty value means the cell was missing.
type Row map[string]string

// Dataset is a parsed CSV table. Columns is the header in file order; rows
// may not carry every column.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows. A nil Dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether there are no rows.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// HasColumn reports whether the header declares column.
func (d *Dataset) HasColumn(column string) bool {
	if d == nil {
		return false
	}
	return slices.Contains(d.Columns, column)
}

// Value returns the cell for column and whether it is present and non-empty.
func (r Row) Value(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Group is the subset of rows sharing one value of a column.
type Group struct {
	Key  string
	Rows *Dataset
}

// GroupBy partitions rows by the non-missing values of column. Groups are
// returned in order of first appearance. Rows with a missing value belong
// to no group. Returns nil when the column is absent.
func (d *Dataset) GroupBy(column string) []Group {
	if !d.HasColumn(column) {
		return nil
	}

	index := make(map[string]int)
	var groups []Group
	for _, row := range d.Rows {
		v, ok := row.Value(column)
		if !ok {
			continue
		}
		i, seen := index[v]
		if !seen {
			i = len(groups)
			index[v] = i
			groups = append(groups, Group{Key: v, Rows: &Dataset{Columns: d.Columns}})
		}
		groups[i].Rows.Rows = append(groups[i].Rows.Rows, row)
	}
	return groups
}

// Parse reads CSV from r. The first record is the header. Short rows are
// padded with missing values; rows longer than the header are an error.
// Empty input yields an empty Dataset with no columns.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: parse header: %w", err)
	}

	ds := &Dataset{Columns: header}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: parse: %w", err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", line, len(record), len(header))
		}
		row := make(Row, len(header))
		for j, h := range header {
			if j < len(record) {
				row[h] = record[j]
			} else {
				row[h] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// LoadCSV reads a CSV file such as a bulk download from the EPC register.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
