package parser

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

// Options controls how delimited text is read.
type Options struct {
	Delimiter rune // defaults to ','
}

// ParseTable reads a delimited text file with a header row into a Table.
// Cells that are not finite numbers are stored as NaN and recorded in
// ParseErrors; rows with the wrong number of fields are skipped.
func ParseTable(filepath string, opts Options) (*Table, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	return ReadTable(file, filepath, opts)
}

// ReadTable is ParseTable over an arbitrary reader; source names the input in errors.
func ReadTable(r io.Reader, source string, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1 // ragged rows are reported per row, not fatal
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header row: %w", source, ErrEmptyTable)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", source, err)
	}
	seen := make(map[string]int, len(header))
	for i := range header {
		h := strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		// Duplicate names get a numeric suffix, the way pandas mangles them.
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
		} else {
			seen[h] = 1
		}
		header[i] = h
	}
	table := NewTable(source, header)

	rowIdx := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowIdx++
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row %d: %w", source, rowIdx, err)
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) != len(header) {
			table.ParseErrors = append(table.ParseErrors, fmt.Sprintf("Warning: %s row %d has %d fields, expected %d. Row skipped.", source, rowIdx, len(row), len(header)))
			continue
		}

		for i, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil || math.IsInf(v, 0) {
				table.ParseErrors = append(table.ParseErrors, fmt.Sprintf("Warning: %s row %d column %q: cannot use value %q. Using NaN.", source, rowIdx, header[i], cell))
				v = math.NaN()
			}
			table.Columns[header[i]] = append(table.Columns[header[i]], v)
		}
		table.Rows++
	}
	return table, nil
}

// requirePairs fetches two columns and keeps the rows where both are
// finite. Dropped rows are reported through the returned notes.
func requirePairs(t *Table, aCol, bCol string) ([]float64, []float64, []string, error) {
	a, err := t.Column(aCol)
	if err != nil {
		return nil, nil, nil, err
	}
	b, err := t.Column(bCol)
	if err != nil {
		return nil, nil, nil, err
	}

	var notes []string
	outA := make([]float64, 0, len(a))
	outB := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			notes = append(notes, fmt.Sprintf("Warning: %s data row %d has no usable %q/%q pair. Row dropped.", t.Source, i+1, aCol, bCol))
			continue
		}
		outA = append(outA, a[i])
		outB = append(outB, b[i])
	}
	if len(outA) == 0 {
		return nil, nil, notes, fmt.Errorf("%s: %w", t.Source, ErrEmptyTable)
	}
	return outA, outB, notes, nil
}

// VelocityProfileFrom extracts the wall-normal coordinate and streamwise
// velocity columns from a parsed table.
func VelocityProfileFrom(t *Table, yCol, uCol string) (VelocityProfile, []string, error) {
	y, u, notes, err := requirePairs(t, yCol, uCol)
	if err != nil {
		return VelocityProfile{}, notes, err
	}
	return VelocityProfile{Y: y, U: u}, notes, nil
}

// WallShearProfileFrom extracts the streamwise coordinate and wall shear
// stress columns from a parsed table.
func WallShearProfileFrom(t *Table, xCol, tauCol string) (WallShearProfile, []string, error) {
	x, tau, notes, err := requirePairs(t, xCol, tauCol)
	if err != nil {
		return WallShearProfile{}, notes, err
	}
	return WallShearProfile{X: x, Tau: tau}, notes, nil
}

// ParseVelocityProfile loads the velocity traverse file. The returned
// messages combine cell-level parse problems and dropped rows.
func ParseVelocityProfile(filepath, yCol, uCol string, opts Options) (VelocityProfile, []string, error) {
	t, err := ParseTable(filepath, opts)
	if err != nil {
		return VelocityProfile{}, nil, err
	}
	p, notes, err := VelocityProfileFrom(t, yCol, uCol)
	return p, append(t.ParseErrors, notes...), err
}

// ParseWallShearProfile loads the wall shear stress file.
func ParseWallShearProfile(filepath, xCol, tauCol string, opts Options) (WallShearProfile, []string, error) {
	t, err := ParseTable(filepath, opts)
	if err != nil {
		return WallShearProfile{}, nil, err
	}
	p, notes, err := WallShearProfileFrom(t, xCol, tauCol)
	return p, append(t.ParseErrors, notes...), err
}
