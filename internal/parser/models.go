package parser

import "errors"

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("required column not found")
	// ErrEmptyTable is returned when a file has a header but no usable rows.
	ErrEmptyTable = errors.New("table has no data rows")
)

// Table is a header-addressed numeric table. Every column has Rows entries.
type Table struct {
	Source      string
	Headers     []string // in file order
	Columns     map[string][]float64
	Rows        int
	ParseErrors []string // non-fatal problems, one per skipped row or cell
}

// NewTable returns an empty table for the given headers.
func NewTable(source string, headers []string) *Table {
	t := &Table{
		Source:      source,
		Headers:     headers,
		Columns:     make(map[string][]float64, len(headers)),
		ParseErrors: make([]string, 0),
	}
	for _, h := range headers {
		t.Columns[h] = make([]float64, 0)
	}
	return t
}

// Column returns the named column or ErrMissingColumn.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.Columns[name]
	if !ok {
		return nil, &ColumnError{Source: t.Source, Column: name}
	}
	return col, nil
}

// ColumnError identifies the file and column that could not be found.
type ColumnError struct {
	Source string
	Column string
}

func (e *ColumnError) Error() string {
	return "column \"" + e.Column + "\" not found in " + e.Source
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// VelocityProfile holds one wall-normal traverse: Y[i] is the wall-normal
// position and U[i] the streamwise velocity at that point.
type VelocityProfile struct {
	Y []float64
	U []float64
}

// Len returns the number of samples.
func (p VelocityProfile) Len() int { return len(p.Y) }

// WallShearProfile holds the wall shear stress along the plate: X[i] is the
// streamwise position and Tau[i] the (signed) shear component at that point.
type WallShearProfile struct {
	X   []float64
	Tau []float64
}

// Len returns the number of samples.
func (p WallShearProfile) Len() int { return len(p.X) }
