package parser

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadTable_ParaViewExport(t *testing.T) {
	in := `"U:0","U:1","U:2","Points:0","Points:1","Points:2"
0,0,0,1,0,0.05
0.5,0.01,0,1,0.01,0.05
1,0,0,1,0.1,0.05
`
	table, err := ReadTable(strings.NewReader(in), "data1.txt", Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows)
	assert.Equal(t, []string{"U:0", "U:1", "U:2", "Points:0", "Points:1", "Points:2"}, table.Headers)
	assert.Equal(t, []float64{0, 0.01, 0.1}, table.Columns["Points:1"])
	assert.Equal(t, []float64{0, 0.5, 1}, table.Columns["U:0"])
	assert.Empty(t, table.ParseErrors)
}

func TestReadTable_BadCellsBecomeNaN(t *testing.T) {
	in := "x,y\n1,2\n3,oops\n4\n5,6\n"
	table, err := ReadTable(strings.NewReader(in), "t.csv", Options{})
	require.NoError(t, err)

	require.Equal(t, 3, table.Rows)
	assert.True(t, math.IsNaN(table.Columns["y"][1]))
	assert.Len(t, table.ParseErrors, 2) // bad cell and short row
}

func TestReadTable_DelimiterAndDuplicates(t *testing.T) {
	in := "a;a;b\n1;2;3\n"
	table, err := ReadTable(strings.NewReader(in), "t.csv", Options{Delimiter: ';'})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a.1", "b"}, table.Headers)
	assert.Equal(t, []float64{2}, table.Columns["a.1"])
}

func TestReadTable_Empty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), "empty.csv", Options{})
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestParseVelocityProfile(t *testing.T) {
	path := writeFile(t, "data1.txt", "Points:1,U:0\n0.0,0.0\n0.01,0.5\nnan,0.7\n0.1,1.0\n")

	p, notes, err := ParseVelocityProfile(path, "Points:1", "U:0", Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []float64{0, 0.01, 0.1}, p.Y)
	assert.Equal(t, []float64{0, 0.5, 1.0}, p.U)
	assert.Len(t, notes, 1)
}

func TestParseWallShearProfile_MissingColumn(t *testing.T) {
	path := writeFile(t, "data2.txt", "Points:0,tau\n1.0,0.002\n")

	_, _, err := ParseWallShearProfile(path, "Points:0", "wallShearStress:0", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)

	var colErr *ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "wallShearStress:0", colErr.Column)
	assert.Contains(t, err.Error(), path)
}

func TestParseWallShearProfile_MissingFile(t *testing.T) {
	_, _, err := ParseWallShearProfile(filepath.Join(t.TempDir(), "nope.txt"), "Points:0", "wallShearStress:0", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseWallShearProfile_NoUsableRows(t *testing.T) {
	path := writeFile(t, "data2.txt", "Points:0,wallShearStress:0\n")

	_, _, err := ParseWallShearProfile(path, "Points:0", "wallShearStress:0", Options{})
	assert.ErrorIs(t, err, ErrEmptyTable)
}
