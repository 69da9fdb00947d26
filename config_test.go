package gufunc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	opts, err = ParseOptions([]byte(`
min_side: 1
max_dims_extra: 2
dim_sides:
  n: {min: 2, max: 2}
arg_max_dims_extra:
  1: 3
excluded: [0]
unique: true
`))
	require.NoError(t, err)
	assert.Equal(t, Options{
		MinSide:         1,
		MaxSide:         DefaultMaxSide,
		MaxDimsExtra:    2,
		DimSides:        map[string]Bounds{"n": {Min: 2, Max: 2}},
		ArgMaxDimsExtra: map[int]int{1: 3},
		Excluded:        []int{0},
		Unique:          true,
	}, opts)

	_, err = ParseOptions([]byte("max_sides: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_sides")

	_, err = ParseOptions([]byte("min_side: [1\n"))
	require.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_side: 3\nmax_dims_extra: 1\n"), 0o644))
	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.MaxSide)
	assert.Equal(t, 1, opts.MaxDimsExtra)

	// Options loaded from a file build a Strategy like any other.
	s, err := New("(m,n),(n)->(m)", opts)
	require.NoError(t, err)
	assert.Equal(t, 1, s.maxSlots)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("unknown: 1\n"), 0o644))
	_, err = LoadOptions(badPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), badPath)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}
