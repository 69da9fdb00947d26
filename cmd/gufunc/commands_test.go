package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/gufunc/signature"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := run("parse", "( m, n ),(n,p) -> (m,p)")
	require.NoError(t, err)
	assert.Equal(t, `signature: (m,n),(n,p)->(m,p)
input #0: (m,n) (rank 2)
input #1: (n,p) (rank 2)
output: (m,p) (rank 2)
names: m,n,p
`, out)

	_, err = run("parse", "(m,n)->(q)")
	var parseErr *signature.ParseError
	require.True(t, errors.As(err, &parseErr), "expected a *signature.ParseError, got %v", err)
}

func TestSampleCmd(t *testing.T) {
	out, err := run("sample", "(m,n),(n,p)->(m,p)", "-n", "4", "--seed", "3", "--min-side", "1", "--max-side", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Regexp(t, `^\([1-3],[1-3]\), \([1-3],[1-3]\) -> \([1-3],[1-3]\)$`, line)
	}

	// Same seed, same samples.
	again, err := run("sample", "(m,n),(n,p)->(m,p)", "-n", "4", "--seed", "3", "--min-side", "1", "--max-side", "3")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	// Flags override the config file.
	config := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(config, []byte("min_side: 2\nmax_side: 2\nmax_dims_extra: 3\n"), 0o644))
	out, err = run("sample", "(n),(n)->()", "-n", "3", "--config", config, "--max-dims-extra", "0")
	require.NoError(t, err)
	assert.Equal(t, "(2), (2) -> ()\n(2), (2) -> ()\n(2), (2) -> ()\n", out)

	// Signatures without names have a single possible sample.
	out, err = run("sample", "(3),(3)->()", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "(3), (3) -> ()\n(3), (3) -> ()\n", out)

	_, err = run("sample", "(n)->()", "--min-side", "3", "--max-side", "2")
	require.Error(t, err)
}

func TestInferCmd(t *testing.T) {
	out, err := run("infer", "(m,n),(n,p)->(m,p)", "4,2,3", "(3,5)")
	require.NoError(t, err)
	assert.Equal(t, "m=2\nn=3\np=5\noutput: (4,2,5)\n", out)

	out, err = run("infer", "(),()->()", "", "2")
	require.NoError(t, err)
	assert.Equal(t, "output: (2)\n", out)

	out, err = run("infer", "(m,n),(n,p)->(m,p,2)", "5,1,2,3", "7,3,4")
	require.NoError(t, err)
	assert.Equal(t, "m=2\nn=3\np=4\noutput: (5,7,2,4,2)\n", out)

	_, err = run("infer", "(m,n),(n,p)->(m,p)", "2,3", "4,5")
	require.Error(t, err)
	_, err = run("infer", "(n)->()", "x")
	require.Error(t, err)
}

func TestParseDims(t *testing.T) {
	for _, text := range []string{"", "()", " ( ) "} {
		dims, err := parseDims(text)
		require.NoError(t, err)
		assert.Empty(t, dims)
	}
	dims, err := parseDims(" 4, 0 ,1")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 0, 1}, dims)
	assert.Equal(t, "(4,0,1)", formatDims(dims))
	assert.Equal(t, "()", formatDims(nil))

	_, err = parseDims("1,,2")
	require.Error(t, err)
	_, err = parseDims("-1")
	require.Error(t, err)
}
