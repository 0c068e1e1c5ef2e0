package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRun(t *testing.T) {
	good := writeInput(t, "good.ir", statsSource)
	bad := writeInput(t, "bad.ir", `(module (func "f" (result)`)

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{name: "stdout", args: []string{good}, code: 0, stdout: `(op "gpu.alloc"`},
		{name: "verbose", args: []string{"-v", good}, code: 0, stdout: `(op "gpu.async.execute"`},
		{name: "parse error", args: []string{bad}, code: 1, stderr: "Error: parse " + bad},
		{name: "verbose parse error", args: []string{"-v", bad}, code: 1, stderr: "Error: parse " + bad},
		{name: "missing file", args: []string{filepath.Join(t.TempDir(), "none.ir")}, code: 1, stderr: "Error: read "},
		{name: "several inputs", args: []string{good, good}, code: 1, stderr: "several inputs need -outdir"},
		{name: "interactive without input", args: []string{"-i"}, code: 1, stderr: "Usage: gpuasync"},
		{name: "unknown flag", args: []string{"-nope"}, code: 2, stderr: "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			assert.Equal(t, tt.code, code, "stderr: %s", stderr.String())
			assert.Contains(t, stdout.String(), tt.stdout)
			assert.Contains(t, stderr.String(), tt.stderr)
		})
	}
}

func TestRun_OutputFile(t *testing.T) {
	in := writeInput(t, "in.ir", statsSource)
	out := filepath.Join(t.TempDir(), "out.ir")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-o", out, "-stats", in}, &stdout, &stderr), stderr.String())
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `(op "gpu.dealloc"`)
}

func TestRun_OutDir(t *testing.T) {
	a := writeInput(t, "a.ir", statsSource)
	b := writeInput(t, "b.ir", statsSource)
	dir := filepath.Join(t.TempDir(), "converted")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-outdir", dir, a, b}, &stdout, &stderr), stderr.String())
	for _, name := range []string{"a.ir", "b.ir"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
