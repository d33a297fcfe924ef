// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matfile = "examples/cdpm2/concrete.mat"

// execute runs the cdpm command with args and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(args, "--silent"))
	err := cmd.Execute()
	return buf.String(), err
}

// lastLine returns the last non-empty line of out
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return lines[len(lines)-1]
}

// runID extracts the run identifier printed by run
func runID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "run = ") {
			return strings.TrimSpace(strings.Split(strings.TrimPrefix(line, "run = "), ";")[0])
		}
	}
	t.Fatalf("output has no run id:\n%s", out)
	return ""
}

// writeFile writes content to a file in dir and returns its path
func writeFile(t *testing.T, dir, fn, content string) string {
	t.Helper()
	path := filepath.Join(dir, fn)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMats(t *testing.T) {
	out, err := execute(t, "mats", "--matfile", matfile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "C30 "))
	assert.Contains(t, lines[4], "dp")
	assert.Contains(t, lines[5], "lin-elast")

	out, err = execute(t, "mats", "--matfile", matfile, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name"  : "C30-bilinear"`)

	_, err = execute(t, "mats", "--matfile", "missing.mat")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "C30-bilinear", "--matfile", matfile, "--ndim", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `model "cdpm2", ndim = 1`)
	assert.Contains(t, out, "softening  = bilinear")
	assert.Contains(t, out, "nsig       = 1")

	out, err = execute(t, "check", "sand", "--matfile", matfile)
	require.NoError(t, err)
	assert.Contains(t, out, "K          = 1000")
	assert.Contains(t, out, "qy0        = 0.5")

	_, err = execute(t, "check", "C40", "--matfile", matfile)
	assert.Error(t, err)
	_, err = execute(t, "check", "C30", "--matfile", matfile, "--ndim", "4")
	assert.Error(t, err)
	_, err = execute(t, "check", "C30", "--matfile", matfile, "--enc", "xml")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "cdpm.yaml", "matfile: "+matfile+"\nndim: 2\n")

	// file
	out, err := execute(t, "check", "C30", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ndim = 2")

	// environment over file
	t.Setenv("CDPM_NDIM", "1")
	out, err = execute(t, "check", "C30", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ndim = 1")

	// flag over environment
	out, err = execute(t, "check", "C30", "--config", cfg, "--ndim", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "ndim = 3")

	// missing file given explicitly
	_, err = execute(t, "check", "C30", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "C30", "--matfile", matfile, "--ndim", "1",
		"--path", "examples/cdpm2/tension.pat", "--plotdir", dir, "--store", filepath.Join(dir, "ckpt.db"))
	require.NoError(t, err)
	id := runID(t, out)
	assert.NotEmpty(t, id)
	assert.Contains(t, out, "unloading")
	assert.Contains(t, out, "  120 ")
	for _, fn := range []string{"C30_exx_sxx.png", "C30_exx_omega.png", "C30_exx_kappa.png"} {
		_, err = os.Stat(filepath.Join(dir, fn))
		assert.NoError(t, err, fn)
	}

	// list runs
	out, err = execute(t, "restore", "--list", "--matfile", matfile, "--store", filepath.Join(dir, "ckpt.db"))
	require.NoError(t, err)
	assert.Contains(t, out, id)

	// errors
	_, err = execute(t, "run", "C30", "--matfile", matfile)
	assert.Error(t, err)
	_, err = execute(t, "run", "sand", "--matfile", matfile, "--ndim", "1", "--path", "examples/cdpm2/tension.pat")
	assert.Error(t, err)
	_, err = execute(t, "restore", "--matfile", matfile)
	assert.Error(t, err)
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "ckpt.db")
	full := `{"ex":[0, 4e-4, 0, 1e-3], "nincs":20}`

	// reference
	ref, err := execute(t, "run", "C30", "--matfile", matfile, "--ndim", "1",
		"--path", writeFile(t, dir, "full.pat", full))
	require.NoError(t, err)

	// interrupted run: the path file is extended afterwards
	pat := writeFile(t, dir, "growing.pat", `{"ex":[0, 4e-4], "nincs":20}`)
	out, err := execute(t, "run", "C30", "--matfile", matfile, "--ndim", "1", "--path", pat, "--store", store)
	require.NoError(t, err)
	id := runID(t, out)
	writeFile(t, dir, "growing.pat", full)

	// restore from increment 20
	out, err = execute(t, "restore", id, "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "restarting after increment 20")
	assert.Equal(t, lastLine(ref), lastLine(out))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lastLine(out)), "60 "))

	// restoring a finished run does nothing
	out, err = execute(t, "restore", id, "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "restarting after increment 60")
	assert.Equal(t, lastLine(ref), lastLine(out))

	_, err = execute(t, "restore", "missing", "--store", store)
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	pat := writeFile(t, dir, "tension.pat", `{"ex":[0, 2e-4], "nincs":10}`)
	out, err := execute(t, "batch", "C30", "--matfile", matfile, "--path", pat, "--points", "5", "--workers", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[5]), "4 "))

	// the scaled paths end at 0.8 and 1.2 times the path strain
	assert.Contains(t, lines[1], "1.600000e-04")
	assert.Contains(t, lines[5], "2.400000e-04")

	_, err = execute(t, "batch", "C30", "--matfile", matfile, "--path", pat, "--ndim", "1")
	assert.Error(t, err)
	_, err = execute(t, "batch", "C30", "--matfile", matfile, "--path", pat, "--points", "0")
	assert.Error(t, err)
}

func TestScales(t *testing.T) {
	assert.Equal(t, []float64{1}, scales(1, 0.3))
	sc := scales(3, 0.5)
	require.Len(t, sc, 3)
	assert.InDelta(t, 0.5, sc[0], 1e-15)
	assert.InDelta(t, 1.0, sc[1], 1e-15)
	assert.InDelta(t, 1.5, sc[2], 1e-15)
}
