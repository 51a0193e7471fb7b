// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bpowers/ies/internal/iestest"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := iestest.Build(name, []iestest.Column{
		{Name: "ClassID", Type: iestest.TypeFloat},
		{Name: "ClassName", Type: iestest.TypeString, Position: 1},
	}, []iestest.Row{
		{Values: []any{float32(1), "Potion"}},
		{Values: []any{float32(2), "Elixir"}},
	})
	require.NoError(t, err)
	path := filepath.Join(dir, name+".ies")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCmd_Info(t *testing.T) {
	path := writeSample(t, t.TempDir(), "item")

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"item"`)
	assert.Contains(t, out, "2 rows, 2 columns (1 numeric, 1 string)")
	assert.Contains(t, out, "ClassName")

	out, err = run(t, "info", "--json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"rows": 2`)

	_, err = run(t, "info", filepath.Join(t.TempDir(), "missing.ies"))
	assert.Error(t, err)
}

func TestCmd_Export(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	a := writeSample(t, inDir, "item")
	b := writeSample(t, inDir, "skill")

	_, err := run(t, "xlsx", "-j", "2", "-o", outDir, a, b)
	require.NoError(t, err)
	f, err := excelize.OpenFile(filepath.Join(outDir, "skill.xlsx"))
	require.NoError(t, err)
	rows, err := f.GetRows("skill")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ClassID", "ClassName"}, {"1", "Potion"}, {"2", "Elixir"}}, rows)
	require.NoError(t, f.Close())

	// without -o the output goes next to the input
	_, err = run(t, "json", a)
	require.NoError(t, err)
	b2, err := os.ReadFile(filepath.Join(inDir, "item.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "{\"ClassID\":1,\"ClassName\":\"Potion\"}\n{\"ClassID\":2,\"ClassName\":\"Elixir\"}\n", string(b2))

	// one bad file doesn't stop the good one
	bad := filepath.Join(inDir, "bad.ies")
	require.NoError(t, os.WriteFile(bad, []byte("short"), 0644))
	otherOut := t.TempDir()
	_, err = run(t, "json", "-o", otherOut, bad, a)
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(otherOut, "item.jsonl"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(otherOut, "bad.jsonl"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCmd_Describe(t *testing.T) {
	path := writeSample(t, t.TempDir(), "item")
	out, err := run(t, "describe", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "ClassID"))
}

func TestCmd_BadFlags(t *testing.T) {
	path := writeSample(t, t.TempDir(), "item")
	_, err := run(t, "--encoding", "klingon", "info", path)
	assert.Error(t, err)
	_, err = run(t, "--workers", "0", "info", path)
	assert.Error(t, err)
	_, err = run(t, "--log-level", "loud", "info", path)
	assert.Error(t, err)
	_, err = run(t, "--log-level", "debug", "--encoding", "euc-kr", "info", path)
	assert.NoError(t, err)
}

func TestCmd_LoadNeedsDSN(t *testing.T) {
	t.Setenv("IES_DSN", "")
	path := writeSample(t, t.TempDir(), "item")
	_, err := run(t, "load", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IES_DSN")
}

func TestForEachFile(t *testing.T) {
	paths := []string{"a", "b", "c", "d"}
	errBoom := errors.New("boom")

	var calls atomic.Int32
	err := forEachFile(context.Background(), paths, 2, false, discardLogger, func(_ context.Context, path string) error {
		calls.Add(1)
		if path == "b" || path == "d" {
			return errBoom
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "2 of 4 files failed")
	assert.Equal(t, int32(4), calls.Load())

	err = forEachFile(context.Background(), paths, 1, true, discardLogger, func(_ context.Context, path string) error {
		if path == "a" {
			return errBoom
		}
		return nil
	})
	assert.ErrorIs(t, err, errBoom)

	err = forEachFile(context.Background(), paths, 3, false, discardLogger, func(context.Context, string) error { return nil })
	assert.NoError(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "item.xlsx"), outputPath(filepath.Join("data", "item.ies"), "", ".xlsx"))
	assert.Equal(t, filepath.Join("out", "item.xlsx"), outputPath(filepath.Join("data", "item.ies"), "out", ".xlsx"))
	assert.Equal(t, filepath.Join("out", "noext.jsonl"), outputPath("noext", "out", ".jsonl"))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, writeFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	// a failed write leaves the old contents and no temp files
	err = writeFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("failed")
	})
	assert.Error(t, err)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "item_equip", tableName("/x/Item-Equip.ies"))
	assert.Equal(t, "skill_2", tableName("skill 2.ies"))
}
