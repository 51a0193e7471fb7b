// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.OutputDir)
	assert.Empty(t, cfg.DSN)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{
		EnvWorkers:   "3",
		EnvOutputDir: "/tmp/out",
		EnvEncoding:  "euc-kr",
		EnvLogLevel:  "debug",
		EnvDSN:       "postgres://localhost/ies",
	}))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Workers:   3,
		OutputDir: "/tmp/out",
		Encoding:  "euc-kr",
		LogLevel:  slog.LevelDebug,
		DSN:       "postgres://localhost/ies",
	}, cfg)
}

func TestFromEnv_Errors(t *testing.T) {
	for _, env := range []map[string]string{
		{EnvWorkers: "many"},
		{EnvWorkers: "0"},
		{EnvLogLevel: "chatty"},
	} {
		_, err := FromEnv(mapLookup(env))
		assert.Error(t, err, "%v", env)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("IES_WORKERS=5\nIES_ENCODING=windows-1252\n"), 0644))
	t.Setenv(EnvWorkers, "")
	t.Setenv(EnvEncoding, "")
	// godotenv doesn't override variables that are already set
	require.NoError(t, os.Unsetenv(EnvWorkers))
	require.NoError(t, os.Unsetenv(EnvEncoding))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, "windows-1252", cfg.Encoding)

	// a missing file is fine
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
