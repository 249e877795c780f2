// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package appdir_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/appdir"
)

func TestWriter_GetCacheDir_CreatesDirectory(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	w := appdir.NewWriter()
	dir, err := w.GetCacheDir("demo")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, strings.HasSuffix(dir, filepath.Join("pgview", "demo")))
}

func TestWriter_GeneratePgcliRC_WritesHistoryPath(t *testing.T) {
	w := appdir.NewWriter()
	cacheDir := t.TempDir()

	path, err := w.GeneratePgcliRC(cacheDir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[main]")
	assert.Contains(t, string(data), filepath.Join(cacheDir, "pgcli_history"))
}
