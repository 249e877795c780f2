// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package appdir implements the ConfigWriter port (spec.md §6) as a thin
wrapper around adrg/xdg, resolving the per-project cache directory and
generating the pgcli history config the sub-console launch needs.
*/
package appdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/taibuivan/pgview/internal/platform/constants"
)

// Writer resolves cache paths under the OS cache directory.
type Writer struct{}

// NewWriter constructs a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// GetCacheDir returns $XDG_CACHE_HOME/<app>/<project>, creating it if
// necessary (spec.md §6).
func (w *Writer) GetCacheDir(projectName string) (string, error) {
	dir := filepath.Join(xdg.CacheHome, constants.AppName, projectName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("appdir: failed to create cache directory: %w", err)
	}
	return dir, nil
}

// GeneratePgcliRC writes a pgclirc pointing its history file at
// cacheDir/pgcli_history and returns the written path (spec.md §6:
// "[main]\nhistory_file = <cache>/pgcli_history\n").
func (w *Writer) GeneratePgcliRC(cacheDir string) (string, error) {
	historyFile := filepath.Join(cacheDir, "pgcli_history")
	content := fmt.Sprintf("[main]\nhistory_file = %s\n", historyFile)

	path := filepath.Join(cacheDir, "pgclirc")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("appdir: failed to write pgclirc: %w", err)
	}
	return path, nil
}
