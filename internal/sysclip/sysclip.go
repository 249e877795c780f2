// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sysclip implements the ClipboardWriter port (spec.md §6) as a thin
wrapper around atotto/clipboard — the only concern this package owns is
translating that library's errors into pgview's error taxonomy.
*/
package sysclip

import (
	"errors"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/taibuivan/pgview/internal/platform/apperr"
)

// Writer copies text to the system clipboard.
type Writer struct{}

// NewWriter constructs a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write copies content to the system clipboard (spec.md §6: "error kinds
// CommandNotFound | WriteFailed").
func (w *Writer) Write(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return apperr.NewClipboardError(apperr.ClipboardCommandNotFound, err)
		}
		return apperr.NewClipboardError(apperr.ClipboardWriteFailed, err)
	}
	return nil
}
