// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sysclip_test

import (
	"errors"
	"testing"

	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/sysclip"
)

// TestWriter_Write exercises the real system clipboard when one is
// available in the test environment, and verifies the error comes back
// as a classified ClipboardError when it isn't — headless CI typically
// has no clipboard utility installed.
func TestWriter_Write(t *testing.T) {
	w := sysclip.NewWriter()
	err := w.Write("pgview test")
	if err == nil {
		return
	}

	var clipErr *apperr.ClipboardError
	if !errors.As(err, &clipErr) {
		t.Fatalf("expected a classified ClipboardError, got %T: %v", err, err)
	}
}
