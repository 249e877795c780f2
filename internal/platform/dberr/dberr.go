// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr bridges raw pgx driver errors into [apperr.MetadataError],
// the only error shape the reducer is allowed to see. internal/pgdriver is
// the single place this package is imported — no other package should
// import pgx error types directly.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/pgview/internal/platform/apperr"
)

// Wrap inspects a driver error and classifies it into a [apperr.MetadataError].
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperr.NewMetadataError(apperr.MetadataQueryFailed, action+": no rows found", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.NewMetadataError(apperr.MetadataTimeout, action+": timed out", err)
	case errors.Is(err, context.Canceled):
		return apperr.NewMetadataError(apperr.MetadataTimeout, action+": cancelled", err)
	default:
		return apperr.NewMetadataError(apperr.MetadataQueryFailed, action+": "+err.Error(), err)
	}
}

// WrapConnect classifies a connection-establishment failure. Unlike [Wrap],
// every path here is a ConnectionFailed kind since the query never ran.
func WrapConnect(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.NewMetadataError(apperr.MetadataTimeout, "connection timed out", err)
	}
	return apperr.NewMetadataError(apperr.MetadataConnectionFailed, "connection failed: "+err.Error(), err)
}
