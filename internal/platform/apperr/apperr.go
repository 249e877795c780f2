// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for pgview.

It provides a small family of typed errors that bridge low-level I/O failures
(driver errors, filesystem errors, exec failures) with the name-level error
kinds the reducer classifies on — never raw driver types.

Architecture:

  - Each typed error carries a Kind() string so callers can classify without
    string matching or type-switching on the concrete driver error.
  - Cause is kept for logging only and is never surfaced in a toast message.
  - FieldError powers the connection-profile validator's field-level detail.

Every error that crosses a port boundary into the reducer should already be
one of these types.
*/
package apperr

import "errors"

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// # Metadata errors (MetadataProvider port, spec.md §6/§7)

// MetadataErrorKind classifies a [MetadataError].
type MetadataErrorKind string

const (
	MetadataConnectionFailed MetadataErrorKind = "CONNECTION_FAILED"
	MetadataQueryFailed      MetadataErrorKind = "QUERY_FAILED"
	MetadataParseError       MetadataErrorKind = "PARSE_ERROR"
	MetadataInvalidJSON      MetadataErrorKind = "INVALID_JSON"
	MetadataCommandNotFound  MetadataErrorKind = "COMMAND_NOT_FOUND"
	MetadataTimeout          MetadataErrorKind = "TIMEOUT"
)

// MetadataError is returned by [ports.MetadataProvider] and [ports.QueryExecutor].
type MetadataError struct {
	Kind    MetadataErrorKind
	Message string
	Cause   error
}

func (e *MetadataError) Error() string { return e.Message }
func (e *MetadataError) Unwrap() error { return e.Cause }

// NewMetadataError constructs a [MetadataError] of the given kind.
func NewMetadataError(kind MetadataErrorKind, message string, cause error) *MetadataError {
	return &MetadataError{Kind: kind, Message: message, Cause: cause}
}

// # Connection store errors (ConnectionStore port)

// ConnectionStoreErrorKind classifies a [ConnectionStoreError].
type ConnectionStoreErrorKind string

const (
	ConnectionStoreVersionMismatch ConnectionStoreErrorKind = "VERSION_MISMATCH"
	ConnectionStoreRead            ConnectionStoreErrorKind = "READ"
	ConnectionStoreWrite           ConnectionStoreErrorKind = "WRITE"
	ConnectionStoreInvalidFormat   ConnectionStoreErrorKind = "INVALID_FORMAT"
	ConnectionStoreIO              ConnectionStoreErrorKind = "IO"
	ConnectionStoreDuplicateName   ConnectionStoreErrorKind = "DUPLICATE_NAME"
	ConnectionStoreNotFound        ConnectionStoreErrorKind = "NOT_FOUND"
)

// ConnectionStoreError is returned by [ports.ConnectionStore].
type ConnectionStoreError struct {
	Kind    ConnectionStoreErrorKind
	Message string
	// Found/Expected are populated only for VersionMismatch.
	Found, Expected uint32
	Cause           error
}

func (e *ConnectionStoreError) Error() string { return e.Message }
func (e *ConnectionStoreError) Unwrap() error { return e.Cause }

// NewConnectionStoreError constructs a [ConnectionStoreError] of the given kind.
func NewConnectionStoreError(kind ConnectionStoreErrorKind, message string, cause error) *ConnectionStoreError {
	return &ConnectionStoreError{Kind: kind, Message: message, Cause: cause}
}

// VersionMismatch constructs the version-mismatch variant used at startup.
func VersionMismatch(found, expected uint32) *ConnectionStoreError {
	return &ConnectionStoreError{
		Kind:     ConnectionStoreVersionMismatch,
		Message:  "connection store schema version mismatch",
		Found:    found,
		Expected: expected,
	}
}

// # Clipboard errors (ClipboardWriter port)

type ClipboardErrorKind string

const (
	ClipboardCommandNotFound ClipboardErrorKind = "COMMAND_NOT_FOUND"
	ClipboardWriteFailed     ClipboardErrorKind = "WRITE_FAILED"
)

type ClipboardError struct {
	Kind    ClipboardErrorKind
	Message string
	Cause   error
}

func (e *ClipboardError) Error() string { return e.Message }
func (e *ClipboardError) Unwrap() error { return e.Cause }

func NewClipboardError(kind ClipboardErrorKind, cause error) *ClipboardError {
	msg := "clipboard operation failed"
	if kind == ClipboardCommandNotFound {
		msg = "no clipboard utility is installed"
	}
	return &ClipboardError{Kind: kind, Message: msg, Cause: cause}
}

// # GraphViz errors (ErDiagramExporter port)

type GraphvizErrorKind string

const (
	GraphvizNotInstalled GraphvizErrorKind = "NOT_INSTALLED"
	GraphvizCommandFailed GraphvizErrorKind = "COMMAND_FAILED"
	GraphvizIO           GraphvizErrorKind = "IO"
)

type GraphvizError struct {
	Kind     GraphvizErrorKind
	Message  string
	ExitCode *int
	Cause    error
}

func (e *GraphvizError) Error() string { return e.Message }
func (e *GraphvizError) Unwrap() error { return e.Cause }

// NotInstalled constructs the error shown when the `dot` binary is missing,
// carrying the installation hint spec.md §6 requires.
func NotInstalled() *GraphvizError {
	return &GraphvizError{
		Kind:    GraphvizNotInstalled,
		Message: "GraphViz ('dot') is not installed; install it from https://graphviz.org/download/ to export ER diagrams",
	}
}

// CommandFailed constructs the error for a non-zero `dot` exit code.
func CommandFailed(exitCode int, cause error) *GraphvizError {
	code := exitCode
	return &GraphvizError{
		Kind:     GraphvizCommandFailed,
		Message:  "GraphViz failed to render the diagram",
		ExitCode: &code,
		Cause:    cause,
	}
}

// NewGraphvizError constructs a [GraphvizError] for kinds other than the
// dedicated NotInstalled/CommandFailed constructors (e.g. GraphvizIO).
func NewGraphvizError(kind GraphvizErrorKind, message string, cause error) *GraphvizError {
	return &GraphvizError{Kind: kind, Message: message, Cause: cause}
}

// # Sub-console errors

// ViewerLaunchError is returned when the pgcli sub-console fails to launch.
type ViewerLaunchError struct {
	Message string
	Cause   error
}

func (e *ViewerLaunchError) Error() string { return e.Message }
func (e *ViewerLaunchError) Unwrap() error { return e.Cause }

func NewViewerLaunchError(cause error) *ViewerLaunchError {
	return &ViewerLaunchError{Message: "failed to launch pgcli console", Cause: cause}
}

// # Connection-name errors (ConnectionProfile.Name validation)

type ConnectionNameErrorKind string

const (
	ConnectionNameEmpty   ConnectionNameErrorKind = "EMPTY"
	ConnectionNameTooLong ConnectionNameErrorKind = "TOO_LONG"
)

type ConnectionNameError struct {
	Kind    ConnectionNameErrorKind
	Message string
}

func (e *ConnectionNameError) Error() string { return e.Message }

func NewConnectionNameError(kind ConnectionNameErrorKind) *ConnectionNameError {
	msg := "connection name must not be empty"
	if kind == ConnectionNameTooLong {
		msg = "connection name must be 50 characters or fewer"
	}
	return &ConnectionNameError{Kind: kind, Message: msg}
}

// # Validation errors (field-level, used by [validate.Validator])

type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// # Helpers

// KindOf extracts the machine-readable kind string from any apperr type,
// or "" if err is not one of this package's types.
func KindOf(err error) string {
	var metaErr *MetadataError
	if errors.As(err, &metaErr) {
		return string(metaErr.Kind)
	}
	var storeErr *ConnectionStoreError
	if errors.As(err, &storeErr) {
		return string(storeErr.Kind)
	}
	var clipErr *ClipboardError
	if errors.As(err, &clipErr) {
		return string(clipErr.Kind)
	}
	var gvErr *GraphvizError
	if errors.As(err, &gvErr) {
		return string(gvErr.Kind)
	}
	var nameErr *ConnectionNameError
	if errors.As(err, &nameErr) {
		return string(nameErr.Kind)
	}
	return ""
}
