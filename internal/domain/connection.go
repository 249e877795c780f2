// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package domain holds the immutable records the rest of pgview operates on:
connection profiles, database metadata, table descriptors, and query
results. Nothing in this package performs I/O — it is pure data plus the
small amount of logic (DSN construction, quoting-free accessors) that is
naturally part of the value itself.
*/
package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/platform/constants"
	"github.com/taibuivan/pgview/internal/platform/validate"
)

// # Connection identity

// ConnectionId is an opaque unique identifier for a saved connection.
type ConnectionId string

// NewConnectionId generates a new random [ConnectionId].
func NewConnectionId() ConnectionId {
	return ConnectionId(uuid.NewString())
}

// SslMode enumerates the PostgreSQL sslmode values pgview accepts.
type SslMode string

const (
	SslDisable    SslMode = "disable"
	SslAllow      SslMode = "allow"
	SslPrefer     SslMode = "prefer"
	SslRequire    SslMode = "require"
	SslVerifyCA   SslMode = "verify-ca"
	SslVerifyFull SslMode = "verify-full"
)

// validSslModes is the allowed set, in declaration order, for validation.
var validSslModes = []string{
	string(SslDisable), string(SslAllow), string(SslPrefer),
	string(SslRequire), string(SslVerifyCA), string(SslVerifyFull),
}

// # ConnectionProfile

// ConnectionProfile describes one saved PostgreSQL connection.
type ConnectionProfile struct {
	ID       ConnectionId
	Name     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SslMode  SslMode
}

// NewConnectionProfile validates and constructs a [ConnectionProfile]. The
// ID is generated; callers that need a stable ID (e.g. re-saving an
// existing profile) should set p.ID after construction.
func NewConnectionProfile(name, host string, port int, database, username, password string, sslMode SslMode) (ConnectionProfile, error) {
	trimmed := strings.TrimSpace(name)

	v := &validate.Validator{}
	v.Required("name", trimmed)
	v.MaxLen("name", trimmed, constants.ConnectionNameMaxLen)
	v.Range("port", port, 1, 65535)
	v.OneOf("ssl_mode", string(sslMode), validSslModes...)
	if err := v.Err(); err != nil {
		return ConnectionProfile{}, err
	}

	return ConnectionProfile{
		ID:       NewConnectionId(),
		Name:     trimmed,
		Host:     host,
		Port:     port,
		Database: database,
		Username: username,
		Password: password,
		SslMode:  sslMode,
	}, nil
}

// ValidateName re-checks the name rule in isolation (spec.md §3: "name must
// be non-empty and <=50 characters after trimming"), surfacing the
// dedicated [apperr.ConnectionNameError] kinds the reducer classifies on.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return apperr.NewConnectionNameError(apperr.ConnectionNameEmpty)
	}
	if len([]rune(trimmed)) > constants.ConnectionNameMaxLen {
		return apperr.NewConnectionNameError(apperr.ConnectionNameTooLong)
	}
	return nil
}

// NormalizedName returns the trimmed, case-folded form used for uniqueness
// comparisons. Folding twice is a no-op, matching spec.md's idempotence
// requirement.
func NormalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ToDSN renders the canonical PostgreSQL connection string.
//
//	postgres://<url-encoded user>:<url-encoded pw>@<host>:<port>/<url-encoded db>?sslmode=<mode>
func (p ConnectionProfile) ToDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.Username, p.Password),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	q := url.Values{}
	q.Set("sslmode", string(p.SslMode))
	u.RawQuery = q.Encode()
	return u.String()
}

// ToMaskedDSN renders the DSN with the password replaced by "****", safe to
// log or display.
func (p ConnectionProfile) ToMaskedDSN() string {
	masked := p
	masked.Password = "****"
	return masked.ToDSN()
}

// ParseDSN parses a canonical DSN back into the fields [ConnectionProfile.ToDSN]
// produces. It is the inverse half of the round-trip invariant in spec.md §8.
func ParseDSN(dsn string) (host string, port int, database, username, password string, sslMode SslMode, err error) {
	u, perr := url.Parse(dsn)
	if perr != nil {
		return "", 0, "", "", "", "", fmt.Errorf("domain: invalid DSN: %w", perr)
	}

	username = u.User.Username()
	password, _ = u.User.Password()
	database = strings.TrimPrefix(u.Path, "/")
	sslMode = SslMode(u.Query().Get("sslmode"))

	host = u.Hostname()
	portStr := u.Port()
	if portStr != "" {
		if _, serr := fmt.Sscanf(portStr, "%d", &port); serr != nil {
			return "", 0, "", "", "", "", fmt.Errorf("domain: invalid port %q: %w", portStr, serr)
		}
	}
	return host, port, database, username, password, sslMode, nil
}
