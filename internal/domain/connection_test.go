// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/domain"
)

/*
TestConnectionProfile_DSNRoundTrip verifies that ToDSN -> ParseDSN -> ToDSN
produces the same string, and that the masked variant never leaks the
password (spec.md §8 round-trip invariant).
*/
func TestConnectionProfile_DSNRoundTrip(t *testing.T) {
	profile, err := domain.NewConnectionProfile("laptop", "db.internal", 5432, "appdb", "reader", "s3cr3t!", domain.SslRequire)
	require.NoError(t, err)

	dsn := profile.ToDSN()

	host, port, database, username, password, sslMode, err := domain.ParseDSN(dsn)
	require.NoError(t, err)

	reparsed := domain.ConnectionProfile{
		Host: host, Port: port, Database: database,
		Username: username, Password: password, SslMode: sslMode,
	}
	assert.Equal(t, dsn, reparsed.ToDSN())

	masked := profile.ToMaskedDSN()
	assert.NotContains(t, masked, "s3cr3t!")
	assert.Contains(t, masked, "****")
	assert.False(t, strings.Contains(masked, profile.Password) && profile.Password != "")
}

/*
TestNewConnectionProfile_NameRules checks the name length/empty rules.
*/
func TestNewConnectionProfile_NameRules(t *testing.T) {
	_, err := domain.NewConnectionProfile("   ", "h", 5432, "d", "u", "p", domain.SslDisable)
	require.Error(t, err)

	longName := strings.Repeat("a", 51)
	_, err = domain.NewConnectionProfile(longName, "h", 5432, "d", "u", "p", domain.SslDisable)
	require.Error(t, err)

	_, err = domain.NewConnectionProfile("ok-name", "h", 5432, "d", "u", "p", domain.SslDisable)
	require.NoError(t, err)
}

/*
TestNormalizedName_Idempotent checks that folding twice equals folding once,
and that it is case-insensitive (spec.md §8).
*/
func TestNormalizedName_Idempotent(t *testing.T) {
	once := domain.NormalizedName("  My-DB  ")
	twice := domain.NormalizedName(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "my-db", once)
}

/*
TestValidateName_Kinds checks the dedicated ConnectionNameError kinds.
*/
func TestValidateName_Kinds(t *testing.T) {
	err := domain.ValidateName("")
	require.Error(t, err)

	err = domain.ValidateName(strings.Repeat("x", 51))
	require.Error(t, err)

	err = domain.ValidateName("fine")
	assert.NoError(t, err)
}
