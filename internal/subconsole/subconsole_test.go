// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subconsole_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/subconsole"
)

type fakeSession struct {
	suspended, resumed bool
	suspendErr         error
}

func (f *fakeSession) Suspend() error {
	f.suspended = true
	return f.suspendErr
}

func (f *fakeSession) Resume() error {
	f.resumed = true
	return nil
}

func TestLaunch_ResumesEvenWhenBinaryMissing(t *testing.T) {
	session := &fakeSession{}
	launcher := subconsole.NewLauncher(session)

	err := launcher.Launch(context.Background(), "postgres://x", "")

	require.Error(t, err, "pgcli is not expected to be installed in this test environment")
	var launchErr *apperr.ViewerLaunchError
	assert.ErrorAs(t, err, &launchErr)
	assert.True(t, session.suspended)
	assert.True(t, session.resumed)
}

func TestLaunch_SuspendFailure_NeverExecs(t *testing.T) {
	session := &fakeSession{suspendErr: assertErr}
	launcher := subconsole.NewLauncher(session)

	err := launcher.Launch(context.Background(), "postgres://x", "")

	require.Error(t, err)
	assert.False(t, session.resumed, "Resume is only deferred after a successful Suspend")
}

var assertErr = &apperr.ViewerLaunchError{Message: "suspend failed"}
