// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package subconsole launches the pgcli sub-console that [effect.OpenConsole]
requests (spec.md §4.2): suspend the TUI's raw-mode terminal, exec an
interactive child process, and resume once it exits. It is the one place
in pgview that shells out to another interactive program rather than a
batch tool (contrast internal/erexport's "dot" invocation), so terminal
suspension goes through the [ports.TuiSession] port rather than being
reimplemented here.
*/
package subconsole

import (
	"context"
	"os"
	"os/exec"

	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/ports"
)

// Launcher runs the pgcli console around a [ports.TuiSession] suspend/resume
// pair.
type Launcher struct {
	session ports.TuiSession
	binary  string
}

// NewLauncher constructs a Launcher that suspends/resumes session around
// each console run, invoking the "pgcli" binary on PATH.
func NewLauncher(session ports.TuiSession) *Launcher {
	return &Launcher{session: session, binary: "pgcli"}
}

// Launch suspends the terminal, execs pgcli against dsn, and resumes on
// every exit path once suspended — success, a non-zero exit, or a run
// error all go through the same deferred Resume call (spec.md §5:
// "Terminal suspension uses an RAII guard that resumes on all exit
// paths"). A failed Suspend itself never defers Resume: there is nothing
// to resume.
func (l *Launcher) Launch(ctx context.Context, dsn, pgclircPath string) error {
	if err := l.session.Suspend(); err != nil {
		return apperr.NewViewerLaunchError(err)
	}
	defer l.session.Resume()

	cmd := exec.CommandContext(ctx, l.binary, dsn)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if pgclircPath != "" {
		cmd.Env = append(os.Environ(), "PGCLIRC="+pgclircPath)
	}

	if err := cmd.Run(); err != nil {
		return apperr.NewViewerLaunchError(err)
	}
	return nil
}
