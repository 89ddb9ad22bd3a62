//go:build unix

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/creack/pty"
)

const (
	suBinary = "su"
	// suDrainGrace bounds how long the pty reader may linger after su exited.
	suDrainGrace = 500 * time.Millisecond
)

// geteuid is swapped in tests.
var geteuid = os.Geteuid //nolint:gochecknoglobals

// verifyWithSu checks password by running `su -c true -- username` behind a
// pty. It accepts only when su asked for a password, got it and exited 0.
// A root process is refused outright: su lets root switch users without a
// password, so its exit status says nothing about the password.
func verifyWithSu(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}

	if geteuid() == 0 {
		return ErrSuAsRoot
	}

	cmd := exec.CommandContext(ctx, suBinary, "-s", "/bin/sh", "-c", "true", "--", username)
	// su forks, kill the whole session started by pty.Start
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = suDrainGrace

	f, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("%w: start su: %w", ErrAuthBackend, err)
	}

	var prompted atomic.Bool

	readerDone := make(chan struct{})

	go func() {
		defer close(readerDone)
		answerPrompt(f, password, &prompted)
	}()

	err = cmd.Wait()
	_ = f.Close()

	select {
	case <-readerDone:
	case <-time.After(suDrainGrace):
	}

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%w: su: %w", ErrVerifyTimeout, ctx.Err())
	case !prompted.Load():
		return ErrNoPasswordPrompt
	case err == nil:
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ErrInvalidPassword
	}

	return fmt.Errorf("%w: su: %w", ErrAuthBackend, err)
}

// answerPrompt reads su output until the pty closes and writes password once,
// after the first line mentioning a password.
func answerPrompt(f io.ReadWriter, password string, prompted *atomic.Bool) {
	var seen strings.Builder

	buf := make([]byte, 1024) //nolint:mnd

	for {
		n, err := f.Read(buf)
		if n > 0 && !prompted.Load() {
			seen.Write(buf[:n])

			if strings.Contains(strings.ToLower(seen.String()), "password") {
				if _, errW := io.WriteString(f, password+"\n"); errW == nil {
					prompted.Store(true)
				}
			}
		}

		if err != nil {
			return
		}
	}
}
