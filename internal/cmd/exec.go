package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/cargo-asm/internal/log"
)

// RunContext runs name with args in dir and returns stderr as the error
// message if it fails. A cancelled context is reported as ctx.Err().
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, nil, name, args...)
	return err
}

// OutputContext runs name with args in dir and returns its stdout.
// On failure, stderr becomes the error message.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, nil, name, args...)
}

// StreamContext runs name with args in dir, copying its stderr to progress
// while the command runs. Stdout is returned. The last stderr line is used
// as the error message on failure.
func StreamContext(ctx context.Context, dir string, progress io.Writer, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, progress, name, args...)
}

func run(ctx context.Context, dir string, progress io.Writer, name string, args ...string) ([]byte, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	if progress != nil {
		c.Stderr = io.MultiWriter(progress, &stderr)
	} else {
		c.Stderr = &stderr
	}

	err := c.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := errorMessage(stderr.String(), progress != nil); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// errorMessage picks the text used as error message. When stderr was already
// streamed to the user, only the last line is repeated.
func errorMessage(stderr string, streamed bool) string {
	msg := strings.TrimSpace(stderr)
	if !streamed || msg == "" {
		return msg
	}
	lines := strings.Split(msg, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
