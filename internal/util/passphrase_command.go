// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aplane-algo/apkeys/internal/crypto"
)

const (
	// PassphraseCommandTimeout bounds how long the helper may run.
	PassphraseCommandTimeout = 5 * time.Second

	// maxPassphraseOutputBytes is the maximum stdout size from the helper (8 KB).
	maxPassphraseOutputBytes = 8 * 1024
)

// PassphraseCommand is an external helper that prints the wallet passphrase
// on stdout, e.g. a password manager CLI.
type PassphraseCommand struct {
	Argv []string          `yaml:"argv" description:"Absolute path of the helper followed by its arguments"`
	Env  map[string]string `yaml:"env" description:"Environment for the helper (the process env is not inherited)"`
}

// Enabled reports whether a helper is configured.
func (c *PassphraseCommand) Enabled() bool {
	return c != nil && len(c.Argv) > 0
}

// Validate checks that argv[0] is an absolute path to an executable that
// is not group or world writable.
func (c *PassphraseCommand) Validate() error {
	if len(c.Argv) == 0 {
		return errors.New("passphrase_command: argv must be non-empty")
	}
	path := c.Argv[0]
	if !filepath.IsAbs(path) {
		return fmt.Errorf("passphrase_command: argv[0] must be an absolute path, got %q", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("passphrase_command: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("passphrase_command: %s is a directory, not an executable", path)
	}
	perm := info.Mode().Perm()
	if perm&0111 == 0 {
		return fmt.Errorf("passphrase_command: %s is not executable (mode %04o)", path, perm)
	}
	if perm&0022 != 0 {
		return fmt.Errorf("passphrase_command: %s is group or world writable (mode %04o)", path, perm)
	}
	return nil
}

// Run executes the helper and returns its output as the passphrase.
//
// Output contract:
//   - Exactly one trailing newline (or CRLF) is stripped
//   - Empty output and NUL bytes are rejected
//   - Output prefixed with "base64:" or "hex:" is decoded
//
// The caller is responsible for zeroing the result.
func (c *PassphraseCommand) Run(ctx context.Context) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, PassphraseCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...) //nolint:gosec // validated above
	cmd.Env = c.environ()
	// Run in its own process group so a timeout also kills children (sh -> sleep)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	var stdout bytes.Buffer
	defer func() {
		crypto.ZeroBytes(stdout.Bytes())
		stdout.Reset()
	}()
	lw := &limitedWriter{w: &stdout, remaining: maxPassphraseOutputBytes}
	cmd.Stdout = lw
	// A misbehaving helper could print secrets on stderr
	cmd.Stderr = io.Discard

	Debug("running passphrase command", "path", c.Argv[0])
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("passphrase_command: timed out after %s", PassphraseCommandTimeout)
		}
		return nil, fmt.Errorf("passphrase_command: command failed: %w", err)
	}
	if lw.truncated {
		return nil, fmt.Errorf("passphrase_command: stdout exceeded %d bytes", maxPassphraseOutputBytes)
	}

	output := stdout.Bytes()
	if n := len(output); n > 0 && output[n-1] == '\n' {
		output = output[:n-1]
		if n := len(output); n > 0 && output[n-1] == '\r' {
			output = output[:n-1]
		}
	}
	if len(output) == 0 {
		return nil, errors.New("passphrase_command: command produced empty output")
	}
	if bytes.IndexByte(output, 0) >= 0 {
		return nil, errors.New("passphrase_command: output contains NUL bytes")
	}
	return decodePassphraseOutput(output)
}

func (c *PassphraseCommand) environ() []string {
	env := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		env = append(env, k+"="+v)
	}
	return env
}

// decodePassphraseOutput handles base64: and hex: prefixed output, or copies raw bytes.
// []byte-native decoders avoid immutable string copies of the passphrase.
func decodePassphraseOutput(output []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(output, []byte("base64:")):
		encoded := output[len("base64:"):]
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
		n, err := base64.StdEncoding.Decode(decoded, encoded)
		if err != nil {
			crypto.ZeroBytes(decoded)
			return nil, fmt.Errorf("passphrase_command: invalid base64 output: %w", err)
		}
		return decoded[:n], nil
	case bytes.HasPrefix(output, []byte("hex:")):
		encoded := output[len("hex:"):]
		decoded := make([]byte, hex.DecodedLen(len(encoded)))
		n, err := hex.Decode(decoded, encoded)
		if err != nil {
			crypto.ZeroBytes(decoded)
			return nil, fmt.Errorf("passphrase_command: invalid hex output: %w", err)
		}
		return decoded[:n], nil
	default:
		return bytes.Clone(output), nil
	}
}

// limitedWriter stops writing after a byte limit and records the truncation.
// It always reports full writes so the helper does not see EPIPE-like errors.
type limitedWriter struct {
	w         io.Writer
	remaining int64
	truncated bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if int64(n) > lw.remaining {
		p = p[:lw.remaining]
		lw.truncated = true
	}
	if len(p) > 0 {
		written, err := lw.w.Write(p)
		lw.remaining -= int64(written)
		if err != nil {
			return written, err
		}
	}
	return n, nil
}
