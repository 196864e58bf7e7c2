// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn replays scripted output and records what is written.
type fakeConn struct {
	mu      sync.Mutex
	written bytes.Buffer
	chunks  []string
	eof     bool
	readErr error
}

func (c *fakeConn) Read(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.chunks) == 0 {
		if c.readErr != nil {
			return 0, c.readErr
		}
		if c.eof {
			return 0, io.EOF
		}
		return 0, nil
	}
	n := copy(b, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}

func (c *fakeConn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.written.Write(b)
}

func (c *fakeConn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.written.String()
}

func noDelay(t *testing.T) {
	t.Helper()

	orig := commandDelay
	commandDelay = 0
	t.Cleanup(func() { commandDelay = orig })
}

func TestRun(t *testing.T) {
	noDelay(t)

	conn := &fakeConn{chunks: []string{"R1#show clock\r\n", "*10:00:00.000 UTC Mon Mar 1 1993\r\n", "R1#"}}

	out, err := Run(context.Background(), conn, []string{"show clock"}, 50*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, "enable\nshow clock\n", conn.Written())
	assert.Equal(t, "R1#show clock\n*10:00:00.000 UTC Mon Mar 1 1993\nR1#", out)
}

func TestRunReadError(t *testing.T) {
	noDelay(t)

	conn := &fakeConn{chunks: []string{"partial"}, readErr: errors.New("port unplugged")}

	out, err := Run(context.Background(), conn, []string{"show version"}, time.Second)
	assert.Error(t, err)
	assert.Equal(t, "partial", out)
}

func TestRunCancelled(t *testing.T) {
	noDelay(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &fakeConn{}, []string{"show version"}, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

const runningConfig = "Building configuration...\r\n\r\n" +
	"Current configuration : 1024 bytes\r\n!\r\nhostname R1\r\n!\r\nline vty 0 4\r\n login local\r\n!\r\nend\r\n"

func TestBackup(t *testing.T) {
	noDelay(t)

	conn := &fakeConn{chunks: []string{
		"R1#show running-config\r\n",
		runningConfig[:40],
		runningConfig[40:],
		"R1#",
	}}

	var buf bytes.Buffer

	start := time.Now()
	n, err := Backup(context.Background(), conn, &buf)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 5*time.Second, "backup stops at the end line")
	assert.Equal(t, "enable\nterminal length 0\nshow running-config\n", conn.Written())
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "hostname R1\n")
	assert.True(t, strings.HasSuffix(buf.String(), "end\n"))
	assert.NotContains(t, buf.String(), "\r")
}

func TestBackupEOF(t *testing.T) {
	noDelay(t)

	conn := &fakeConn{chunks: []string{"hostname R1\r\n"}, eof: true}

	var buf bytes.Buffer
	n, err := Backup(context.Background(), conn, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("hostname R1\n")), n)
}

func TestHasEndLine(t *testing.T) {
	tests := map[string]bool{
		"hostname R1\r\nend\r\n": true,
		"end":                    true,
		" end \n":                true,
		"backend\n":              false,
		"end of line\n":          false,
		"":                       false,
	}

	for in, want := range tests {
		assert.Equal(t, want, hasEndLine([]byte(in)), "input %q", in)
	}
}

func TestPingTarget(t *testing.T) {
	noDelay(t)

	for _, target := range []string{"", "10.0.0.1; reload", "a\nb"} {
		_, err := Ping(context.Background(), &fakeConn{}, target)
		assert.ErrorIs(t, err, clerrors.ErrIncorrectInput)

		_, err = Traceroute(context.Background(), &fakeConn{}, target)
		assert.ErrorIs(t, err, clerrors.ErrIncorrectInput)
	}
}

func TestConsole(t *testing.T) {
	conn := &fakeConn{chunks: []string{"Router>"}}

	var out syncBuffer
	in := strings.NewReader("show version\r" + string(rune(EscapeChar)) + "ignored")

	err := Console(context.Background(), conn, in, &out)
	require.NoError(t, err)

	assert.Equal(t, "show version\r", conn.Written())
}

func TestConsoleEOF(t *testing.T) {
	conn := &fakeConn{}

	err := Console(context.Background(), conn, strings.NewReader("enable\n"), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "enable\n", conn.Written())
}

func TestConsoleOutput(t *testing.T) {
	conn := &fakeConn{chunks: []string{"Router>", "Router#"}, eof: true}

	var out syncBuffer
	pr, pw := io.Pipe()
	defer pw.Close()

	err := Console(context.Background(), conn, pr, &out)
	require.NoError(t, err)
	assert.Equal(t, "Router>Router#", out.String())
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}
