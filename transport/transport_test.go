// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records the lines it is given.
type fakeTransport struct {
	lines     []string
	opened    bool
	closed    bool
	openErr   error
	failAt    int
	responses []string
	// called after each line is written
	onWrite func(n int)
}

func (f *fakeTransport) Open(context.Context) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = true
	return nil
}

func (f *fakeTransport) WriteLine(line string) error {
	if f.failAt > 0 && len(f.lines)+1 == f.failAt {
		return errors.New("broken pipe")
	}
	f.lines = append(f.lines, line)
	if f.onWrite != nil {
		f.onWrite(len(f.lines))
	}
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

// readingTransport also returns device output.
type readingTransport struct {
	fakeTransport
}

func (r *readingTransport) ReadAvailable() (string, error) {
	if len(r.responses) == 0 {
		return "", nil
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]
	return resp, nil
}

var testLines = []string{"enable", "configure terminal", "hostname R1", "exit", "write memory"}

func TestSend(t *testing.T) {
	tx := &fakeTransport{}

	var progress [][2]int
	err := Send(context.Background(), tx, testLines,
		WithDelay(0),
		WithProgress(func(sent, total int) { progress = append(progress, [2]int{sent, total}) }),
	)
	require.NoError(t, err)

	if d := cmp.Diff(testLines, tx.lines); d != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", d)
	}
	assert.True(t, tx.opened)
	assert.True(t, tx.closed)
	assert.Equal(t, [][2]int{{1, 5}, {2, 5}, {3, 5}, {4, 5}, {5, 5}}, progress)
}

func TestSendPacing(t *testing.T) {
	tx := &fakeTransport{}

	start := time.Now()
	err := Send(context.Background(), tx, testLines[:3], WithDelay(20*time.Millisecond))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestSendLogsResponses(t *testing.T) {
	var buf bytes.Buffer
	l := log.New()
	l.SetOutput(&buf)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})

	tx := &readingTransport{fakeTransport{responses: []string{"Router>\r\n", "", "R1(config)#"}}}

	require.NoError(t, Send(context.Background(), tx, testLines, WithDelay(0), WithLogger(l)))

	out := buf.String()
	assert.Contains(t, out, "Router>")
	assert.Contains(t, out, "R1(config)#")
	assert.Equal(t, 2, strings.Count(out, "level=info"))
}

func TestSendWriteError(t *testing.T) {
	tx := &fakeTransport{failAt: 3}

	err := Send(context.Background(), tx, testLines, WithDelay(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "hostname R1")
	assert.Equal(t, testLines[:2], tx.lines)
	assert.True(t, tx.closed, "transport is closed after a failure")
}

func TestSendOpenError(t *testing.T) {
	tx := &fakeTransport{openErr: io.ErrUnexpectedEOF}

	err := Send(context.Background(), tx, testLines)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Empty(t, tx.lines)
	assert.False(t, tx.closed)
}

func TestSendCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tx := &fakeTransport{onWrite: func(n int) {
		if n == 2 {
			cancel()
		}
	}}

	err := Send(ctx, tx, testLines, WithDelay(time.Second))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, testLines[:2], tx.lines)
	assert.True(t, tx.closed)
}

func TestSendAsync(t *testing.T) {
	tx := &fakeTransport{}

	errCh := SendAsync(context.Background(), tx, testLines, WithDelay(0))

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("SendAsync did not finish")
	}

	_, ok := <-errCh
	assert.False(t, ok, "result channel is closed")
	assert.Equal(t, testLines, tx.lines)
}

func TestWriterTransport(t *testing.T) {
	var buf bytes.Buffer

	err := Send(context.Background(), NewWriterTransport(&buf), testLines, WithDelay(0))
	require.NoError(t, err)

	assert.Equal(t, "enable\nconfigure terminal\nhostname R1\nexit\nwrite memory\n", buf.String())
}
