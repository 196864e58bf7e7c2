// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package transport

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

// fakePort implements the parts of serial.Port the transport uses.
type fakePort struct {
	serial.Port

	written  bytes.Buffer
	reads    [][]byte
	timeouts []time.Duration
	closed   bool
}

func (p *fakePort) Write(b []byte) (int, error) { return p.written.Write(b) }

func (p *fakePort) Read(b []byte) (int, error) {
	if len(p.reads) == 0 {
		return 0, nil
	}
	n := copy(b, p.reads[0])
	p.reads = p.reads[1:]
	return n, nil
}

func (p *fakePort) SetReadTimeout(d time.Duration) error {
	p.timeouts = append(p.timeouts, d)
	return nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func withFakePort(t *testing.T, p *fakePort) *serial.Mode {
	t.Helper()

	var got serial.Mode
	orig := openPort
	openPort = func(name string, mode *serial.Mode) (serial.Port, error) {
		if name != "/dev/ttyUSB0" {
			return nil, errors.New("no such port")
		}
		got = *mode
		return p, nil
	}
	t.Cleanup(func() { openPort = orig })

	return &got
}

func TestSerialTransportSend(t *testing.T) {
	p := &fakePort{reads: [][]byte{[]byte("Router>"), []byte("Router#")}}
	mode := withFakePort(t, p)

	tx := NewSerialTransport("/dev/ttyUSB0")
	tx.SettleDelay = 0

	err := Send(context.Background(), tx, []string{"enable", "configure terminal"}, WithDelay(0))
	require.NoError(t, err)

	assert.Equal(t, "enable\nconfigure terminal\n", p.written.String())
	assert.True(t, p.closed)
	assert.Equal(t, 9600, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, time.Second, p.timeouts[0], "read timeout is set on open")
	assert.Equal(t, time.Second, p.timeouts[len(p.timeouts)-1], "read timeout is restored after polling")
}

func TestSerialTransportReadAvailable(t *testing.T) {
	p := &fakePort{reads: [][]byte{[]byte("line one\r\n"), []byte("line two\r\n")}}
	withFakePort(t, p)

	tx := NewSerialTransport("/dev/ttyUSB0")
	tx.SettleDelay = 0
	require.NoError(t, tx.Open(context.Background()))
	defer tx.Close()

	out, err := tx.ReadAvailable()
	require.NoError(t, err)
	assert.Equal(t, "line one\r\nline two\r\n", out)

	out, err = tx.ReadAvailable()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSerialTransportErrors(t *testing.T) {
	withFakePort(t, &fakePort{})

	err := NewSerialTransport("").Open(context.Background())
	assert.ErrorIs(t, err, clerrors.ErrNoPort)

	err = NewSerialTransport("/dev/ttyS9").Open(context.Background())
	assert.Error(t, err)

	tx := NewSerialTransport("/dev/ttyUSB0")
	assert.Error(t, tx.WriteLine("enable"), "write before open")
	assert.NoError(t, tx.Close(), "close before open")
}

func TestSerialTransportSettleCancel(t *testing.T) {
	p := &fakePort{}
	withFakePort(t, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSerialTransport("/dev/ttyUSB0").Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, p.closed)
}
