// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/srl-labs/iosconfig/utils"
	"golang.org/x/term"
)

// EscapeChar ends an interactive console session (Ctrl-]).
const EscapeChar = 0x1d

// Console connects in and out to the device until the escape character is
// typed, in reaches EOF or ctx is done. When in is a terminal it is switched
// to raw mode for the duration of the session.
//
// Reads from in cannot be interrupted, so when the session ends because of the
// device or ctx, the goroutine copying in stays blocked until in yields its next
// read. Callers passing os.Stdin are expected to exit soon after.
func Console(ctx context.Context, conn Conn, in io.Reader, out io.Writer) error {
	if f, ok := in.(*os.File); ok && utils.IsTerminal(f.Fd()) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return err
		}
		defer term.Restore(int(f.Fd()), state) //nolint:errcheck
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readErr := make(chan error, 1)
	go func() {
		readErr <- copyOutput(ctx, conn, out)
	}()

	inErr := make(chan error, 1)
	go func() {
		inErr <- copyInput(conn, in)
	}()

	var err error
	outputDone := false
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-inErr:
	case err = <-readErr:
		outputDone = true
	}

	cancel()

	// the output copy ends with its next read once the context is cancelled
	if !outputDone {
		<-readErr
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// copyOutput copies device output to out until ctx is done.
func copyOutput(ctx context.Context, conn Conn, out io.Writer) error {
	buf := make([]byte, 1024)
	for ctx.Err() == nil {
		n, err := conn.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if n == 0 {
			time.Sleep(idleWait)
		}
	}
	return ctx.Err()
}

// copyInput forwards typed input to the device up to the escape character.
func copyInput(conn Conn, in io.Reader) error {
	buf := make([]byte, 256)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			i := bytes.IndexByte(chunk, EscapeChar)
			if i >= 0 {
				chunk = chunk[:i]
			}
			if len(chunk) > 0 {
				if _, werr := conn.Write(chunk); werr != nil {
					return werr
				}
			}
			if i >= 0 {
				log.Debug("console escape received")
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
