// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package transport delivers generated command lines to a device, one line at a time.
package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/srl-labs/iosconfig/constants"
)

// Transport is a line oriented connection to a device.
type Transport interface {
	// Open connects to the device.
	Open(ctx context.Context) error
	// WriteLine sends a single command line.
	WriteLine(line string) error
	Close() error
}

// Reader is implemented by transports that can return the output
// the device produced since the last call.
type Reader interface {
	ReadAvailable() (string, error)
}

type sendOptions struct {
	delay    time.Duration
	progress func(sent, total int)
	logger   log.FieldLogger
}

// SendOption configures Send.
type SendOption func(o *sendOptions)

// WithDelay sets the pause after each line. Zero disables pacing.
func WithDelay(d time.Duration) SendOption {
	return func(o *sendOptions) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithProgress registers a callback invoked after each line is written.
func WithProgress(f func(sent, total int)) SendOption {
	return func(o *sendOptions) {
		o.progress = f
	}
}

// WithLogger sets the logger device responses are written to.
func WithLogger(l log.FieldLogger) SendOption {
	return func(o *sendOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Send opens tx, writes the lines in order with the configured delay and closes tx.
// Cancelling ctx stops the transfer before the next line and returns ctx.Err().
func Send(ctx context.Context, tx Transport, lines []string, opts ...SendOption) (err error) {
	o := &sendOptions{
		delay:  constants.DefaultLineDelay,
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := tx.Open(ctx); err != nil {
		return fmt.Errorf("failed to open transport: %w", err)
	}

	defer func() {
		if cerr := tx.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close transport: %w", cerr)
		}
	}()

	rd, _ := tx.(Reader)
	total := len(lines)

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := tx.WriteLine(line); err != nil {
			return fmt.Errorf("line %d %q: %w", i+1, line, err)
		}

		o.logger.Debugf("sent %d/%d: %s", i+1, total, line)

		if o.progress != nil {
			o.progress(i+1, total)
		}

		if err := sleep(ctx, o.delay); err != nil {
			return err
		}

		if rd != nil {
			resp, err := rd.ReadAvailable()
			if err != nil {
				o.logger.Warnf("failed to read response to %q: %v", line, err)
				continue
			}
			if resp = strings.TrimSpace(resp); resp != "" {
				o.logger.WithField("command", line).Info(resp)
			}
		}
	}

	return nil
}

// SendAsync runs Send on its own goroutine. The returned channel receives
// the result of the transfer and is then closed.
func SendAsync(ctx context.Context, tx Transport, lines []string, opts ...SendOption) <-chan error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		errCh <- Send(ctx, tx, lines, opts...)
	}()

	return errCh
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
