// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package transport

import (
	"context"
	"io"
)

// WriterTransport writes newline terminated lines to an io.Writer.
// It backs dry runs and saving a configuration to a file.
// Writes are not buffered.
type WriterTransport struct {
	W io.Writer
}

// NewWriterTransport returns a transport writing to w.
func NewWriterTransport(w io.Writer) *WriterTransport {
	return &WriterTransport{W: w}
}

func (t *WriterTransport) Open(context.Context) error { return nil }

func (t *WriterTransport) WriteLine(line string) error {
	_, err := io.WriteString(t.W, line+"\n")
	return err
}

// Close is a no-op, the writer is owned by the caller.
func (t *WriterTransport) Close() error { return nil }
