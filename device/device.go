// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package device runs show commands, backups and connectivity tests
// on a device console. Output is captured as is and never parsed.
package device

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/srl-labs/iosconfig/constants"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/utils"
)

// commandDelay is the pause after each command written to the console.
var commandDelay = 500 * time.Millisecond //nolint:gochecknoglobals

// idleWait is the pause between reads that returned no data.
const idleWait = 10 * time.Millisecond

// Conn is an open console connection. Read returns 0, nil when its
// read timeout expires without data.
type Conn interface {
	io.Reader
	io.Writer
}

func writeLine(conn Conn, line string) error {
	if _, err := io.WriteString(conn, line+"\n"); err != nil {
		return fmt.Errorf("failed to write %q: %w", line, err)
	}
	return nil
}

// stopFunc reports whether the output read so far is complete.
type stopFunc func(out []byte) bool

// collect reads from conn until window elapses, stop returns true,
// ctx is done or conn reaches EOF.
func collect(ctx context.Context, conn Conn, window time.Duration, stop stopFunc) ([]byte, error) {
	var out []byte
	buf := make([]byte, 4096)
	deadline := time.Now().Add(window)

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		n, err := conn.Read(buf)
		out = append(out, buf[:n]...)

		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}

		if stop != nil && stop(out) {
			return out, nil
		}

		if n == 0 {
			time.Sleep(idleWait)
		}
	}

	return out, nil
}

// Run enters privileged mode, writes the commands and returns the output
// received within window.
func Run(ctx context.Context, conn Conn, commands []string, window time.Duration) (string, error) {
	return run(ctx, conn, commands, window, nil)
}

func run(ctx context.Context, conn Conn, commands []string, window time.Duration, stop stopFunc) (string, error) {
	for _, c := range append([]string{"enable"}, commands...) {
		if err := writeLine(conn, c); err != nil {
			return "", err
		}
		log.Debugf("console: %s", c)

		if err := pause(ctx, commandDelay); err != nil {
			return "", err
		}
	}

	out, err := collect(ctx, conn, window, stop)

	return utils.StripNonPrintChars(string(out)), err
}

// pause waits for d unless ctx is done first.
func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// hasEndLine reports whether a line made of "end" alone was received,
// which terminates the running configuration.
func hasEndLine(out []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "end" {
			return true
		}
	}
	return false
}

// Backup reads the running configuration and writes it to w.
// It returns the number of bytes written.
func Backup(ctx context.Context, conn Conn, w io.Writer) (int64, error) {
	out, err := run(ctx, conn,
		[]string{"terminal length 0", "show running-config"},
		constants.BackupWindow, hasEndLine)
	if err != nil {
		return 0, fmt.Errorf("failed to read running configuration: %w", err)
	}

	if !hasEndLine([]byte(out)) {
		log.Warn("running configuration did not end within the read window, backup may be incomplete")
	}

	n, err := io.WriteString(w, out)
	return int64(n), err
}

// InterfaceBrief returns the output of show ip interface brief.
func InterfaceBrief(ctx context.Context, conn Conn) (string, error) {
	return Run(ctx, conn, []string{"show ip interface brief"}, constants.InterfacesWindow)
}

// Ping pings target from the device.
func Ping(ctx context.Context, conn Conn, target string) (string, error) {
	if err := checkTarget(target); err != nil {
		return "", err
	}
	return Run(ctx, conn, []string{"ping " + target}, constants.PingWindow)
}

// Traceroute traces the path from the device to target.
func Traceroute(ctx context.Context, conn Conn, target string) (string, error) {
	if err := checkTarget(target); err != nil {
		return "", err
	}
	return Run(ctx, conn, []string{"traceroute " + target}, constants.TracerouteWindow)
}

func checkTarget(target string) error {
	if target == "" || strings.ContainsAny(target, " \t\r\n") {
		return fmt.Errorf("%w: invalid target %q", clerrors.ErrIncorrectInput, target)
	}
	return nil
}
