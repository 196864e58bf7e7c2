// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/srl-labs/iosconfig/constants"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// pollTimeout bounds a read of the output already sent by the device.
const pollTimeout = 50 * time.Millisecond

// openPort is replaced in tests.
var openPort = serial.Open //nolint:gochecknoglobals

// SerialTransport talks to the console port of a device over a serial line, 8N1.
// Besides the Transport methods it is an io.ReadWriter once opened.
type SerialTransport struct {
	Port     string
	BaudRate int
	// ReadTimeout bounds a single Read call.
	ReadTimeout time.Duration
	// SettleDelay is waited after the port is opened, before the first write.
	SettleDelay time.Duration

	port serial.Port
}

// NewSerialTransport returns a transport for port with the console defaults.
func NewSerialTransport(port string) *SerialTransport {
	return &SerialTransport{
		Port:        port,
		BaudRate:    constants.DefaultBaudRate,
		ReadTimeout: constants.DefaultReadTimeout,
		SettleDelay: constants.DefaultSettleDelay,
	}
}

func (t *SerialTransport) Open(ctx context.Context) error {
	if t.Port == "" {
		return clerrors.ErrNoPort
	}

	mode := &serial.Mode{
		BaudRate: t.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := openPort(t.Port, mode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", t.Port, err)
	}

	if err := p.SetReadTimeout(t.ReadTimeout); err != nil {
		p.Close()
		return fmt.Errorf("failed to set read timeout on %s: %w", t.Port, err)
	}

	t.port = p

	log.Debugf("opened %s at %d baud", t.Port, t.BaudRate)

	if err := sleep(ctx, t.SettleDelay); err != nil {
		t.Close()
		return err
	}

	return nil
}

func (t *SerialTransport) WriteLine(line string) error {
	_, err := t.Write([]byte(line + "\n"))
	return err
}

// Write implements io.Writer.
func (t *SerialTransport) Write(b []byte) (int, error) {
	if t.port == nil {
		return 0, errNotOpen
	}
	return t.port.Write(b)
}

// Read implements io.Reader. A read that times out returns 0, nil.
func (t *SerialTransport) Read(b []byte) (int, error) {
	if t.port == nil {
		return 0, errNotOpen
	}
	return t.port.Read(b)
}

// ReadAvailable returns what the device has sent so far without waiting
// for the full read timeout.
func (t *SerialTransport) ReadAvailable() (string, error) {
	if t.port == nil {
		return "", errNotOpen
	}

	if err := t.port.SetReadTimeout(pollTimeout); err != nil {
		return "", err
	}
	defer t.port.SetReadTimeout(t.ReadTimeout) //nolint:errcheck

	var out []byte
	buf := make([]byte, 1024)
	for {
		n, err := t.port.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			return string(out), err
		}
		if n == 0 {
			return string(out), nil
		}
	}
}

func (t *SerialTransport) Close() error {
	if t.port == nil {
		return nil
	}

	err := t.port.Close()
	t.port = nil

	log.Debugf("closed %s", t.Port)

	return err
}

var errNotOpen = errors.New("serial port is not open")

// PortInfo describes a serial port found on the host.
type PortInfo struct {
	Name    string `json:"name"`
	USB     bool   `json:"usb"`
	VID     string `json:"vid,omitempty"`
	PID     string `json:"pid,omitempty"`
	Serial  string `json:"serial,omitempty"`
	Product string `json:"product,omitempty"`
}

// ListPorts returns the serial ports of the host.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		// detailed enumeration is not available everywhere
		log.Debugf("detailed port enumeration failed: %v", err)

		names, err := serial.GetPortsList()
		if err != nil {
			return nil, fmt.Errorf("failed to list serial ports: %w", err)
		}

		ports := make([]PortInfo, 0, len(names))
		for _, n := range names {
			ports = append(ports, PortInfo{Name: n})
		}
		return ports, nil
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Name:    d.Name,
			USB:     d.IsUSB,
			VID:     d.VID,
			PID:     d.PID,
			Serial:  d.SerialNumber,
			Product: d.Product,
		})
	}

	return ports, nil
}
