// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scrapli/scrapligo/driver/network"
	"github.com/scrapli/scrapligo/driver/options"
	scraplilogging "github.com/scrapli/scrapligo/logging"
	"github.com/scrapli/scrapligo/platform"
	scraplitransport "github.com/scrapli/scrapligo/transport"
	"github.com/scrapli/scrapligo/util"
	log "github.com/sirupsen/logrus"
)

const (
	// ScrapliPlatform is the scrapligo platform used for IOS devices.
	ScrapliPlatform = "cisco_iosxe"

	defaultSSHPort    = 22
	defaultTimeoutOps = 10 * time.Second
)

// privLevels maps the lines that change the CLI mode to the platform privilege levels.
var privLevels = map[string]string{ //nolint:gochecknoglobals
	"enable":             "privilege_exec",
	"configure terminal": "configuration",
}

// ScrapliTransport types the command lines into an SSH session with the device,
// the way they would be typed on the console.
type ScrapliTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	// Secondary is the enable password, if the device asks for one.
	Secondary  string
	TimeoutOps time.Duration

	driver *network.Driver
}

// NewScrapliTransport returns an SSH transport for host.
func NewScrapliTransport(host, username, password string) *ScrapliTransport {
	return &ScrapliTransport{
		Host:       host,
		Port:       defaultSSHPort,
		Username:   username,
		Password:   password,
		TimeoutOps: defaultTimeoutOps,
	}
}

func (t *ScrapliTransport) options() ([]util.Option, error) {
	li, err := scraplilogging.NewInstance(
		scraplilogging.WithLevel("debug"),
		scraplilogging.WithLogger(log.Debug))
	if err != nil {
		return nil, err
	}

	opts := []util.Option{
		options.WithAuthNoStrictKey(),
		options.WithAuthUsername(t.Username),
		options.WithAuthPassword(t.Password),
		options.WithTransportType(scraplitransport.StandardTransport),
		options.WithPort(t.Port),
		options.WithTimeoutOps(t.TimeoutOps),
		options.WithLogger(li),
	}
	if t.Secondary != "" {
		opts = append(opts, options.WithAuthSecondary(t.Secondary))
	}

	return opts, nil
}

// Open connects and authenticates. On open the platform moves the session
// to privileged exec mode and disables paging.
func (t *ScrapliTransport) Open(_ context.Context) error {
	if t.Host == "" {
		return errors.New("no SSH host given")
	}

	opts, err := t.options()
	if err != nil {
		return err
	}

	p, err := platform.NewPlatform(ScrapliPlatform, t.Host, opts...)
	if err != nil {
		return fmt.Errorf("%s: failed to create platform: %w", t.Host, err)
	}

	d, err := p.GetNetworkDriver()
	if err != nil {
		return fmt.Errorf("%s: could not create the driver: %w", t.Host, err)
	}

	if err := d.Open(); err != nil {
		return fmt.Errorf("%s: failed to open ssh session: %w", t.Host, err)
	}

	t.driver = d

	log.Infof("Connected to %s", t.Host)

	return nil
}

// WriteLine types line into the session. The mode changing lines are
// handled by the driver privilege levels so that it keeps track of the prompt.
func (t *ScrapliTransport) WriteLine(line string) error {
	if t.driver == nil {
		return errNotConnected
	}

	if priv, ok := privLevels[line]; ok {
		if err := t.driver.AcquirePriv(priv); err != nil {
			return fmt.Errorf("failed to acquire %s privilege level: %w", priv, err)
		}
		return nil
	}

	return t.driver.Channel.WriteAndReturn([]byte(line), false)
}

// ReadAvailable returns the session output received so far.
func (t *ScrapliTransport) ReadAvailable() (string, error) {
	if t.driver == nil {
		return "", errNotConnected
	}

	b, err := t.driver.Channel.ReadAll()
	return string(b), err
}

// Command runs a single exec mode command and returns its output.
func (t *ScrapliTransport) Command(cmd string) (string, error) {
	if t.driver == nil {
		return "", errNotConnected
	}

	r, err := t.driver.SendCommand(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to send command %q: %w", cmd, err)
	}
	if r.Failed != nil {
		return r.Result, fmt.Errorf("command %q failed: %w", cmd, r.Failed)
	}

	return r.Result, nil
}

func (t *ScrapliTransport) Close() error {
	if t.driver == nil {
		return nil
	}

	err := t.driver.Close()
	t.driver = nil

	log.Debugf("Connection to %s closed", t.Host)

	return err
}

var errNotConnected = errors.New("ssh session is not open")
