// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"time"

	"github.com/srl-labs/iosconfig/constants"
	"github.com/srl-labs/iosconfig/transport"
)

const (
	transportSerial = "serial"
	transportSSH    = "ssh"
)

var optionsInstance *Options //nolint:gochecknoglobals

// GetOptions returns the global options instance if it exists
// or creates a new one with default values for all options.
func GetOptions() *Options {
	if optionsInstance == nil {
		optionsInstance = &Options{
			Global: &GlobalOptions{
				LogLevel:    "info",
				ConfigFile:  constants.DefaultConfigFile,
				TemplateDir: constants.DefaultTemplateDir,
			},
			Request:  newRequestOptions(),
			Generate: &GenerateOptions{},
			Send: &SendOptions{
				Delay: constants.DefaultLineDelay,
			},
			Device: &DeviceOptions{
				Transport: transportSerial,
				BaudRate:  constants.DefaultBaudRate,
				SSHPort:   22,
			},
			Backup: &BackupOptions{},
			Exec: &ExecOptions{
				Window: constants.CommandWindow,
			},
			Template: &TemplateOptions{
				Format: constants.FormatTable,
			},
			Ports: &PortsOptions{
				Format: constants.FormatTable,
			},
		}
	}

	return optionsInstance
}

type Options struct {
	Global   *GlobalOptions
	Request  *RequestOptions
	Generate *GenerateOptions
	Send     *SendOptions
	Device   *DeviceOptions
	Backup   *BackupOptions
	Exec     *ExecOptions
	Template *TemplateOptions
	Ports    *PortsOptions
}

type GlobalOptions struct {
	ConfigFile  string
	LogLevel    string
	DebugCount  int
	TemplateDir string
}

type GenerateOptions struct {
	OutputFile string
	Warnings   bool
}

type SendOptions struct {
	Delay  time.Duration
	DryRun bool
}

// DeviceOptions select and configure the connection to the device.
type DeviceOptions struct {
	Transport string
	Port      string
	BaudRate  int
	Host      string
	SSHPort   int
	Username  string
	Password  string
	Secondary string
}

type BackupOptions struct {
	OutputFile string
}

type ExecOptions struct {
	Commands []string
	Window   time.Duration
}

type TemplateOptions struct {
	Format string
	Flat   bool
}

type PortsOptions struct {
	Format string
}

// serialTransport returns a serial transport for the selected port.
func (o *DeviceOptions) serialTransport() *transport.SerialTransport {
	t := transport.NewSerialTransport(o.Port)
	t.BaudRate = o.BaudRate
	return t
}

// sshTransport returns an SSH transport for the selected host.
func (o *DeviceOptions) sshTransport() *transport.ScrapliTransport {
	t := transport.NewScrapliTransport(o.Host, o.Username, o.Password)
	t.Port = o.SSHPort
	t.Secondary = o.Secondary
	return t
}
