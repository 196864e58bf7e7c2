// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package iosgen turns a configuration request into the ordered list of
// Cisco IOS command lines that apply it.
package iosgen

import (
	"fmt"

	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/types"
)

// Section names a block of the generated configuration.
type Section string

const (
	SectionIdentity Section = "identity"
	SectionLAN      Section = "lan"
	SectionReset    Section = "reset"
	SectionSerial   Section = "serial"
	SectionSSH      Section = "ssh"
	SectionDHCP     Section = "dhcp"
	SectionRouting  Section = "routing"
	SectionVlans    Section = "vlans"
)

// lines framing every generated configuration.
var (
	preamble = []string{"enable", "configure terminal"}
	epilogue = []string{"exit", "write memory"}
)

// warnFunc reports a problem found in the section being generated.
type warnFunc func(format string, a ...interface{})

// sections lists the section builders in the order IOS expects them.
var sections = []struct {
	name  Section
	build func(r *types.Request, warn warnFunc) []string
}{
	{SectionIdentity, identityLines},
	{SectionLAN, lanLines},
	{SectionReset, resetLines},
	{SectionSerial, serialLines},
	{SectionSSH, sshLines},
	{SectionDHCP, dhcpLines},
	{SectionRouting, routingLines},
	{SectionVlans, vlanLines},
}

// Sections returns the section names in generation order.
func Sections() []Section {
	s := make([]Section, 0, len(sections))
	for _, sec := range sections {
		s = append(s, sec.name)
	}
	return s
}

type options struct {
	reporters []Reporter
}

// Option configures a Generate call.
type Option func(o *options)

// WithReporter adds a reporter for the warnings of the call.
// It may be given more than once.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporters = append(o.reporters, r)
		}
	}
}

func (o *options) reporter() Reporter {
	switch len(o.reporters) {
	case 0:
		return discardReporter{}
	case 1:
		return o.reporters[0]
	}
	return multiReporter(o.reporters)
}

// Generate returns the command lines applying r. Sections whose fields are
// missing are left out; sections whose fields are invalid are left out and
// reported as warnings. Only a nil request is an error.
// The request is not modified and the returned slice is owned by the caller.
func Generate(r *types.Request, opts ...Option) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no request given", clerrors.ErrMalformedRequest)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	rep := o.reporter()

	lines := make([]string, 0, 32)
	lines = append(lines, preamble...)

	for _, s := range sections {
		name := s.name
		warn := func(format string, a ...interface{}) {
			rep.Warn(name, fmt.Sprintf(format, a...))
		}
		lines = append(lines, s.build(r, warn)...)
	}

	return append(lines, epilogue...), nil
}
