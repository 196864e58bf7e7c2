// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"fmt"
	"strconv"
	"strings"

	clerrors "github.com/srl-labs/iosconfig/errors"
)

const (
	MinVlanID = 1
	MaxVlanID = 4094
)

// VlanMode is the switchport mode of the interface a VLAN is assigned to.
type VlanMode string

const (
	VlanModeAccess VlanMode = "access"
	VlanModeTrunk  VlanMode = "trunk"
)

// separators of the flat template encoding of a VLAN list.
const vlanFieldSep, vlanEntrySep = ":", ";"

// Vlan is one VLAN definition and the interface it is assigned to.
type Vlan struct {
	ID            int      `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	InterfaceName string   `yaml:"interface_name" json:"interface_name"`
	Mode          VlanMode `yaml:"mode" json:"mode"`
}

// NewVlan validates the parameters and returns a VLAN entry.
// All fields are required, the id must be within 1-4094.
func NewVlan(id int, name, iface string, mode VlanMode) (Vlan, error) {
	v := Vlan{ID: id, Name: name, InterfaceName: iface, Mode: mode}.Normalize()

	return v, v.Validate()
}

// Normalize trims the fields and lowercases the mode.
func (v Vlan) Normalize() Vlan {
	v.Name = strings.TrimSpace(v.Name)
	v.InterfaceName = strings.TrimSpace(v.InterfaceName)
	v.Mode = VlanMode(strings.ToLower(strings.TrimSpace(string(v.Mode))))

	return v
}

// Validate checks the VLAN entry the same way NewVlan does.
func (v Vlan) Validate() error {
	if v.ID < MinVlanID || v.ID > MaxVlanID {
		return fmt.Errorf("%w: vlan id %d is outside %d-%d", clerrors.ErrIncorrectInput, v.ID, MinVlanID, MaxVlanID)
	}

	if v.Name == "" || v.InterfaceName == "" {
		return fmt.Errorf("%w: vlan %d requires a name and an interface", clerrors.ErrIncorrectInput, v.ID)
	}

	switch v.Mode {
	case VlanModeAccess, VlanModeTrunk:
	default:
		return fmt.Errorf("%w: vlan %d mode %q, expected %q or %q",
			clerrors.ErrIncorrectInput, v.ID, v.Mode, VlanModeAccess, VlanModeTrunk)
	}

	return nil
}

// ParseVlan parses the id:name:interface:mode notation used by flags and templates.
// A separator that is part of a name or interface is escaped with a backslash.
func ParseVlan(s string) (Vlan, error) {
	parts := splitEscaped(s, vlanFieldSep)
	if len(parts) != 4 {
		return Vlan{}, fmt.Errorf("%w: vlan %q, expected id:name:interface:mode", clerrors.ErrIncorrectInput, s)
	}

	for i := range parts {
		parts[i] = unescape(parts[i])
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Vlan{}, fmt.Errorf("%w: vlan id %q is not a number", clerrors.ErrIncorrectInput, parts[0])
	}

	return NewVlan(id, parts[1], parts[2], VlanMode(parts[3]))
}

// String returns the id:name:interface:mode notation of the entry.
func (v Vlan) String() string {
	return strings.Join([]string{
		strconv.Itoa(v.ID), escape(v.Name), escape(v.InterfaceName), escape(string(v.Mode)),
	}, vlanFieldSep)
}

// FormatVlans joins the entries in the flat template notation.
func FormatVlans(vlans []Vlan) string {
	s := make([]string, 0, len(vlans))
	for _, v := range vlans {
		s = append(s, v.String())
	}
	return strings.Join(s, vlanEntrySep)
}

// ParseVlans parses ';' separated id:name:interface:mode entries. Blank entries are skipped.
func ParseVlans(s string) ([]Vlan, error) {
	var vlans []Vlan
	for i, e := range splitEscaped(s, vlanEntrySep) {
		if strings.TrimSpace(e) == "" {
			continue
		}
		v, err := ParseVlan(e)
		if err != nil {
			return nil, fmt.Errorf("vlan entry %d: %w", i+1, err)
		}
		vlans = append(vlans, v)
	}
	return vlans, nil
}

const escapeChar = '\\'

var escaper = strings.NewReplacer(`\`, `\\`, vlanFieldSep, `\`+vlanFieldSep, vlanEntrySep, `\`+vlanEntrySep)

func escape(s string) string { return escaper.Replace(s) }

// unescape drops the escape character in front of any character.
func unescape(s string) string {
	if !strings.ContainsRune(s, escapeChar) {
		return s
	}

	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == escapeChar && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}

	return b.String()
}

// splitEscaped splits s around unescaped occurrences of the single character sep.
// Escape sequences are kept in the parts.
func splitEscaped(s, sep string) []string {
	var (
		parts   []string
		start   int
		escaped bool
	)

	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == escapeChar:
			escaped = true
		case s[i] == sep[0]:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}
