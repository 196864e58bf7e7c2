// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"fmt"
	"strconv"

	clerrors "github.com/srl-labs/iosconfig/errors"
)

// flat template keys that do not map to a plain string field.
const (
	FieldSerialActivate  = "serial_activate"
	FieldRoutingProtocol = "routing_protocol"
	FieldVlans           = "vlans"
)

// stringFields maps flat template keys to the string fields of a Request.
// The order is the order of the sections in the generated configuration.
var stringFields = []struct {
	key   string
	field func(r *Request) *string
}{
	{"hostname", func(r *Request) *string { return &r.Identity.Hostname }},
	{"console_password", func(r *Request) *string { return &r.Identity.ConsolePassword }},
	{"enable_password", func(r *Request) *string { return &r.Identity.EnablePassword }},
	{"banner_message", func(r *Request) *string { return &r.Identity.BannerMessage }},
	{"lan_interface", func(r *Request) *string { return &r.LAN.Name }},
	{"lan_ip", func(r *Request) *string { return &r.LAN.IPAddress }},
	{"lan_mask", func(r *Request) *string { return &r.LAN.SubnetMask }},
	{"reset_interface", func(r *Request) *string { return &r.Reset.InterfaceName }},
	{"serial_interface", func(r *Request) *string { return &r.Serial.Name }},
	{"serial_ip", func(r *Request) *string { return &r.Serial.IPAddress }},
	{"serial_mask", func(r *Request) *string { return &r.Serial.SubnetMask }},
	{"serial_clock_rate", func(r *Request) *string { return &r.Serial.ClockRate }},
	{"ssh_domain", func(r *Request) *string { return &r.SSH.Domain }},
	{"ssh_username", func(r *Request) *string { return &r.SSH.Username }},
	{"ssh_password", func(r *Request) *string { return &r.SSH.Password }},
	{"dhcp_pool", func(r *Request) *string { return &r.DHCP.PoolName }},
	{"dhcp_network", func(r *Request) *string { return &r.DHCP.Network }},
	{"dhcp_mask", func(r *Request) *string { return &r.DHCP.Mask }},
	{"dhcp_gateway", func(r *Request) *string { return &r.DHCP.Gateway }},
	{"dhcp_range_start", func(r *Request) *string { return &r.DHCP.RangeStart }},
	{"dhcp_range_end", func(r *Request) *string { return &r.DHCP.RangeEnd }},
	{"routing_network", func(r *Request) *string { return &r.Routing.Network }},
	{"routing_wildcard_mask", func(r *Request) *string { return &r.Routing.WildcardMask }},
	{"ospf_area", func(r *Request) *string { return &r.Routing.OSPFArea }},
	{"eigrp_asn", func(r *Request) *string { return &r.Routing.EIGRPASN }},
}

// FieldKeys returns every flat template key in section order.
func FieldKeys() []string {
	keys := make([]string, 0, len(stringFields)+3)
	for _, f := range stringFields {
		keys = append(keys, f.key)
	}
	return append(keys, FieldSerialActivate, FieldRoutingProtocol, FieldVlans)
}

// Fields flattens the request into the field name to string value mapping used by
// saved templates. Empty values are left out.
func (r *Request) Fields() map[string]string {
	m := make(map[string]string)

	for _, f := range stringFields {
		if v := *f.field(r); v != "" {
			m[f.key] = v
		}
	}

	if r.Serial.Activate {
		m[FieldSerialActivate] = strconv.FormatBool(true)
	}
	if r.Routing.Protocol != "" {
		m[FieldRoutingProtocol] = string(r.Routing.Protocol)
	}
	if len(r.Vlans) > 0 {
		m[FieldVlans] = FormatVlans(r.Vlans)
	}

	return m
}

// RequestFromFields builds a Request from a flat field mapping. Unknown keys are ignored.
// VLAN entries are validated as if they were entered by hand.
func RequestFromFields(m map[string]string) (*Request, error) {
	r := &Request{}

	for _, f := range stringFields {
		if v, ok := m[f.key]; ok {
			*f.field(r) = v
		}
	}

	if v, ok := m[FieldSerialActivate]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a boolean", clerrors.ErrIncorrectInput, FieldSerialActivate, v)
		}
		r.Serial.Activate = b
	}

	if v, ok := m[FieldRoutingProtocol]; ok {
		r.Routing.Protocol = RoutingProtocol(v)
	}

	if v, ok := m[FieldVlans]; ok {
		vlans, err := ParseVlans(v)
		if err != nil {
			return nil, err
		}
		r.Vlans = vlans
	}

	return r, nil
}
