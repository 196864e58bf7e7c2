// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package iosgen

import (
	"strconv"
	"strings"

	"github.com/srl-labs/iosconfig/types"
	"github.com/srl-labs/iosconfig/utils"
)

// banner delimiters in order of preference.
const (
	bannerDelim         = "$"
	bannerFallbackDelim = "#"
)

// allSet returns true if none of the values is empty.
func allSet(vals ...string) bool {
	for _, v := range vals {
		if v == "" {
			return false
		}
	}
	return true
}

func trim(s string) string { return strings.TrimSpace(s) }

// bannerDelimiter picks a delimiter that does not occur in msg.
func bannerDelimiter(msg string) (string, bool) {
	for _, d := range []string{bannerDelim, bannerFallbackDelim} {
		if !strings.Contains(msg, d) {
			return d, true
		}
	}
	return "", false
}

func identityLines(r *types.Request, warn warnFunc) []string {
	var lines []string

	if h := trim(r.Identity.Hostname); h != "" {
		lines = append(lines, "hostname "+h)
	}

	if p := trim(r.Identity.EnablePassword); p != "" {
		lines = append(lines, "enable secret "+p)
	}

	if p := trim(r.Identity.ConsolePassword); p != "" {
		lines = append(lines,
			"line console 0",
			"password "+p,
			"login",
			"exit",
		)
	}

	if msg := trim(r.Identity.BannerMessage); msg != "" {
		d, ok := bannerDelimiter(msg)
		if !ok {
			warn("banner contains both %q and %q, no delimiter left", bannerDelim, bannerFallbackDelim)
		} else {
			lines = append(lines, "banner motd "+d+msg+d)
		}
	}

	return lines
}

func lanLines(r *types.Request, warn warnFunc) []string {
	name, ip, mask := trim(r.LAN.Name), trim(r.LAN.IPAddress), trim(r.LAN.SubnetMask)
	if !allSet(name, ip, mask) {
		return nil
	}

	if !utils.IsValidAddress(ip) {
		warn("invalid LAN address %q on %s", ip, name)
		return nil
	}

	return []string{
		"interface " + name,
		"ip address " + ip + " " + mask,
		"no shutdown",
		"exit",
	}
}

func resetLines(r *types.Request, _ warnFunc) []string {
	name := trim(r.Reset.InterfaceName)
	if name == "" {
		return nil
	}

	return []string{
		"interface " + name,
		"shutdown",
		"no ip address",
		"no clock rate",
		"exit",
	}
}

func serialLines(r *types.Request, warn warnFunc) []string {
	s := r.Serial
	name, ip, mask := trim(s.Name), trim(s.IPAddress), trim(s.SubnetMask)
	if !allSet(name, ip, mask) {
		return nil
	}

	if !utils.IsValidAddress(ip) {
		warn("invalid serial address %q on %s", ip, name)
		return nil
	}

	lines := []string{
		"interface " + name,
		"ip address " + ip + " " + mask,
	}

	if rate := trim(s.ClockRate); rate != "" {
		if utils.IsNumeric(rate) {
			lines = append(lines, "clock rate "+rate)
		} else {
			warn("clock rate %q is not numeric, not set on %s", rate, name)
		}
	}

	if s.Activate {
		lines = append(lines, "no shutdown")
	}

	return append(lines, "exit")
}

func sshLines(r *types.Request, _ warnFunc) []string {
	domain, user, pass := trim(r.SSH.Domain), trim(r.SSH.Username), trim(r.SSH.Password)
	if !allSet(domain, user, pass) {
		return nil
	}

	return []string{
		"ip domain-name " + domain,
		"username " + user + " password " + pass,
		"crypto key generate rsa",
		// modulus size prompted by the previous command
		"1024",
		"line vty 0 4",
		"transport input ssh",
		"login local",
		"exit",
	}
}

func dhcpLines(r *types.Request, warn warnFunc) []string {
	d := r.DHCP
	pool, network, mask, gw := trim(d.PoolName), trim(d.Network), trim(d.Mask), trim(d.Gateway)
	if !allSet(pool, network, mask, gw) {
		return nil
	}

	var lines []string

	// a range with a single end is ignored
	if start, end := trim(d.RangeStart), trim(d.RangeEnd); allSet(start, end) {
		if utils.IsValidAddress(start) && utils.IsValidAddress(end) {
			lines = append(lines, "ip dhcp excluded-address "+start+" "+end)
		} else {
			warn("invalid excluded address range %q - %q for pool %s", start, end, pool)
		}
	}

	return append(lines,
		"ip dhcp pool "+pool,
		"network "+network+" "+mask,
		"default-router "+gw,
	)
}

func routingLines(r *types.Request, warn warnFunc) []string {
	rt := r.Routing
	network := trim(rt.Network)

	switch p := types.RoutingProtocol(strings.ToLower(trim(string(rt.Protocol)))); p {
	case "", types.ProtocolNone:
		return nil

	case types.ProtocolRIP:
		if network == "" {
			return nil
		}
		return []string{
			"router rip",
			"version 2",
			"network " + network,
			"exit",
		}

	case types.ProtocolOSPF:
		wc, area := trim(rt.WildcardMask), trim(rt.OSPFArea)
		if !allSet(network, wc, area) {
			return nil
		}
		return []string{
			"router ospf 1",
			"network " + network + " " + wc + " area " + area,
			"exit",
		}

	case types.ProtocolEIGRP:
		asn := trim(rt.EIGRPASN)
		if !allSet(network, asn) {
			return nil
		}
		if !utils.IsNumeric(asn) {
			warn("EIGRP AS number %q is not numeric", asn)
			return nil
		}
		return []string{
			"router eigrp " + asn,
			"network " + network,
			"exit",
		}

	default:
		warn("unknown routing protocol %q", p)
		return nil
	}
}

func vlanLines(r *types.Request, warn warnFunc) []string {
	var lines []string

	for _, v := range r.Vlans {
		v = v.Normalize()
		if err := v.Validate(); err != nil {
			warn("skipping vlan: %v", err)
			continue
		}

		id := strconv.Itoa(v.ID)
		lines = append(lines,
			"vlan "+id,
			"name "+v.Name,
			"exit",
			"interface "+v.InterfaceName,
			"switchport mode "+string(v.Mode),
		)
		if v.Mode == types.VlanModeAccess {
			lines = append(lines, "switchport access vlan "+id)
		}
		lines = append(lines, "no shutdown", "exit")
	}

	return lines
}
