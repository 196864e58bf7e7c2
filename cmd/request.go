// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/templates"
	"github.com/srl-labs/iosconfig/types"
	"golang.org/x/exp/slices"
)

// requestFlags maps request flags to the flat template field they set.
var requestFlags = []struct {
	flag  string
	key   string
	usage string
}{
	{"hostname", "hostname", "device hostname"},
	{"console-password", "console_password", "console line password"},
	{"enable-password", "enable_password", "enable secret"},
	{"banner", "banner_message", "message of the day banner"},
	{"lan-interface", "lan_interface", "LAN interface name, e.g. GigabitEthernet0/1"},
	{"lan-ip", "lan_ip", "LAN interface IPv4 address"},
	{"lan-mask", "lan_mask", "LAN interface subnet mask"},
	{"reset-interface", "reset_interface", "interface to shut down and clear"},
	{"serial-interface", "serial_interface", "serial interface name, e.g. Serial0/0/0"},
	{"serial-ip", "serial_ip", "serial interface IPv4 address"},
	{"serial-mask", "serial_mask", "serial interface subnet mask"},
	{"clock-rate", "serial_clock_rate", "serial clock rate, DCE side only"},
	{"ssh-domain", "ssh_domain", "domain name used for the RSA key"},
	{"ssh-username", "ssh_username", "local user allowed on the VTY lines"},
	{"ssh-password", "ssh_password", "password of the local user"},
	{"dhcp-pool", "dhcp_pool", "DHCP pool name"},
	{"dhcp-network", "dhcp_network", "DHCP pool network"},
	{"dhcp-mask", "dhcp_mask", "DHCP pool network mask"},
	{"dhcp-gateway", "dhcp_gateway", "DHCP default router"},
	{"dhcp-range-start", "dhcp_range_start", "first excluded DHCP address"},
	{"dhcp-range-end", "dhcp_range_end", "last excluded DHCP address"},
	{"routing-network", "routing_network", "network advertised by the routing protocol"},
	{"wildcard-mask", "routing_wildcard_mask", "OSPF wildcard mask"},
	{"ospf-area", "ospf_area", "OSPF area"},
	{"eigrp-asn", "eigrp_asn", "EIGRP autonomous system number"},
}

const (
	flagSerialActivate  = "serial-activate"
	flagRoutingProtocol = "routing-protocol"
	flagVlan            = "vlan"
	flagRequestFile     = "request"
	flagTemplate        = "template"
)

// RequestOptions hold the request flags shared by the commands that generate.
type RequestOptions struct {
	File     string
	Template string

	values         map[string]*string
	serialActivate bool
	protocol       string
	vlans          []types.Vlan
}

func newRequestOptions() *RequestOptions {
	r := &RequestOptions{values: make(map[string]*string, len(requestFlags))}
	for _, f := range requestFlags {
		r.values[f.key] = new(string)
	}
	return r
}

// addFlags registers the request flags on fs.
func (r *RequestOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&r.File, flagRequestFile, "f", "", "request definition file (YAML or JSON)")
	fs.StringVarP(&r.Template, flagTemplate, "", "", "saved template to start from")

	for _, f := range requestFlags {
		fs.StringVar(r.values[f.key], f.flag, "", f.usage)
	}

	fs.BoolVar(&r.serialActivate, flagSerialActivate, false, "bring the serial interface up")

	protocols := make([]string, 0, len(types.RoutingProtocols))
	for _, p := range types.RoutingProtocols {
		protocols = append(protocols, string(p))
	}
	fs.StringVar(&r.protocol, flagRoutingProtocol, "",
		fmt.Sprintf("dynamic routing protocol; one of [%s]", strings.Join(protocols, ", ")))

	fs.Var(&vlanListValue{vlans: &r.vlans}, flagVlan,
		`VLAN entry as id:name:interface:mode, may be repeated; escape ":" and ";" in names with "\"`)
}

// isSet reports whether the flag was given on the command line or through
// the environment or config file.
func isSet(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	return f.Changed || f.Value.String() != f.DefValue
}

// build assembles the request: the request file or template is loaded first
// and every set flag overrides the field it maps to.
func (r *RequestOptions) build(fs *pflag.FlagSet, templateDir string) (*types.Request, error) {
	base := &types.Request{}

	switch {
	case r.File != "" && r.Template != "":
		return nil, fmt.Errorf("%w: --%s and --%s are mutually exclusive",
			clerrors.ErrIncorrectInput, flagRequestFile, flagTemplate)
	case r.File != "":
		req, err := types.LoadRequestFile(r.File)
		if err != nil {
			return nil, err
		}
		log.Debugf("request loaded from %s", r.File)
		base = req
	case r.Template != "":
		s, err := templates.NewStore(templateDir)
		if err != nil {
			return nil, err
		}
		req, err := s.Load(r.Template)
		if err != nil {
			return nil, err
		}
		log.Debugf("request loaded from template %q", r.Template)
		base = req
	}

	fields := base.Fields()

	for _, f := range requestFlags {
		if isSet(fs, f.flag) {
			fields[f.key] = strings.TrimSpace(*r.values[f.key])
		}
	}

	if isSet(fs, flagSerialActivate) {
		fields[types.FieldSerialActivate] = strconv.FormatBool(r.serialActivate)
	}

	if isSet(fs, flagRoutingProtocol) {
		p := types.RoutingProtocol(strings.ToLower(strings.TrimSpace(r.protocol)))
		if !slices.Contains(types.RoutingProtocols, p) {
			return nil, fmt.Errorf("%w: unknown routing protocol %q", clerrors.ErrIncorrectInput, r.protocol)
		}
		fields[types.FieldRoutingProtocol] = string(p)
	}

	req, err := types.RequestFromFields(fields)
	if err != nil {
		return nil, err
	}

	if fs.Changed(flagVlan) || len(r.vlans) > 0 {
		req.Vlans = append([]types.Vlan(nil), r.vlans...)
	}

	return req, nil
}

// vlanListValue is a repeatable flag collecting VLAN entries.
type vlanListValue struct {
	vlans *[]types.Vlan
}

func (v *vlanListValue) Set(s string) error {
	vlans, err := types.ParseVlans(s)
	if err != nil {
		return err
	}
	if len(vlans) == 0 {
		return errors.New("empty vlan entry")
	}
	*v.vlans = append(*v.vlans, vlans...)
	return nil
}

func (v *vlanListValue) String() string {
	if v.vlans == nil {
		return ""
	}
	return types.FormatVlans(*v.vlans)
}

func (*vlanListValue) Type() string { return "vlan" }
