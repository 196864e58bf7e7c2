// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

// Request is the full set of user supplied router parameters, grouped by section.
// Every field is optional; an empty section is not applied.
// A Request is treated as read-only once it is handed to the generator.
type Request struct {
	Identity Identity        `yaml:"identity,omitempty" json:"identity,omitempty"`
	LAN      Interface       `yaml:"lan,omitempty" json:"lan,omitempty"`
	Serial   SerialInterface `yaml:"serial,omitempty" json:"serial,omitempty"`
	SSH      SSH             `yaml:"ssh,omitempty" json:"ssh,omitempty"`
	Reset    InterfaceReset  `yaml:"reset,omitempty" json:"reset,omitempty"`
	DHCP     DHCP            `yaml:"dhcp,omitempty" json:"dhcp,omitempty"`
	Routing  Routing         `yaml:"routing,omitempty" json:"routing,omitempty"`
	Vlans    []Vlan          `yaml:"vlans,omitempty" json:"vlans,omitempty"`
}

// Identity holds the device name, local passwords and the login banner.
type Identity struct {
	Hostname        string `yaml:"hostname,omitempty" json:"hostname,omitempty"`
	ConsolePassword string `yaml:"console_password,omitempty" json:"console_password,omitempty"`
	EnablePassword  string `yaml:"enable_password,omitempty" json:"enable_password,omitempty"`
	BannerMessage   string `yaml:"banner_message,omitempty" json:"banner_message,omitempty"`
}

// Interface is a routed interface with a single IPv4 address.
type Interface struct {
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	IPAddress  string `yaml:"ip_address,omitempty" json:"ip_address,omitempty"`
	SubnetMask string `yaml:"subnet_mask,omitempty" json:"subnet_mask,omitempty"`
}

// SerialInterface is a WAN serial interface. ClockRate only applies on the DCE side.
type SerialInterface struct {
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	IPAddress  string `yaml:"ip_address,omitempty" json:"ip_address,omitempty"`
	SubnetMask string `yaml:"subnet_mask,omitempty" json:"subnet_mask,omitempty"`
	ClockRate  string `yaml:"clock_rate,omitempty" json:"clock_rate,omitempty"`
	Activate   bool   `yaml:"activate,omitempty" json:"activate,omitempty"`
}

// SSH holds the parameters needed to bootstrap SSH access on the VTY lines.
type SSH struct {
	Domain   string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
}

// InterfaceReset names an interface to be shut down and stripped of its addressing.
type InterfaceReset struct {
	InterfaceName string `yaml:"interface_name,omitempty" json:"interface_name,omitempty"`
}

// DHCP describes a single DHCP pool. RangeStart and RangeEnd form an optional
// excluded-address pair.
type DHCP struct {
	PoolName   string `yaml:"pool_name,omitempty" json:"pool_name,omitempty"`
	Network    string `yaml:"network,omitempty" json:"network,omitempty"`
	Mask       string `yaml:"mask,omitempty" json:"mask,omitempty"`
	Gateway    string `yaml:"gateway,omitempty" json:"gateway,omitempty"`
	RangeStart string `yaml:"range_start,omitempty" json:"range_start,omitempty"`
	RangeEnd   string `yaml:"range_end,omitempty" json:"range_end,omitempty"`
}

// RoutingProtocol selects the dynamic routing protocol block.
type RoutingProtocol string

const (
	ProtocolNone  RoutingProtocol = "none"
	ProtocolRIP   RoutingProtocol = "rip"
	ProtocolOSPF  RoutingProtocol = "ospf"
	ProtocolEIGRP RoutingProtocol = "eigrp"
)

// RoutingProtocols lists the accepted protocol names, ProtocolNone first.
var RoutingProtocols = []RoutingProtocol{ProtocolNone, ProtocolRIP, ProtocolOSPF, ProtocolEIGRP}

// Routing selects one dynamic routing protocol and the network it advertises.
// WildcardMask and OSPFArea are used by OSPF only, EIGRPASN by EIGRP only.
type Routing struct {
	Protocol     RoutingProtocol `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	Network      string          `yaml:"network,omitempty" json:"network,omitempty"`
	WildcardMask string          `yaml:"wildcard_mask,omitempty" json:"wildcard_mask,omitempty"`
	OSPFArea     string          `yaml:"ospf_area,omitempty" json:"ospf_area,omitempty"`
	EIGRPASN     string          `yaml:"eigrp_asn,omitempty" json:"eigrp_asn,omitempty"`
}
