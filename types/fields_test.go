package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRequest() *Request {
	return &Request{
		Identity: Identity{
			Hostname:        "R1",
			ConsolePassword: "cisco",
			EnablePassword:  "class",
			BannerMessage:   "Authorized access only",
		},
		LAN:    Interface{Name: "GigabitEthernet0/1", IPAddress: "10.0.0.1", SubnetMask: "255.255.255.0"},
		Serial: SerialInterface{Name: "Serial0/0/0", IPAddress: "172.16.0.1", SubnetMask: "255.255.255.252", ClockRate: "64000", Activate: true},
		SSH:    SSH{Domain: "lab.local", Username: "admin", Password: "secret"},
		Reset:  InterfaceReset{InterfaceName: "FastEthernet0/0"},
		DHCP: DHCP{
			PoolName: "LAN", Network: "10.0.0.0", Mask: "255.255.255.0", Gateway: "10.0.0.1",
			RangeStart: "10.0.0.1", RangeEnd: "10.0.0.10",
		},
		Routing: Routing{Protocol: ProtocolOSPF, Network: "10.0.0.0", WildcardMask: "0.0.0.255", OSPFArea: "0", EIGRPASN: "100"},
		Vlans: []Vlan{
			{ID: 10, Name: "users", InterfaceName: "FastEthernet0/1", Mode: VlanModeAccess},
			{ID: 20, Name: "uplink", InterfaceName: "FastEthernet0/24", Mode: VlanModeTrunk},
		},
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	r := fullRequest()

	m := r.Fields()
	assert.Equal(t, "R1", m["hostname"])
	assert.Equal(t, "true", m[FieldSerialActivate])
	assert.Equal(t, "ospf", m[FieldRoutingProtocol])
	assert.Equal(t, "10:users:FastEthernet0/1:access;20:uplink:FastEthernet0/24:trunk", m[FieldVlans])

	got, err := RequestFromFields(m)
	require.NoError(t, err)

	if d := cmp.Diff(r, got); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

func TestFieldsOmitEmpty(t *testing.T) {
	r := &Request{Identity: Identity{Hostname: "R1"}}

	assert.Equal(t, map[string]string{"hostname": "R1"}, r.Fields())
}

func TestFieldKeysCoverFields(t *testing.T) {
	keys := FieldKeys()
	m := fullRequest().Fields()

	for k := range m {
		assert.Contains(t, keys, k)
	}
	assert.Len(t, m, len(keys), "a full request sets every key")
}

func TestRequestFromFieldsErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"bad boolean":    {FieldSerialActivate: "yes please"},
		"vlan too big":   {FieldVlans: "5000:big:Fa0/1:access"},
		"vlan malformed": {FieldVlans: "10:users"},
	}

	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := RequestFromFields(m)
			assert.Error(t, err)
		})
	}
}

func TestRequestFromFieldsIgnoresUnknown(t *testing.T) {
	r, err := RequestFromFields(map[string]string{"hostname": "R2", "color": "blue", FieldVlans: ""})
	require.NoError(t, err)
	assert.Equal(t, &Request{Identity: Identity{Hostname: "R2"}}, r)
}
