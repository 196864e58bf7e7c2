// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/iosgen"
	"github.com/srl-labs/iosconfig/transport"
	"github.com/srl-labs/iosconfig/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRoot executes the root command with args and returns its stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	optionsInstance = nil

	root, err := Entrypoint()
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--config", ""))

	err = root.Execute()

	return out.String(), errOut.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, _, err := runRoot(t, "generate", "--hostname", "R1", "--enable-password", "class")
	require.NoError(t, err)

	want := []string{
		"enable",
		"configure terminal",
		"hostname R1",
		"enable secret class",
		"exit",
		"write memory",
	}

	if diff := cmp.Diff(want, strings.Split(strings.TrimSpace(out), "\n")); diff != "" {
		t.Errorf("generate output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateOutputFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "r1.txt")

	out, _, err := runRoot(t, "generate", "--hostname", "R1", "-o", p)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := utils.ReadFileContent(p)
	require.NoError(t, err)
	assert.Equal(t, "enable\nconfigure terminal\nhostname R1\nexit\nwrite memory\n", string(b))
}

func TestGenerateWarningsTable(t *testing.T) {
	_, errOut, err := runRoot(t, "generate", "-w", "--eigrp-asn", "abc",
		"--routing-protocol", "eigrp", "--routing-network", "10.0.0.0")
	require.NoError(t, err)

	assert.Contains(t, errOut, "Section")
	assert.Contains(t, errOut, string(iosgen.SectionRouting))
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer

	printWarnings(&buf, []iosgen.Warning{
		{Section: iosgen.SectionLAN, Message: "invalid IP address"},
		{Section: iosgen.SectionVlans, Message: "vlan 5000 skipped"},
	})

	got := buf.String()
	for _, s := range []string{"Section", "Warning", "lan", "invalid IP address", "vlans", "vlan 5000 skipped"} {
		assert.Contains(t, got, s)
	}

	buf.Reset()
	printWarnings(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestSendDryRun(t *testing.T) {
	out, _, err := runRoot(t, "send", "--dry-run", "--delay", "0s", "--hostname", "R1")
	require.NoError(t, err)

	assert.Equal(t, "enable\nconfigure terminal\nhostname R1\nexit\nwrite memory\n", out)
}

func TestSendWithoutPort(t *testing.T) {
	_, _, err := runRoot(t, "send", "--hostname", "R1")
	assert.ErrorIs(t, err, clerrors.ErrNoPort)
}

func TestLineTransport(t *testing.T) {
	tests := map[string]struct {
		opts    DeviceOptions
		wantErr error
		target  string
	}{
		"serial": {
			opts:   DeviceOptions{Transport: transportSerial, Port: "/dev/ttyUSB0", BaudRate: 9600},
			target: "/dev/ttyUSB0",
		},
		"serial without port": {
			opts:    DeviceOptions{Transport: transportSerial},
			wantErr: clerrors.ErrNoPort,
		},
		"ssh": {
			opts:   DeviceOptions{Transport: transportSSH, Host: "10.0.0.1", SSHPort: 22},
			target: "10.0.0.1",
		},
		"ssh without host": {
			opts:    DeviceOptions{Transport: transportSSH},
			wantErr: clerrors.ErrIncorrectInput,
		},
		"unknown transport": {
			opts:    DeviceOptions{Transport: "telnet"},
			wantErr: clerrors.ErrIncorrectInput,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tx, target, err := tc.opts.lineTransport()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, tx)
			assert.Equal(t, tc.target, target)
		})
	}
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer

	p := progressPrinter(&buf, false)
	p(1, 2)
	p(2, 2)

	assert.Equal(t, "\rsent 1/2 lines (50%)\rsent 2/2 lines (100%)\n", buf.String())
	assert.Nil(t, progressPrinter(&buf, true))
}

func TestPrintPorts(t *testing.T) {
	ports := []transport.PortInfo{
		{Name: "/dev/ttyUSB0", USB: true, VID: "0403", PID: "6001", Serial: "A50285BI", Product: "FT232R"},
		{Name: "/dev/ttyS0"},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printPorts(&buf, ports, "table"))

		got := buf.String()
		for _, s := range []string{"Port", "VID:PID", "/dev/ttyUSB0", "0403:6001", "FT232R", "/dev/ttyS0"} {
			assert.Contains(t, got, s)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printPorts(&buf, ports, "json"))

		var got []transport.PortInfo
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

		if diff := cmp.Diff(ports, got); diff != "" {
			t.Errorf("json ports mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		err := printPorts(&bytes.Buffer{}, ports, "xml")
		assert.ErrorIs(t, err, clerrors.ErrIncorrectInput)
	})
}

func TestPortsCommand(t *testing.T) {
	orig := listPorts
	t.Cleanup(func() { listPorts = orig })

	listPorts = func() ([]transport.PortInfo, error) {
		return []transport.PortInfo{{Name: "COM3", USB: true}}, nil
	}

	out, _, err := runRoot(t, "ports", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "COM3"`)
}

func TestBackupFilename(t *testing.T) {
	now := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "running-config-20240305-140709.txt", backupFilename(now))
}

func TestBackupWithoutPort(t *testing.T) {
	_, _, err := runRoot(t, "backup")
	assert.ErrorIs(t, err, clerrors.ErrNoPort)
}

func TestGenerateHelpListsSections(t *testing.T) {
	c, err := generateCmd(&Options{Request: newRequestOptions(), Generate: &GenerateOptions{}})
	require.NoError(t, err)

	assert.Contains(t, c.Long, "identity, lan, reset, serial, ssh, dhcp, routing, vlans")
}
