// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"inet.af/netaddr"
)

// IsValidAddress returns true if s is a dotted-quad IPv4 address with every octet in 0-255.
// IPv6 and IPv4-mapped IPv6 forms are rejected.
func IsValidAddress(s string) bool {
	ip, err := netaddr.ParseIP(s)
	if err != nil {
		return false
	}

	return ip.Is4()
}
