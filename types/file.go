// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"fmt"

	"github.com/srl-labs/iosconfig/utils"
	"gopkg.in/yaml.v2"
)

// LoadRequestFile reads a request definition file. The file is YAML with one key per
// section; JSON files are accepted as well since JSON is a subset of YAML.
func LoadRequestFile(path string) (*Request, error) {
	b, err := utils.ReadFileContent(path)
	if err != nil {
		return nil, err
	}

	return ParseRequest(b)
}

// ParseRequest decodes a request definition. Unknown keys are an error.
func ParseRequest(b []byte) (*Request, error) {
	r := &Request{}
	if err := yaml.UnmarshalStrict(b, r); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	for i, v := range r.Vlans {
		v = v.Normalize()
		r.Vlans[i] = v

		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("vlan entry %d: %w", i+1, err)
		}
	}

	return r, nil
}

// Marshal encodes the request in the request file format.
func (r *Request) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
