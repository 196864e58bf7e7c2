// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package templates persists configuration requests as named templates.
// Each template is a JSON file holding the flat field mapping of a request.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	clerrors "github.com/srl-labs/iosconfig/errors"
	"github.com/srl-labs/iosconfig/types"
	"github.com/srl-labs/iosconfig/utils"
	"golang.org/x/exp/slices"
)

const fileExt = ".json"

// Store is a directory of templates.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. A leading ~ is expanded.
// The directory is created on the first Save.
func NewStore(dir string) (*Store, error) {
	d, err := utils.ResolvePath(dir)
	if err != nil {
		return nil, err
	}
	if d == "" {
		return nil, fmt.Errorf("%w: empty template directory", clerrors.ErrIncorrectInput)
	}
	return &Store{dir: d}, nil
}

// Dir returns the directory of the store.
func (s *Store) Dir() string { return s.dir }

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty template name", clerrors.ErrIncorrectInput)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid template name %q", clerrors.ErrIncorrectInput, name)
	}
	return nil
}

// Path returns the file a template is stored in.
func (s *Store) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+fileExt), nil
}

// Save writes r as template name, replacing an existing one.
func (s *Store) Save(name string, r *types.Request) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(r.Fields(), "", "  ")
	if err != nil {
		return err
	}

	if err := utils.CreateDirectory(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create template directory %s: %w", s.dir, err)
	}

	if err := utils.CreateFile(p, string(b)); err != nil {
		return fmt.Errorf("failed to save template %q: %w", name, err)
	}

	log.Debugf("template %q saved to %s", name, p)

	return nil
}

// Load reads template name.
func (s *Store) Load(name string) (*types.Request, error) {
	p, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	b, err := utils.ReadFileContent(p)
	if err != nil {
		if errors.Is(err, clerrors.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", clerrors.ErrTemplateNotFound, name)
		}
		return nil, err
	}

	return decode(name, b)
}

func decode(name string, b []byte) (*types.Request, error) {
	fields := map[string]string{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	r, err := types.RequestFromFields(fields)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	return r, nil
}

// List returns the names of the readable templates, sorted.
// A missing directory holds no templates.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}

		name := strings.TrimSuffix(e.Name(), fileExt)

		b, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err == nil {
			_, err = decode(name, b)
		}
		if err != nil {
			log.Errorf("skipping template %s: %v", e.Name(), err)
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)

	return names, nil
}

// Delete removes template name.
func (s *Store) Delete(name string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", clerrors.ErrTemplateNotFound, name)
		}
		return err
	}

	log.Debugf("template %q deleted", name)

	return nil
}
