// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	clerrors "github.com/srl-labs/iosconfig/errors"
)

func FileExists(filename string) bool {
	f, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !f.IsDir()
}

// CreateFile writes content to a file by path `file`.
// A trailing newline is appended when content does not end with one.
func CreateFile(file, content string) error {
	var f *os.File
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if _, err := f.WriteString(content); err != nil {
		return err
	}

	return nil
}

// CreateDirectory creates a directory by a path with a mode/permission specified by perm.
// If directory exists, the function does not do anything.
func CreateDirectory(path string, perm os.FileMode) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, perm)
	}
	return nil
}

func ReadFileContent(file string) ([]byte, error) {
	// check file exists
	if !FileExists(file) {
		return nil, fmt.Errorf("%w: %s", clerrors.ErrFileNotFound, file)
	}

	return os.ReadFile(file)
}

// ResolvePath expands a leading ~ to the user home directory.
func ResolvePath(p string) (string, error) {
	if p == "" {
		return "", nil
	}

	return homedir.Expand(p)
}
