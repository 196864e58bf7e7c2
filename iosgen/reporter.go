// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package iosgen

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Reporter receives the warnings raised while sections are generated.
// A warning never stops generation, the offending block is left out.
type Reporter interface {
	Warn(section Section, msg string)
}

// Warning is a single reported problem.
type Warning struct {
	Section Section
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Section, w.Message)
}

// LogReporter writes warnings to a logrus logger with a section field.
type LogReporter struct {
	logger log.FieldLogger
}

// NewLogReporter returns a reporter logging to l, the standard logger if l is nil.
func NewLogReporter(l log.FieldLogger) *LogReporter {
	if l == nil {
		l = log.StandardLogger()
	}
	return &LogReporter{logger: l}
}

func (r *LogReporter) Warn(section Section, msg string) {
	r.logger.WithField("section", string(section)).Warn(msg)
}

// Collector keeps warnings in the order they were reported.
// It is safe for use by concurrent generations.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

func (c *Collector) Warn(section Section, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warnings = append(c.warnings, Warning{Section: section, Message: msg})
}

// Warnings returns a copy of the collected warnings.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.warnings) == 0 {
		return nil
	}

	w := make([]Warning, len(c.warnings))
	copy(w, c.warnings)
	return w
}

// multiReporter fans a warning out to several reporters.
type multiReporter []Reporter

func (m multiReporter) Warn(section Section, msg string) {
	for _, r := range m {
		r.Warn(section, msg)
	}
}

type discardReporter struct{}

func (discardReporter) Warn(Section, string) {}
