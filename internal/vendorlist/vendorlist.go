// SPDX-License-Identifier: Apache-2.0

// Package vendorlist loads and matches the optional set of known third-party
// namespace patterns.
package vendorlist

import "strings"

// Set holds vendor namespace patterns. Patterns are stored without their
// optional leading dot; matching treats each as a namespace root.
type Set struct {
	patterns []string
}

// Load parses plain-text pattern lines. Blank lines and '#' comment lines
// are ignored; a leading dot on a pattern is equivalent to none.
func Load(text string) *Set {
	var patterns []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.TrimPrefix(line, "."))
	}
	return &Set{patterns: patterns}
}

// Match reports whether candidate equals a pattern or sits under one as a
// dotted sub-path. A nil Set matches nothing, so a missing vendor file
// degrades vendor detection instead of failing the run.
func (s *Set) Match(candidate string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.patterns {
		if candidate == p || strings.HasPrefix(candidate, p+".") {
			return true
		}
	}
	return false
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}
