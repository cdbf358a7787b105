// SPDX-License-Identifier: Apache-2.0

// Package extractors provides the per-syntax candidate extractors registered
// with the extraction pipeline.
package extractors

import (
	"regexp"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/norrietaylor/ecs-detective/internal/extract"
	"github.com/norrietaylor/ecs-detective/internal/field"
)

// candidateSet accumulates validated candidates. Each extractor owns its set
// and returns a sorted slice; the pipeline unions across extractors.
type candidateSet map[string]struct{}

func (s candidateSet) add(candidate string) {
	if field.IsValidFieldName(candidate) {
		s[candidate] = struct{}{}
	}
}

func (s candidateSet) addMatches(re *regexp.Regexp, text string) {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		s.add(m[1])
	}
}

func (s candidateSet) slice() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Fallback patterns shared by the structured extractor and fragment-local
// fallbacks: dotted keys before a colon, and quoted dotted tokens.
var (
	dottedKeyRe    = regexp.MustCompile(`(?m)^\s*["']?([a-zA-Z@][a-zA-Z0-9_]*(?:\.[a-zA-Z][a-zA-Z0-9_]*)+)["']?\s*:`)
	quotedDottedRe = regexp.MustCompile(`["']([a-zA-Z@][a-zA-Z0-9_]*(?:\.[a-zA-Z][a-zA-Z0-9_]*)+)["']`)
)

// strictParse unmarshals a structured fragment into a mapping tree. YAML is
// a superset of JSON, and flow-style parsing also accepts most JS object
// literals with unquoted keys, so one parser covers all three shapes.
func strictParse(fragment string) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal([]byte(fragment), &tree); err != nil {
		return nil, &extract.ParseFallbackError{Err: err}
	}
	return tree, nil
}

// balancedBlock returns the brace-delimited block starting at the '{' at
// index open, braces included, and whether a matching close brace was found.
// Braces inside quoted string literals do not affect nesting depth; regex
// alone cannot bound these fragments because nesting depth is unbounded.
func balancedBlock(text string, open int) (string, bool) {
	if open < 0 || open >= len(text) || text[open] != '{' {
		return "", false
	}
	depth := 0
	var quote byte
	for i := open; i < len(text); i++ {
		ch := text[i]
		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open : i+1], true
			}
		}
	}
	return "", false
}
