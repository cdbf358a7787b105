// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"context"
	"regexp"

	"github.com/norrietaylor/ecs-detective/internal/extract"
)

// declOpenRe locates interface and type-literal declaration bodies. Only the
// opening brace position matters; the body itself is isolated by balanced
// brace matching since member nesting depth is unbounded.
var declOpenRe = regexp.MustCompile(`\b(?:interface\s+\w+(?:\s+extends\s+[\w.,\s]+?)?|type\s+\w+(?:<[^>]*>)?\s*=)\s*\{`)

var (
	// quoted dotted member keys: 'user.name': string
	quotedMemberRe = regexp.MustCompile(`["']([a-zA-Z@][a-zA-Z0-9_]*(?:\.[a-zA-Z][a-zA-Z0-9_]*)+)["']\s*\??\s*:`)
	// unquoted dotted keys followed by a colon
	unquotedMemberRe = regexp.MustCompile(`(?m)^\s*([a-zA-Z@][a-zA-Z0-9_]*(?:\.[a-zA-Z][a-zA-Z0-9_]*)+)\s*\??\s*:`)
)

// TypedExtractor scans files declaring structured record shapes (TypeScript
// interfaces, type literals) for dotted member keys.
type TypedExtractor struct{}

func NewTypedExtractor() *TypedExtractor {
	return &TypedExtractor{}
}

func (e *TypedExtractor) Name() string {
	return "typed"
}

func (e *TypedExtractor) CanHandle(src extract.Source) bool {
	return src.Syntax == extract.SyntaxTyped
}

func (e *TypedExtractor) Extract(_ context.Context, src extract.Source) ([]string, error) {
	text := string(src.Content)
	set := candidateSet{}

	for _, loc := range declOpenRe.FindAllStringIndex(text, -1) {
		body, ok := balancedBlock(text, loc[1]-1)
		if !ok {
			continue
		}
		set.addMatches(quotedMemberRe, body)
		set.addMatches(unquotedMemberRe, body)
	}

	// Declaration files also reference fields in query and mapping contexts.
	for _, fragment := range mappingFragments(text) {
		extractFragment(fragment, set)
	}

	return set.slice(), nil
}
