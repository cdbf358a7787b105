// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"context"
	"regexp"

	"github.com/norrietaylor/ecs-detective/internal/extract"
)

// codePatterns only fire when a candidate sits in a syntactic position that
// makes it overwhelmingly likely to be a field reference: query clauses,
// field: keys, sort clauses, script-style bracket access, or mapping keys.
// Bare quoted strings and bare dotted identifiers are deliberately ignored;
// in code they are dominated by API calls and arbitrary literals.
var codePatterns = []*regexp.Regexp{
	// query-DSL clauses; the clause key may be quoted or bare (JS object keys)
	regexp.MustCompile(`["']?\b(?:term|terms|match|match_phrase|range|exists|wildcard|prefix)["']?\s*:\s*\{\s*["']([a-zA-Z@][a-zA-Z0-9_.]*)["']`),
	// field: "name" keys in search bodies, aggregations and column configs
	regexp.MustCompile(`(?i)["']?field["']?\s*[:=]\s*["']([a-zA-Z@][a-zA-Z0-9_.]*)["']`),
	// sort clauses
	regexp.MustCompile(`"sort"\s*:\s*\[\s*\{?\s*"([a-zA-Z@][a-zA-Z0-9_.]*)"`),
	regexp.MustCompile(`\bsort\s*:\s*\[\s*['"]([a-zA-Z@][a-zA-Z0-9_.]*)['"]`),
	// script-style bracketed property access
	regexp.MustCompile(`\bdoc\[\s*['"]([a-zA-Z@][a-zA-Z0-9_.]*)['"]\s*\]`),
	regexp.MustCompile(`_source\[\s*['"]([a-zA-Z@][a-zA-Z0-9_.]*)['"]\s*\]`),
	// mapping keys declared with an explicit type
	regexp.MustCompile(`["']([a-zA-Z@][a-zA-Z0-9_.]*)["']\s*:\s*\{\s*["']?type["']?\s*:`),
}

// propsOpenRe locates embedded mapping blocks whose body must be carved out
// with balanced-brace scanning.
var propsOpenRe = regexp.MustCompile(`["']?properties["']?\s*:\s*\{`)

// CodeExtractor scans source code for field references appearing in
// unambiguous reference contexts.
type CodeExtractor struct{}

func NewCodeExtractor() *CodeExtractor {
	return &CodeExtractor{}
}

func (e *CodeExtractor) Name() string {
	return "code"
}

func (e *CodeExtractor) CanHandle(src extract.Source) bool {
	return src.Syntax == extract.SyntaxCode
}

func (e *CodeExtractor) Extract(_ context.Context, src extract.Source) ([]string, error) {
	text := string(src.Content)
	set := candidateSet{}

	for _, re := range codePatterns {
		set.addMatches(re, text)
	}

	for _, fragment := range mappingFragments(text) {
		extractFragment(fragment, set)
	}

	return set.slice(), nil
}

// mappingFragments carves out every properties-block body in the text.
func mappingFragments(text string) []string {
	var fragments []string
	for _, loc := range propsOpenRe.FindAllStringIndex(text, -1) {
		if block, ok := balancedBlock(text, loc[1]-1); ok {
			fragments = append(fragments, block)
		}
	}
	return fragments
}

// extractFragment strict-parses one mapping fragment and walks the tree; on
// parse failure it falls back to pattern matching on that fragment only.
func extractFragment(fragment string, set candidateSet) {
	tree, err := strictParse(fragment)
	if err != nil {
		set.addMatches(dottedKeyRe, fragment)
		set.addMatches(quotedDottedRe, fragment)
		return
	}
	for _, path := range FieldsFromTree(tree, "") {
		set.add(path)
	}
}
