// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"context"
	"strings"

	"github.com/norrietaylor/ecs-detective/internal/extract"
)

// StructuredExtractor handles declarative data formats (JSON, YAML, NDJSON).
// It strict-parses the document and walks the resulting tree; on parse
// failure it falls back to line and key pattern matching.
type StructuredExtractor struct{}

func NewStructuredExtractor() *StructuredExtractor {
	return &StructuredExtractor{}
}

func (e *StructuredExtractor) Name() string {
	return "structured"
}

func (e *StructuredExtractor) CanHandle(src extract.Source) bool {
	return src.Syntax == extract.SyntaxStructured
}

func (e *StructuredExtractor) Extract(_ context.Context, src extract.Source) ([]string, error) {
	text := string(src.Content)
	set := candidateSet{}

	tree, err := strictParse(text)
	if err == nil {
		for _, path := range FieldsFromTree(tree, "") {
			set.add(path)
		}
		return set.slice(), nil
	}

	// NDJSON: one JSON document per line. Lines that fail to parse fall back
	// to pattern matching individually, never failing the whole file.
	if looksLikeNDJSON(text) {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lineTree, lineErr := strictParse(line)
			if lineErr != nil {
				set.addMatches(quotedDottedRe, line)
				continue
			}
			for _, path := range FieldsFromTree(lineTree, "") {
				set.add(path)
			}
		}
		return set.slice(), nil
	}

	set.addMatches(dottedKeyRe, text)
	set.addMatches(quotedDottedRe, text)
	return set.slice(), nil
}

// looksLikeNDJSON reports whether most non-blank lines open a JSON object.
func looksLikeNDJSON(text string) bool {
	total, jsonish := 0, 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total++
		if strings.HasPrefix(line, "{") {
			jsonish++
		}
	}
	return total > 1 && jsonish*2 > total
}
