// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"context"
	"regexp"

	"github.com/norrietaylor/ecs-detective/internal/extract"
)

var (
	// Any quoted token in canonical shape, dotted or allow-listed single word.
	quotedTokenRe = regexp.MustCompile(`["']([a-zA-Z@][a-zA-Z0-9_]*(?:\.[a-zA-Z][a-zA-Z0-9_]*)*)["']`)
	// Bare dotted identifiers anywhere in the text.
	bareDottedRe = regexp.MustCompile(`[a-zA-Z@][a-zA-Z0-9_]*(?:\.[a-zA-Z][a-zA-Z0-9_]*)+`)
)

// GenericExtractor is the permissive catch-all for unknown text formats. It
// accepts the highest false-positive risk in exchange for coverage, so it
// must be registered last.
type GenericExtractor struct{}

func NewGenericExtractor() *GenericExtractor {
	return &GenericExtractor{}
}

func (e *GenericExtractor) Name() string {
	return "generic"
}

func (e *GenericExtractor) CanHandle(extract.Source) bool {
	return true
}

func (e *GenericExtractor) Extract(_ context.Context, src extract.Source) ([]string, error) {
	text := string(src.Content)
	set := candidateSet{}
	set.addMatches(quotedTokenRe, text)
	for _, m := range bareDottedRe.FindAllString(text, -1) {
		set.add(m)
	}
	return set.slice(), nil
}
