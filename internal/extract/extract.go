// SPDX-License-Identifier: Apache-2.0

package extract

import "context"

// Syntax is the detected syntax kind of a source file, assigned by the
// scanner from the file extension.
type Syntax string

const (
	// SyntaxCode covers languages whose source mixes field references with
	// API calls (JavaScript, Java, Python, Go, ...).
	SyntaxCode Syntax = "code"
	// SyntaxTyped covers files declaring structured record shapes
	// (TypeScript interfaces and type literals).
	SyntaxTyped Syntax = "typed"
	// SyntaxStructured covers declarative data formats (JSON, YAML, NDJSON).
	SyntaxStructured Syntax = "structured"
	// SyntaxGeneric is the permissive catch-all for unknown text formats.
	SyntaxGeneric Syntax = "generic"
)

// Source describes the raw input to the extraction pipeline.
type Source struct {
	// Content is the raw file text.
	Content []byte
	Syntax  Syntax
	Path    string
}

// Extractor scans a source and returns candidate field names, each already
// filtered through the field-name validator. Implementations own their
// result set; callers union results across extractors.
type Extractor interface {
	CanHandle(src Source) bool
	Extract(ctx context.Context, src Source) ([]string, error)
	Name() string
}
