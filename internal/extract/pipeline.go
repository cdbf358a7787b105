// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"context"
	"fmt"
	"sort"
)

// Pipeline routes a source to the first registered extractor that can handle
// it and returns the deduplicated candidate set.
type Pipeline struct {
	extractors []Extractor
}

// NewPipeline creates a new Pipeline with the provided extractors. Order
// matters: more specific extractors must be registered before the generic
// catch-all.
func NewPipeline(extractors ...Extractor) *Pipeline {
	return &Pipeline{extractors: extractors}
}

// RunResult is the output of a successful pipeline run.
type RunResult struct {
	Candidates    []string
	ExtractorUsed string
}

func (p *Pipeline) Run(ctx context.Context, src Source) ([]string, error) {
	result, err := p.RunWithMeta(ctx, src)
	if err != nil {
		return nil, err
	}
	return result.Candidates, nil
}

func (p *Pipeline) RunWithMeta(ctx context.Context, src Source) (RunResult, error) {
	extractor, err := p.selectExtractor(src)
	if err != nil {
		return RunResult{}, err
	}

	candidates, err := extractor.Extract(ctx, src)
	if err != nil {
		return RunResult{}, fmt.Errorf("extractor %q failed: %w", extractor.Name(), err)
	}

	return RunResult{
		Candidates:    dedupe(candidates),
		ExtractorUsed: extractor.Name(),
	}, nil
}

// selectExtractor returns the first registered extractor that can handle the
// given source.
func (p *Pipeline) selectExtractor(src Source) (Extractor, error) {
	for _, e := range p.extractors {
		if e.CanHandle(src) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unsupported syntax: no extractor for source %q (syntax %q)", src.Path, src.Syntax)
}

// RegisteredExtractors returns the names of all currently registered extractors.
func (p *Pipeline) RegisteredExtractors() []string {
	names := make([]string, len(p.extractors))
	for i, e := range p.extractors {
		names[i] = e.Name()
	}
	return names
}

func dedupe(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
