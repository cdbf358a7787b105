// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"context"

	"github.com/norrietaylor/ecs-detective/internal/extract"
	"github.com/norrietaylor/ecs-detective/internal/field"
)

// FileResult is one file's classified field list. Immutable after creation.
type FileResult struct {
	Path      string             `json:"path"`
	Syntax    extract.Syntax     `json:"syntax"`
	Extractor string             `json:"extractor,omitempty"`
	Fields    []field.Classified `json:"fields"`
}

// Analyzer runs the extraction pipeline and classifies the candidates.
type Analyzer struct {
	pipeline   *extract.Pipeline
	classifier *Classifier
}

func NewAnalyzer(pipeline *extract.Pipeline, classifier *Classifier) *Analyzer {
	return &Analyzer{pipeline: pipeline, classifier: classifier}
}

// AnalyzeSource extracts and classifies one source. Extraction failures are
// isolated per file: the file comes back with zero fields rather than
// failing the batch.
func (a *Analyzer) AnalyzeSource(ctx context.Context, src extract.Source) FileResult {
	result, err := a.pipeline.RunWithMeta(ctx, src)
	if err != nil {
		return FileResult{Path: src.Path, Syntax: src.Syntax}
	}

	fields := make([]field.Classified, 0, len(result.Candidates))
	for _, candidate := range result.Candidates {
		fields = append(fields, field.Classified{
			Name:     candidate,
			Category: a.classifier.Classify(candidate),
		})
	}
	return FileResult{
		Path:      src.Path,
		Syntax:    src.Syntax,
		Extractor: result.ExtractorUsed,
		Fields:    fields,
	}
}
