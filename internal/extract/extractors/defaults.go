// SPDX-License-Identifier: Apache-2.0

package extractors

import "github.com/norrietaylor/ecs-detective/internal/extract"

// DefaultPipeline builds a Pipeline with all default extractors registered.
// Extractor order matters: syntax-specific extractors are registered before
// the generic catch-all to avoid mis-detection.
func DefaultPipeline() *extract.Pipeline {
	return extract.NewPipeline(
		NewCodeExtractor(),
		NewTypedExtractor(),
		NewStructuredExtractor(),
		NewGenericExtractor(),
	)
}
