// SPDX-License-Identifier: Apache-2.0

package extract

// ParseFallbackError marks a strict-parse failure on a structured fragment.
// Extractors handle it by falling back to pattern matching on that fragment;
// it never escapes the pipeline.
type ParseFallbackError struct {
	Err error
}

func (e *ParseFallbackError) Error() string {
	return "strict parse failed: " + e.Err.Error()
}

func (e *ParseFallbackError) Unwrap() error {
	return e.Err
}
