// SPDX-License-Identifier: Apache-2.0

// Package schema loads the canonical reference schema: the set of field
// names every scanned candidate is classified against.
package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/norrietaylor/ecs-detective/internal/field"
)

// ErrSchemaEmpty is returned when the reference CSV yields zero usable field
// rows. It is fatal for a run: no classification is possible without a
// reference set.
var ErrSchemaEmpty = errors.New("reference schema contains no usable field rows")

// Set is the immutable set of canonical field names, shared read-only across
// all files of a run.
type Set map[string]struct{}

func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Load parses the reference CSV's field column into a Set. The column is
// located by header name, case-insensitively. Rows are kept only if the
// value satisfies the canonical name grammar; the reference list is trusted
// input, so the scan-noise exclusion heuristics do not apply. Malformed rows
// are skipped silently.
func Load(csvText string) (Set, error) {
	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading schema CSV header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "field") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("schema CSV has no field column: %w", ErrSchemaEmpty)
	}

	set := Set{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if col >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[col])
		if field.MatchesGrammar(name) {
			set[name] = struct{}{}
		}
	}

	if len(set) == 0 {
		return nil, ErrSchemaEmpty
	}
	return set, nil
}
