// SPDX-License-Identifier: Apache-2.0

package classify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norrietaylor/ecs-detective/internal/classify"
	"github.com/norrietaylor/ecs-detective/internal/extract"
	"github.com/norrietaylor/ecs-detective/internal/extract/extractors"
	"github.com/norrietaylor/ecs-detective/internal/field"
	"github.com/norrietaylor/ecs-detective/internal/schema"
	"github.com/norrietaylor/ecs-detective/internal/vendorlist"
)

func testSchema(names ...string) schema.Set {
	set := schema.Set{}
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func TestClassify(t *testing.T) {
	set := testSchema("user.name", "host.ip", "event.action", "event.severity", "@timestamp")
	vendors := vendorlist.Load("signal.rule\npanther\n")
	c := classify.New(set, vendors)

	tests := []struct {
		candidate string
		want      field.Category
	}{
		// direct schema membership
		{"user.name", field.Core},
		{"@timestamp", field.Core},

		// sub-field convention: anything under a schema member is core
		{"user.name.keyword", field.Core},
		{"host.ip.text", field.Core},

		// normalization recovers schema members from decorated forms
		{"kibana.alert.user.name", field.Core},
		{"kibana.alert.original_event.action", field.Core},
		{"kibana.alert.severity", field.Core},
		{"mappings.properties.user.properties.name", field.Core},

		// product namespace is vendor even without a matching pattern
		{"kibana.space.id", field.Vendor},
		{"kibana.saved_object.type", field.Vendor},

		// vendor pattern list
		{"signal.rule.id", field.Vendor},
		{"panther", field.Vendor},

		// everything else is custom
		{"myapp.internal.counter", field.Custom},
		{"user.nickname", field.Custom},
		{"users.name", field.Custom},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.candidate))
		})
	}
}

// A product-namespace candidate that normalizes into the schema is core, not
// vendor: normalization is consulted before the namespace check.
func TestClassify_NormalizationBeatsProductNamespace(t *testing.T) {
	c := classify.New(testSchema("user.name"), nil)
	assert.Equal(t, field.Core, c.Classify("kibana.alert.user.name"))
	assert.Equal(t, field.Vendor, c.Classify("kibana.alert.workflow_status"))
}

func TestClassify_NilVendorSet(t *testing.T) {
	c := classify.New(testSchema("user.name"), nil)
	assert.Equal(t, field.Vendor, c.Classify("kibana.space.id"))
	assert.Equal(t, field.Custom, c.Classify("signal.rule.id"))
}

// Every candidate gets exactly one category; there is no error path and no
// fourth outcome.
func TestClassify_Total(t *testing.T) {
	c := classify.New(testSchema("user.name"), vendorlist.Load("signal\n"))
	for _, candidate := range []string{
		"user.name", "user.name.keyword", "kibana.alert.user.name",
		"kibana.anything", "signal.rule.id", "completely.unknown", "message",
	} {
		got := c.Classify(candidate)
		assert.Contains(t, []field.Category{field.Core, field.Vendor, field.Custom}, got, "candidate %q", candidate)
	}
}

func TestAnalyzer_AnalyzeSource(t *testing.T) {
	set := testSchema("user.name", "host.ip")
	analyzer := classify.NewAnalyzer(
		extractors.DefaultPipeline(),
		classify.New(set, vendorlist.Load("signal\n")),
	)

	src := extract.Source{
		Syntax: extract.SyntaxGeneric,
		Path:   "notes.txt",
		Content: []byte(`The alert copies "user.name" and "signal.rule.id"
into "myapp.counter" before indexing.`),
	}

	result := analyzer.AnalyzeSource(context.Background(), src)
	assert.Equal(t, "notes.txt", result.Path)
	assert.Equal(t, extract.SyntaxGeneric, result.Syntax)
	assert.Equal(t, "generic", result.Extractor)

	byName := map[string]field.Category{}
	for _, f := range result.Fields {
		byName[f.Name] = f.Category
	}
	require.Len(t, byName, 3)
	assert.Equal(t, field.Core, byName["user.name"])
	assert.Equal(t, field.Vendor, byName["signal.rule.id"])
	assert.Equal(t, field.Custom, byName["myapp.counter"])
}

func TestAnalyzer_PipelineErrorIsolated(t *testing.T) {
	analyzer := classify.NewAnalyzer(
		extract.NewPipeline(), // nothing registered, every source errors
		classify.New(testSchema("user.name"), nil),
	)

	result := analyzer.AnalyzeSource(context.Background(), extract.Source{
		Syntax:  extract.SyntaxCode,
		Path:    "broken.js",
		Content: []byte(`term: { "user.name": 1 }`),
	})
	assert.Equal(t, "broken.js", result.Path)
	assert.Empty(t, result.Fields)
}
