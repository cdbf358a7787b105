// SPDX-License-Identifier: Apache-2.0

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norrietaylor/ecs-detective/internal/normalize"
	"github.com/norrietaylor/ecs-detective/internal/schema"
)

func testSchema(names ...string) schema.Set {
	set := schema.Set{}
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		schema    schema.Set
		want      string
		wantOK    bool
	}{
		{
			name:      "alert prefix stripped",
			candidate: "kibana.alert.user.name",
			schema:    testSchema("user.name"),
			want:      "user.name",
			wantOK:    true,
		},
		{
			name:      "original event rewritten to event namespace",
			candidate: "kibana.alert.original_event.action",
			schema:    testSchema("event.action"),
			want:      "event.action",
			wantOK:    true,
		},
		{
			name:      "common namespace prepended",
			candidate: "kibana.alert.severity",
			schema:    testSchema("event.severity"),
			want:      "event.severity",
			wantOK:    true,
		},
		{
			name:      "rule prefix stripped",
			candidate: "kibana.alert.rule.risk_score",
			schema:    testSchema("event.risk_score"),
			want:      "event.risk_score",
			wantOK:    true,
		},
		{
			name:      "rule parameters prefix stripped",
			candidate: "kibana.alert.rule.parameters.severity",
			schema:    testSchema("event.severity"),
			want:      "event.severity",
			wantOK:    true,
		},
		{
			name:      "mapping scaffolding collapsed",
			candidate: "mappings.properties.user.properties.name",
			schema:    testSchema("user.name"),
			want:      "user.name",
			wantOK:    true,
		},
		{
			name:      "mapping scaffolding with trailing type",
			candidate: "properties.host.properties.ip.type",
			schema:    testSchema("host.ip"),
			want:      "host.ip",
			wantOK:    true,
		},
		{
			name:      "metadata echo extracted",
			candidate: "ecs.fields.user.name",
			schema:    testSchema("user.name"),
			want:      "user.name",
			wantOK:    true,
		},
		{
			name:      "duplicate namespace echo collapsed",
			candidate: "host.fields.host.ip",
			schema:    testSchema("host.ip"),
			want:      "host.ip",
			wantOK:    true,
		},
		{
			name:      "no rule applies",
			candidate: "myapp.custom.counter",
			schema:    testSchema("user.name", "host.ip"),
			wantOK:    false,
		},
		{
			name:      "stripped remainder absent from schema",
			candidate: "kibana.alert.workflow_status",
			schema:    testSchema("user.name"),
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalize.Normalize(tt.candidate, tt.schema)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// When an earlier rule hits, later rules must never run, even if they could
// also produce a schema member.
func TestNormalize_ShortCircuit(t *testing.T) {
	// Rule 1 (strip-alert-prefix) and rule 6 (collapse-mapping-scaffolding)
	// both resolve this candidate; rule 1 must win and stop the chain.
	set := testSchema(
		"host.properties.name",   // rule 1 target
		"kibana.alert.host.name", // rule 6 target
	)
	candidate := "kibana.alert.host.properties.name"

	got, ok, attempted := normalize.NormalizeWithTrace(candidate, set)
	require.True(t, ok)
	assert.Equal(t, "host.properties.name", got)
	assert.Equal(t, []string{"strip-alert-prefix"}, attempted)
}

func TestNormalize_RuleOrderTrace(t *testing.T) {
	set := testSchema("user.name")
	_, ok, attempted := normalize.NormalizeWithTrace("totally.unrelated", set)
	require.False(t, ok)
	assert.Equal(t, []string{
		"strip-alert-prefix",
		"original-event",
		"common-namespace",
		"strip-rule-prefix",
		"strip-rule-parameters",
		"collapse-mapping-scaffolding",
		"metadata-echo",
		"duplicate-namespace-echo",
	}, attempted)
}
