// SPDX-License-Identifier: Apache-2.0

// Package normalize maps structurally altered candidate names back to
// canonical reference names: vendor alert prefixes are stripped, mapping
// scaffolding is collapsed, and common namespaces are tried. Different
// structured-document emitters encode field paths with different scaffolding
// conventions, so no single substitution covers them all.
package normalize

import (
	"strings"

	"github.com/norrietaylor/ecs-detective/internal/schema"
)

const (
	vendorAlertPrefix   = "kibana.alert."
	originalEventPrefix = "original_event."
	rulePrefix          = "rule."
	ruleParamsPrefix    = "rule.parameters."
)

// commonNamespaces are the top-level namespaces tried when a stripped
// remainder does not match the schema directly.
var commonNamespaces = []string{"event", "log", "user", "host", "process", "source", "destination"}

// rule is one normalization attempt. Rules are evaluated in order and the
// first schema hit wins.
type rule struct {
	name  string
	apply func(candidate string, set schema.Set) (string, bool)
}

var rules = []rule{
	{"strip-alert-prefix", stripAlertPrefix},
	{"original-event", originalEvent},
	{"common-namespace", commonNamespace},
	{"strip-rule-prefix", stripRule},
	{"strip-rule-parameters", stripRuleParameters},
	{"collapse-mapping-scaffolding", collapseMappingScaffolding},
	{"metadata-echo", metadataEcho},
	{"duplicate-namespace-echo", duplicateNamespaceEcho},
}

// Normalize returns the reference name a candidate normalizes to, if any.
func Normalize(candidate string, set schema.Set) (string, bool) {
	name, ok, _ := NormalizeWithTrace(candidate, set)
	return name, ok
}

// NormalizeWithTrace additionally returns the names of the rules attempted,
// in order. The winning rule is the last entry.
func NormalizeWithTrace(candidate string, set schema.Set) (string, bool, []string) {
	var attempted []string
	for _, r := range rules {
		attempted = append(attempted, r.name)
		if name, ok := r.apply(candidate, set); ok {
			return name, true, attempted
		}
	}
	return "", false, attempted
}

// remainder strips the vendor alert prefix when present. Rules that operate
// on the stripped remainder use this so un-prefixed candidates still get the
// same treatment.
func remainder(candidate string) string {
	return strings.TrimPrefix(candidate, vendorAlertPrefix)
}

func stripAlertPrefix(candidate string, set schema.Set) (string, bool) {
	if !strings.HasPrefix(candidate, vendorAlertPrefix) {
		return "", false
	}
	rem := remainder(candidate)
	if set.Contains(rem) {
		return rem, true
	}
	return "", false
}

// originalEvent rewrites a nested original-event sub-path to the top-level
// event namespace: kibana.alert.original_event.action -> event.action.
func originalEvent(candidate string, set schema.Set) (string, bool) {
	rem := remainder(candidate)
	if !strings.HasPrefix(rem, originalEventPrefix) {
		return "", false
	}
	name := "event." + strings.TrimPrefix(rem, originalEventPrefix)
	if set.Contains(name) {
		return name, true
	}
	return "", false
}

func commonNamespace(candidate string, set schema.Set) (string, bool) {
	return tryNamespaces(remainder(candidate), set)
}

func stripRule(candidate string, set schema.Set) (string, bool) {
	rem := remainder(candidate)
	if !strings.HasPrefix(rem, rulePrefix) {
		return "", false
	}
	stripped := strings.TrimPrefix(rem, rulePrefix)
	if set.Contains(stripped) {
		return stripped, true
	}
	return tryNamespaces(stripped, set)
}

func stripRuleParameters(candidate string, set schema.Set) (string, bool) {
	rem := remainder(candidate)
	if !strings.HasPrefix(rem, ruleParamsPrefix) {
		return "", false
	}
	stripped := strings.TrimPrefix(rem, ruleParamsPrefix)
	if set.Contains(stripped) {
		return stripped, true
	}
	return tryNamespaces(stripped, set)
}

// collapseMappingScaffolding drops properties/mappings scaffolding segments:
// mappings.properties.user.properties.name -> user.name. A trailing "type"
// segment left over from a mapping option is dropped on a second attempt.
func collapseMappingScaffolding(candidate string, set schema.Set) (string, bool) {
	if !strings.Contains(candidate, "properties.") && !strings.Contains(candidate, ".properties") {
		return "", false
	}
	segs := strings.Split(candidate, ".")
	kept := segs[:0:0]
	for _, s := range segs {
		if s == "properties" || s == "mappings" {
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return "", false
	}
	name := strings.Join(kept, ".")
	if set.Contains(name) {
		return name, true
	}
	if kept[len(kept)-1] == "type" {
		trimmed := strings.Join(kept[:len(kept)-1], ".")
		if set.Contains(trimmed) {
			return trimmed, true
		}
	}
	return "", false
}

// metadataEcho extracts the inner field path from schema-metadata shapes
// like ecs.fields.user.name -> user.name.
func metadataEcho(candidate string, set schema.Set) (string, bool) {
	segs := strings.Split(candidate, ".")
	if len(segs) < 3 || segs[1] != "fields" {
		return "", false
	}
	name := strings.Join(segs[2:], ".")
	if set.Contains(name) {
		return name, true
	}
	return "", false
}

// duplicateNamespaceEcho collapses ns.fields.ns.leaf echoes to ns.leaf,
// repeatedly for stacked echoes.
func duplicateNamespaceEcho(candidate string, set schema.Set) (string, bool) {
	segs := strings.Split(candidate, ".")
	collapsed := false
	for len(segs) >= 4 && segs[1] == "fields" && segs[2] == segs[0] {
		segs = append(segs[:1], segs[3:]...)
		collapsed = true
	}
	if !collapsed {
		return "", false
	}
	name := strings.Join(segs, ".")
	if set.Contains(name) {
		return name, true
	}
	return "", false
}

func tryNamespaces(rem string, set schema.Set) (string, bool) {
	for _, ns := range commonNamespaces {
		name := ns + "." + rem
		if set.Contains(name) {
			return name, true
		}
	}
	return "", false
}
