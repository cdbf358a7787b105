// SPDX-License-Identifier: Apache-2.0

// Package classify decides the core / vendor / custom category for extracted
// candidates and applies the decision across whole files.
package classify

import (
	"strings"

	"github.com/norrietaylor/ecs-detective/internal/field"
	"github.com/norrietaylor/ecs-detective/internal/normalize"
	"github.com/norrietaylor/ecs-detective/internal/schema"
	"github.com/norrietaylor/ecs-detective/internal/vendorlist"
)

// uiProductNamespace is never core and never custom: it is the product's own
// namespace and classifies as vendor even without a vendor pattern set.
const uiProductNamespace = "kibana."

// Classifier is a pure function of (candidate, schema, vendor patterns);
// classification never depends on file order or prior files.
type Classifier struct {
	schema  schema.Set
	vendors *vendorlist.Set
}

// New creates a Classifier. vendors may be nil; vendor detection then
// degrades to the fixed product-namespace check.
func New(set schema.Set, vendors *vendorlist.Set) *Classifier {
	return &Classifier{schema: set, vendors: vendors}
}

// Classify returns exactly one category for any candidate. Decision order,
// first match wins: schema membership (direct or sub-field), normalization,
// product namespace, vendor patterns, custom.
func (c *Classifier) Classify(candidate string) field.Category {
	if c.isCore(candidate) {
		return field.Core
	}
	if _, ok := normalize.Normalize(candidate, c.schema); ok {
		return field.Core
	}
	if strings.HasPrefix(candidate, uiProductNamespace) {
		return field.Vendor
	}
	if c.vendors.Match(candidate) {
		return field.Vendor
	}
	return field.Custom
}

// isCore reports direct schema membership or the sub-field convention: a
// candidate beginning with "<schema member>." (user.name.keyword) is core.
func (c *Classifier) isCore(candidate string) bool {
	if c.schema.Contains(candidate) {
		return true
	}
	for i := len(candidate) - 1; i > 0; i-- {
		if candidate[i] == '.' && c.schema.Contains(candidate[:i]) {
			return true
		}
	}
	return false
}
