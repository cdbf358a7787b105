// SPDX-License-Identifier: Apache-2.0

package field

import "fmt"

// Category is the three-way classification of an extracted field name.
type Category int

const (
	// Core names are present in (or are sub-fields of) the reference schema.
	Core Category = iota
	// Vendor names belong to a recognized third-party namespace.
	Vendor
	// Custom names are neither core nor vendor.
	Custom
)

func (c Category) String() string {
	switch c {
	case Core:
		return "core"
	case Vendor:
		return "vendor"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText renders the category as its lowercase name in JSON output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classified pairs an extracted field name with its category.
type Classified struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}
