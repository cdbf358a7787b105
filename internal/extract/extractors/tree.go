// SPDX-License-Identifier: Apache-2.0

package extractors

// FieldsFromTree walks a parsed mapping tree and returns the leaf field
// paths, validated and sorted. "properties" scaffolding segments are
// collapsed: the owning key joins the path, the scaffolding key does not.
func FieldsFromTree(node any, prefix string) []string {
	set := candidateSet{}
	walkTree(node, prefix, set)
	return set.slice()
}

func walkTree(node any, prefix string, set candidateSet) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			path := joinPath(prefix, key)
			switch child := val.(type) {
			case map[string]any:
				if props, ok := child["properties"].(map[string]any); ok {
					walkTree(props, path, set)
					continue
				}
				// A leaf definition carrying a type marker is a field
				// declaration; its remaining keys are mapping options.
				if _, ok := child["type"]; ok {
					set.add(path)
					continue
				}
				walkTree(child, path, set)
			case []any:
				for _, item := range child {
					walkTree(item, path, set)
				}
			default:
				// Leaves without an explicit type are still field
				// declarations when the path shape holds up.
				set.add(path)
			}
		}
	case []any:
		for _, item := range v {
			walkTree(item, prefix, set)
		}
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
