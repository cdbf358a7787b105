// SPDX-License-Identifier: Apache-2.0

package field

import "strings"

// commonAPIPrefixes lists dotted call shapes that code scanning surfaces
// constantly: routing objects, built-in language namespaces, test-framework
// calls, configuration accessors, and HTTP-client namespaces. Namespaces that
// collide with legitimate schema fields (error.*, event.*, process.*, os.*)
// are deliberately absent or pinned to a full method name.
var commonAPIPrefixes = []string{
	// web-framework routing
	"router.", "route.", "express.",
	"app.get", "app.post", "app.put", "app.delete", "app.patch", "app.use", "app.listen",
	"server.route", "req.", "res.", "request.", "response.",

	// built-in language object namespaces
	"object.", "array.", "string.", "number.", "date.", "math.", "json.",
	"promise.", "symbol.", "reflect.", "proxy.", "console.", "window.",
	"document.", "navigator.", "globalthis.", "buffer.",
	"process.env", "process.argv", "process.exit",

	// utility libraries
	"lodash.", "moment.", "path.join", "path.resolve",

	// test-framework assertion and setup calls
	"expect.", "jest.", "describe.", "it.", "test.", "mocha.", "chai.",
	"sinon.", "assert.", "cy.", "jasmine.",
	"beforeeach.", "aftereach.", "beforeall.", "afterall.",

	// configuration-object accessors
	"config.get", "config.set", "settings.get", "settings.set",
	"options.get", "env.get",

	// HTTP clients
	"axios.", "superagent.", "got.", "fetch.",
	"request.get", "request.post",
}

// IsCommonAPIPattern reports whether candidate is a known host-language or
// framework call expression rather than a field reference. Matching is
// case-insensitive on prefixes.
func IsCommonAPIPattern(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, p := range commonAPIPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
