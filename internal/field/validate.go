// SPDX-License-Identifier: Apache-2.0

// Package field defines the field-name category model and the validation
// heuristics that separate plausible field names from scan noise (API calls,
// paths, URLs, hashes, UI configuration keys).
package field

import (
	"regexp"
	"strings"
)

// nameRe is the canonical field-name grammar: the first segment may start
// with '@' (for @timestamp), every segment is a letter followed by
// letters/digits/underscores, segments are dot-joined.
var nameRe = regexp.MustCompile(`^[a-zA-Z@][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)*$`)

// singleWordAllowed lists the only names accepted without a dot.
var singleWordAllowed = map[string]struct{}{
	"@timestamp": {},
	"message":    {},
	"tags":       {},
	"labels":     {},
	"error":      {},
	"level":      {},
}

// exclusion is one false-positive filter. Filters run in declaration order
// and the first match rejects the candidate.
type exclusion struct {
	name  string
	match func(string) bool
}

var exclusions = []exclusion{
	{"file-extension", hasFileExtension},
	{"url-or-domain", looksLikeURL},
	{"asset-reference", looksLikeAsset},
	{"abbreviation", isAbbreviationOrExecutable},
	{"ui-config-key", isUIConfigKey},
	{"hash-identifier", looksLikeHash},
	{"editor-reference", looksLikeEditorRef},
	{"api-call", IsCommonAPIPattern},
}

// MatchesGrammar reports whether candidate satisfies the canonical name
// grammar, without applying any exclusion heuristic. The schema loader uses
// this directly: a reference CSV is trusted input, not scan output.
func MatchesGrammar(candidate string) bool {
	return len(candidate) > 1 && nameRe.MatchString(candidate)
}

// IsValidFieldName reports whether candidate is plausibly a namespaced field
// name rather than an artifact of scanning source code.
func IsValidFieldName(candidate string) bool {
	if !MatchesGrammar(candidate) {
		return false
	}
	if !strings.Contains(candidate, ".") {
		if _, ok := singleWordAllowed[candidate]; !ok {
			return false
		}
	}
	for _, ex := range exclusions {
		if ex.match(candidate) {
			return false
		}
	}
	return true
}

var fileExtensions = map[string]struct{}{
	// images
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "svg": {}, "ico": {}, "bmp": {}, "webp": {},
	// styles and markup
	"css": {}, "scss": {}, "less": {}, "html": {}, "htm": {}, "xml": {},
	// scripts
	"js": {}, "jsx": {}, "ts": {}, "tsx": {}, "mjs": {}, "cjs": {},
	// config and text
	"json": {}, "yml": {}, "yaml": {}, "toml": {}, "ini": {}, "conf": {}, "cfg": {},
	"txt": {}, "md": {}, "markdown": {}, "rst": {}, "csv": {},
	// fonts and media
	"woff": {}, "woff2": {}, "ttf": {}, "eot": {}, "otf": {},
	"mp3": {}, "mp4": {}, "wav": {}, "avi": {}, "mov": {}, "webm": {},
	// archives and documents
	"zip": {}, "tar": {}, "gz": {}, "tgz": {}, "rar": {},
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "ppt": {}, "pptx": {},
}

func hasFileExtension(c string) bool {
	i := strings.LastIndex(c, ".")
	if i < 0 {
		return false
	}
	_, ok := fileExtensions[strings.ToLower(c[i+1:])]
	return ok
}

var knownTLDs = map[string]struct{}{
	"com": {}, "org": {}, "net": {}, "io": {}, "dev": {}, "edu": {}, "gov": {}, "mil": {},
	"uk": {}, "de": {}, "fr": {}, "jp": {}, "info": {}, "biz": {},
}

var docDomains = []string{
	"github.com", "githubusercontent.com", "elastic.co",
	"mozilla.org", "w3.org", "apache.org", "stackoverflow.com",
}

func looksLikeURL(c string) bool {
	lower := strings.ToLower(c)
	if strings.HasPrefix(lower, "www.") || strings.HasPrefix(lower, "ftp.") {
		return true
	}
	for _, d := range docDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	if i := strings.LastIndex(lower, "."); i >= 0 {
		if _, ok := knownTLDs[lower[i+1:]]; ok {
			return true
		}
	}
	return false
}

var numberedAssetRe = regexp.MustCompile(`(?i)^(icon|logo|screenshot|image|img|banner)[_-]?\d`)

func looksLikeAsset(c string) bool {
	lower := strings.ToLower(c)
	for _, p := range []string{"assets.", "static.", "img.", "images.", "public."} {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return numberedAssetRe.MatchString(c)
}

var abbreviations = map[string]struct{}{
	"e.g": {}, "i.e": {}, "etc": {}, "vs": {},
}

func isAbbreviationOrExecutable(c string) bool {
	lower := strings.ToLower(c)
	if _, ok := abbreviations[lower]; ok {
		return true
	}
	for _, ext := range []string{".exe", ".dll", ".bat", ".ps1", ".msi", ".sh", ".bin"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// uiConfigPrefixes covers dashboard and visualization persistence keys that
// share the dotted shape of field names but describe UI state, not events.
var uiConfigPrefixes = []string{
	"griddata.", "grid.", "layout.", "embeddableconfig.", "panelconfig.",
	"panel.", "panels.", "panelsjson", "dashboard.", "dashboards.",
	"visualization.", "visualizations.", "uistate", "appstate", "globalstate",
	"example.", "examples.", "template.", "templates.",
}

func isUIConfigKey(c string) bool {
	lower := strings.ToLower(c)
	for _, p := range uiConfigPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

var (
	hexRunRe = regexp.MustCompile(`^[0-9a-fA-F]{16,}$`)
	guidRe   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// looksLikeHash rejects long hex runs and GUID-shaped strings, whether the
// candidate is one outright or carries one as a dot-segment.
func looksLikeHash(c string) bool {
	if guidRe.MatchString(c) {
		return true
	}
	for _, seg := range strings.Split(c, ".") {
		if hexRunRe.MatchString(seg) || guidRe.MatchString(seg) {
			return true
		}
	}
	return false
}

var editorPrefixes = []string{
	"vscode.", "vs.", "jetbrains.", "intellij.", "eclipse.", "xcode.",
	"sublime.", "vim.", "emacs.", "extension.", "extensions.", "marketplace.",
}

// domainFragmentRe matches two-segment names where both segments are two or
// three letters ("co.uk", "ms.vs"), a shape field names essentially never take.
var domainFragmentRe = regexp.MustCompile(`^[a-zA-Z]{2,3}\.[a-zA-Z]{2,3}$`)

func looksLikeEditorRef(c string) bool {
	lower := strings.ToLower(c)
	for _, p := range editorPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return domainFragmentRe.MatchString(c)
}
