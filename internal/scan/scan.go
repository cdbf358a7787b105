// SPDX-License-Identifier: Apache-2.0

// Package scan walks a repository tree, assigns each file a syntax kind from
// its extension, and runs the analyzer over the files concurrently.
package scan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/norrietaylor/ecs-detective/internal/classify"
	"github.com/norrietaylor/ecs-detective/internal/extract"
)

// DefaultMaxFileSize caps the files read during a scan.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// FileEntry is one discovered file.
type FileEntry struct {
	Path   string // relative to the scan root
	Syntax extract.Syntax
}

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"coverage":     {},
	"__pycache__":  {},
	".idea":        {},
	".vscode":      {},
}

var syntaxByExt = map[string]extract.Syntax{
	".js": extract.SyntaxCode, ".jsx": extract.SyntaxCode,
	".mjs": extract.SyntaxCode, ".cjs": extract.SyntaxCode,
	".java": extract.SyntaxCode, ".py": extract.SyntaxCode,
	".rb": extract.SyntaxCode, ".go": extract.SyntaxCode,
	".c": extract.SyntaxCode, ".cc": extract.SyntaxCode,
	".cpp": extract.SyntaxCode, ".cs": extract.SyntaxCode,
	".php": extract.SyntaxCode, ".scala": extract.SyntaxCode,
	".kt": extract.SyntaxCode, ".swift": extract.SyntaxCode,

	".ts": extract.SyntaxTyped, ".tsx": extract.SyntaxTyped,

	".json": extract.SyntaxStructured, ".ndjson": extract.SyntaxStructured,
	".yml": extract.SyntaxStructured, ".yaml": extract.SyntaxStructured,
	".toml": extract.SyntaxStructured,

	".txt": extract.SyntaxGeneric, ".md": extract.SyntaxGeneric,
	".conf": extract.SyntaxGeneric, ".cfg": extract.SyntaxGeneric,
	".ini": extract.SyntaxGeneric, ".log": extract.SyntaxGeneric,
	".asciidoc": extract.SyntaxGeneric,
}

// SyntaxForExtension returns the syntax kind for a file extension, or false
// if the extension is not scanned.
func SyntaxForExtension(ext string) (extract.Syntax, bool) {
	s, ok := syntaxByExt[strings.ToLower(ext)]
	return s, ok
}

// Scanner discovers and analyzes files under Root.
type Scanner struct {
	Root string
	// Excludes are gitignore-style pattern lines applied on top of the
	// repository's own .gitignore.
	Excludes    []string
	MaxFileSize int64
	Workers     int
	// Warnings receives per-file skip notices; io.Discard when nil.
	Warnings io.Writer
}

// Files discovers scannable files under the root, sorted by path.
func (s *Scanner) Files() ([]FileEntry, error) {
	gi := loadGitignore(s.Root)
	var excludes *ignore.GitIgnore
	if len(s.Excludes) > 0 {
		excludes = ignore.CompileIgnoreLines(s.Excludes...)
	}

	var results []FileEntry
	err := filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		name := d.Name()
		if d.IsDir() {
			if path == s.Root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if excludes != nil && excludes.MatchesPath(rel) {
			return nil
		}

		syntax, ok := SyntaxForExtension(filepath.Ext(name))
		if !ok {
			return nil
		}
		results = append(results, FileEntry{Path: rel, Syntax: syntax})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.Root, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// Run analyzes all discovered files concurrently. One file failing never
// aborts the batch; results come back sorted by path.
func (s *Scanner) Run(ctx context.Context, analyzer *classify.Analyzer) ([]classify.FileResult, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}

	warnings := s.Warnings
	if warnings == nil {
		warnings = io.Discard
	}
	maxSize := s.MaxFileSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*classify.FileResult, len(files))
	var warnMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, entry := range files {
		g.Go(func() error {
			content, skipReason := s.readFile(entry.Path, maxSize)
			if skipReason != "" {
				warnMu.Lock()
				fmt.Fprintf(warnings, "warning: %s: %s\n", entry.Path, skipReason)
				warnMu.Unlock()
				return nil
			}
			r := analyzer.AnalyzeSource(ctx, extract.Source{
				Content: content,
				Syntax:  entry.Syntax,
				Path:    entry.Path,
			})
			results[i] = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]classify.FileResult, 0, len(files))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Scanner) readFile(rel string, maxSize int64) (content []byte, skipReason string) {
	abs := filepath.Join(s.Root, rel)
	info, err := os.Stat(abs)
	if err != nil {
		return nil, "unreadable"
	}
	if info.Size() > maxSize {
		return nil, fmt.Sprintf("skipped (>%d bytes)", maxSize)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, "unreadable"
	}
	if isBinary(data) {
		return nil, "skipped (binary)"
	}
	return data, ""
}

// isBinary treats a NUL byte in the first 8 KiB as binary content.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > 8192 {
		probe = probe[:8192]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
