// SPDX-License-Identifier: Apache-2.0

package scan_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norrietaylor/ecs-detective/internal/classify"
	"github.com/norrietaylor/ecs-detective/internal/extract"
	"github.com/norrietaylor/ecs-detective/internal/extract/extractors"
	"github.com/norrietaylor/ecs-detective/internal/scan"
	"github.com/norrietaylor/ecs-detective/internal/schema"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testAnalyzer(names ...string) *classify.Analyzer {
	set := schema.Set{}
	for _, n := range names {
		set[n] = struct{}{}
	}
	return classify.NewAnalyzer(
		extractors.DefaultPipeline(),
		classify.New(set, nil),
	)
}

func TestScanner_Files(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/query.js", `term: { "user.name": 1 }`)
	writeFile(t, root, "src/types.ts", "interface A {}")
	writeFile(t, root, "config/pipeline.yml", "field: event.kind")
	writeFile(t, root, "README.md", "docs")
	writeFile(t, root, "image.png", "binaryish")
	writeFile(t, root, ".hidden.js", "skip me")
	writeFile(t, root, "node_modules/dep/index.js", "skip me")
	writeFile(t, root, ".git/config.ini", "skip me")

	s := &scan.Scanner{Root: root}
	files, err := s.Files()
	require.NoError(t, err)

	paths := make([]string, 0, len(files))
	syntaxes := map[string]extract.Syntax{}
	for _, f := range files {
		paths = append(paths, f.Path)
		syntaxes[f.Path] = f.Syntax
	}

	assert.Equal(t, []string{
		"README.md",
		filepath.Join("config", "pipeline.yml"),
		filepath.Join("src", "query.js"),
		filepath.Join("src", "types.ts"),
	}, paths)
	assert.Equal(t, extract.SyntaxCode, syntaxes[filepath.Join("src", "query.js")])
	assert.Equal(t, extract.SyntaxTyped, syntaxes[filepath.Join("src", "types.ts")])
	assert.Equal(t, extract.SyntaxStructured, syntaxes[filepath.Join("config", "pipeline.yml")])
	assert.Equal(t, extract.SyntaxGeneric, syntaxes["README.md"])
}

func TestScanner_Excludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.js", "")
	writeFile(t, root, "generated/schema.json", "{}")
	writeFile(t, root, "fixtures/data.yml", "")

	s := &scan.Scanner{Root: root, Excludes: []string{"generated/", "fixtures/**"}}
	files, err := s.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.js", files[0].Path)
}

func TestScanner_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "out/\n*.log\n")
	writeFile(t, root, "keep.js", "")
	writeFile(t, root, "out/bundle.js", "")
	writeFile(t, root, "debug.log", "")

	s := &scan.Scanner{Root: root}
	files, err := s.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.js", files[0].Path)
}

func TestSyntaxForExtension(t *testing.T) {
	tests := []struct {
		ext    string
		want   extract.Syntax
		wantOK bool
	}{
		{".js", extract.SyntaxCode, true},
		{".TSX", extract.SyntaxTyped, true},
		{".ndjson", extract.SyntaxStructured, true},
		{".asciidoc", extract.SyntaxGeneric, true},
		{".png", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := scan.SyntaxForExtension(tt.ext)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestScanner_Run(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "query.js", `search({ term: { "user.name": "x" } });`)
	writeFile(t, root, "notes.txt", `References "host.ip" and "myapp.counter".`)

	s := &scan.Scanner{Root: root}
	results, err := s.Run(context.Background(), testAnalyzer("user.name", "host.ip"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "notes.txt", results[0].Path)
	assert.Equal(t, "query.js", results[1].Path)

	names := map[string]bool{}
	for _, r := range results {
		for _, f := range r.Fields {
			names[f.Name] = true
		}
	}
	assert.True(t, names["user.name"])
	assert.True(t, names["host.ip"])
	assert.True(t, names["myapp.counter"])
}

func TestScanner_Run_SkipsBinaryAndOversized(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "binary.js", "var x = 1;\x00\x01\x02")
	writeFile(t, root, "big.js", `"user.name" and lots of padding padding padding`)
	writeFile(t, root, "small.txt", `"host.ip"`)

	var warnings bytes.Buffer
	s := &scan.Scanner{Root: root, MaxFileSize: 20, Warnings: &warnings}
	results, err := s.Run(context.Background(), testAnalyzer("user.name", "host.ip"))
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "small.txt", results[0].Path)
	assert.Contains(t, warnings.String(), "binary.js")
	assert.Contains(t, warnings.String(), "big.js")
}
