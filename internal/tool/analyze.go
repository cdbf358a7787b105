// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/norrietaylor/ecs-detective/internal/classify"
	"github.com/norrietaylor/ecs-detective/internal/extract"
	"github.com/norrietaylor/ecs-detective/internal/field"
)

// MetadataAnalyzeSource describes the analyze_source tool.
var MetadataAnalyzeSource = &mcp.Tool{
	Name: "analyze_source",
	Description: "Extract field-name references from a source file and classify each " +
		"against the ECS reference schema as core, vendor, or custom. " +
		"Supported syntax kinds: code, typed, structured, generic. " +
		"Core fields are present in (or are sub-fields of) the reference schema; " +
		"vendor fields belong to a recognized third-party namespace; everything " +
		"else is custom.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the source file to analyze",
			},
			"syntax": map[string]interface{}{
				"type":        "string",
				"description": "Syntax kind of the content. One of: code, typed, structured, generic. Defaults to generic.",
				"enum":        []string{"code", "typed", "structured", "generic"},
			},
			"source_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional identifier for the source (file path, URL, etc.) echoed in the result.",
			},
		},
	},
}

// InputAnalyzeSource is the input for the AnalyzeSource tool.
type InputAnalyzeSource struct {
	Content  string `json:"content"`
	Syntax   string `json:"syntax"`
	SourceID string `json:"source_id"`
}

// OutputAnalyzeSource is the output for the AnalyzeSource tool.
type OutputAnalyzeSource struct {
	// Fields is the list of classified field references.
	Fields []field.Classified `json:"fields"`
	// ExtractorUsed is the name of the extractor that was selected.
	ExtractorUsed string `json:"extractor_used"`
	// FieldCount is the number of distinct candidates extracted.
	FieldCount int `json:"field_count"`
}

// AnalyzeSource returns the tool handler bound to an analyzer. The analyzer
// carries the reference schema and vendor patterns loaded at server start.
func AnalyzeSource(analyzer *classify.Analyzer) func(ctx context.Context, req *mcp.CallToolRequest, input InputAnalyzeSource) (*mcp.CallToolResult, OutputAnalyzeSource, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InputAnalyzeSource) (*mcp.CallToolResult, OutputAnalyzeSource, error) {
		if input.Content == "" {
			return nil, OutputAnalyzeSource{}, fmt.Errorf("content is required")
		}

		syntax, err := syntaxFromHint(input.Syntax)
		if err != nil {
			return nil, OutputAnalyzeSource{}, err
		}

		sourceID := input.SourceID
		if sourceID == "" {
			sourceID = "unknown"
		}

		result := analyzer.AnalyzeSource(ctx, extract.Source{
			Content: []byte(input.Content),
			Syntax:  syntax,
			Path:    sourceID,
		})

		return nil, OutputAnalyzeSource{
			Fields:        result.Fields,
			ExtractorUsed: result.Extractor,
			FieldCount:    len(result.Fields),
		}, nil
	}
}

func syntaxFromHint(hint string) (extract.Syntax, error) {
	switch hint {
	case "":
		return extract.SyntaxGeneric, nil
	case "code":
		return extract.SyntaxCode, nil
	case "typed":
		return extract.SyntaxTyped, nil
	case "structured":
		return extract.SyntaxStructured, nil
	case "generic":
		return extract.SyntaxGeneric, nil
	}
	return "", fmt.Errorf("unknown syntax kind %q", hint)
}
