// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/norrietaylor/ecs-detective/internal/classify"
	"github.com/norrietaylor/ecs-detective/internal/extract/extractors"
	"github.com/norrietaylor/ecs-detective/internal/report"
	"github.com/norrietaylor/ecs-detective/internal/scan"
	"github.com/norrietaylor/ecs-detective/internal/schema"
	"github.com/norrietaylor/ecs-detective/internal/vendorlist"
)

var version = "dev"

type options struct {
	schemaURL   string
	schemaFile  string
	vendorFile  string
	excludes    []string
	format      string
	maxFileSize int64
	workers     int
	offline     bool
	cacheDir    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ecs-detective [path]",
		Short: "Audit ECS field-name adoption in a codebase",
		Long: "ecs-detective scans source files for field-name references and classifies\n" +
			"each against the Elastic Common Schema reference set as core, vendor, or\n" +
			"custom, reporting schema-adoption statistics.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runAnalyze(cmd, root, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.schemaURL, "schema-url", schema.DefaultURL, "URL of the reference schema CSV")
	flags.StringVar(&opts.schemaFile, "schema-file", "", "local reference schema CSV (bypasses fetch and cache)")
	flags.StringVar(&opts.vendorFile, "vendor-file", "", "plain-text vendor namespace patterns, one per line")
	flags.BoolVar(&opts.offline, "offline", false, "never hit the network; use the cached schema only")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "schema cache directory (defaults to the user cache dir)")

	local := cmd.Flags()
	local.StringArrayVar(&opts.excludes, "exclude", nil, "gitignore-style exclusion pattern (repeatable)")
	local.StringVar(&opts.format, "format", "text", "output format: text or json")
	local.Int64Var(&opts.maxFileSize, "max-file-size", scan.DefaultMaxFileSize, "skip files larger than this many bytes")
	local.IntVar(&opts.workers, "concurrency", 0, "concurrent file analyzers (defaults to GOMAXPROCS)")

	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

func runAnalyze(cmd *cobra.Command, root string, opts *options) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", root)
	}

	analyzer, err := buildAnalyzer(cmd, opts)
	if err != nil {
		return err
	}

	scanner := &scan.Scanner{
		Root:        root,
		Excludes:    opts.excludes,
		MaxFileSize: opts.maxFileSize,
		Workers:     opts.workers,
		Warnings:    cmd.ErrOrStderr(),
	}
	results, err := scanner.Run(cmd.Context(), analyzer)
	if err != nil {
		return err
	}

	rep := report.New(results)
	switch opts.format {
	case "text":
		return rep.WriteText(cmd.OutOrStdout())
	case "json":
		return rep.WriteJSON(cmd.OutOrStdout())
	}
	return fmt.Errorf("unknown format %q", opts.format)
}

// buildAnalyzer loads the reference schema and vendor patterns and wires the
// default extraction pipeline. A missing or unreadable vendor file is not
// fatal; vendor detection degrades to the fixed product-namespace check.
func buildAnalyzer(cmd *cobra.Command, opts *options) (*classify.Analyzer, error) {
	csvText, err := loadSchemaCSV(cmd, opts)
	if err != nil {
		return nil, err
	}
	set, err := schema.Load(csvText)
	if err != nil {
		return nil, fmt.Errorf("loading reference schema: %w", err)
	}

	var vendors *vendorlist.Set
	if opts.vendorFile != "" {
		data, err := os.ReadFile(opts.vendorFile)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: vendor file %s: %v\n", opts.vendorFile, err)
		} else {
			vendors = vendorlist.Load(string(data))
		}
	}

	classifier := classify.New(set, vendors)
	return classify.NewAnalyzer(extractors.DefaultPipeline(), classifier), nil
}

func loadSchemaCSV(cmd *cobra.Command, opts *options) (string, error) {
	if opts.schemaFile != "" {
		data, err := os.ReadFile(opts.schemaFile)
		if err != nil {
			return "", fmt.Errorf("reading schema file: %w", err)
		}
		return string(data), nil
	}

	fetcher := &schema.Fetcher{
		URL:      opts.schemaURL,
		CacheDir: opts.cacheDir,
		Offline:  opts.offline,
	}
	return fetcher.Fetch(cmd.Context())
}
