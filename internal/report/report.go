// SPDX-License-Identifier: Apache-2.0

// Package report aggregates per-file classification results into run-level
// adoption statistics and renders them as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/norrietaylor/ecs-detective/internal/classify"
	"github.com/norrietaylor/ecs-detective/internal/field"
)

const topCustomLimit = 10

// CategoryStats summarizes one category across the run.
type CategoryStats struct {
	// DistinctNames counts unique field names in the category.
	DistinctNames int `json:"distinct_names"`
	// Occurrences counts name-per-file hits.
	Occurrences int      `json:"occurrences"`
	Names       []string `json:"names"`
}

// NameCount is a field name with the number of files referencing it.
type NameCount struct {
	Name  string `json:"name"`
	Files int    `json:"files"`
}

// Stats is the run-level summary.
type Stats struct {
	FilesScanned    int           `json:"files_scanned"`
	FilesWithFields int           `json:"files_with_fields"`
	Core            CategoryStats `json:"core"`
	Vendor          CategoryStats `json:"vendor"`
	Custom          CategoryStats `json:"custom"`
	// AdoptionRatio is distinct core names over distinct core+custom names.
	AdoptionRatio float64     `json:"adoption_ratio"`
	TopCustom     []NameCount `json:"top_custom"`
}

// Report pairs the summary with the per-file detail.
type Report struct {
	Stats Stats                 `json:"stats"`
	Files []classify.FileResult `json:"files"`
}

// New aggregates per-file results into a Report.
func New(results []classify.FileResult) *Report {
	nameFiles := map[field.Category]map[string]int{
		field.Core:   {},
		field.Vendor: {},
		field.Custom: {},
	}
	occurrences := map[field.Category]int{}

	filesWithFields := 0
	for _, r := range results {
		if len(r.Fields) > 0 {
			filesWithFields++
		}
		for _, f := range r.Fields {
			nameFiles[f.Category][f.Name]++
			occurrences[f.Category]++
		}
	}

	stats := Stats{
		FilesScanned:    len(results),
		FilesWithFields: filesWithFields,
		Core:            categoryStats(nameFiles[field.Core], occurrences[field.Core]),
		Vendor:          categoryStats(nameFiles[field.Vendor], occurrences[field.Vendor]),
		Custom:          categoryStats(nameFiles[field.Custom], occurrences[field.Custom]),
	}
	if denom := stats.Core.DistinctNames + stats.Custom.DistinctNames; denom > 0 {
		stats.AdoptionRatio = float64(stats.Core.DistinctNames) / float64(denom)
	}
	stats.TopCustom = topByFiles(nameFiles[field.Custom], topCustomLimit)

	return &Report{Stats: stats, Files: results}
}

func categoryStats(nameFiles map[string]int, occurrences int) CategoryStats {
	names := make([]string, 0, len(nameFiles))
	for name := range nameFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return CategoryStats{
		DistinctNames: len(names),
		Occurrences:   occurrences,
		Names:         names,
	}
}

func topByFiles(nameFiles map[string]int, limit int) []NameCount {
	counts := make([]NameCount, 0, len(nameFiles))
	for name, files := range nameFiles {
		counts = append(counts, NameCount{Name: name, Files: files})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Files != counts[j].Files {
			return counts[i].Files > counts[j].Files
		}
		return counts[i].Name < counts[j].Name
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// WriteText renders the human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Files scanned:\t%d\n", r.Stats.FilesScanned)
	fmt.Fprintf(tw, "Files with fields:\t%d\n", r.Stats.FilesWithFields)
	fmt.Fprintf(tw, "\n")
	fmt.Fprintf(tw, "Category\tDistinct\tOccurrences\n")
	fmt.Fprintf(tw, "core\t%d\t%d\n", r.Stats.Core.DistinctNames, r.Stats.Core.Occurrences)
	fmt.Fprintf(tw, "vendor\t%d\t%d\n", r.Stats.Vendor.DistinctNames, r.Stats.Vendor.Occurrences)
	fmt.Fprintf(tw, "custom\t%d\t%d\n", r.Stats.Custom.DistinctNames, r.Stats.Custom.Occurrences)
	fmt.Fprintf(tw, "\n")
	fmt.Fprintf(tw, "Schema adoption:\t%.1f%%\n", r.Stats.AdoptionRatio*100)

	if len(r.Stats.TopCustom) > 0 {
		fmt.Fprintf(tw, "\nTop custom fields:\n")
		for _, nc := range r.Stats.TopCustom {
			fmt.Fprintf(tw, "  %s\t%d file(s)\n", nc.Name, nc.Files)
		}
	}
	return tw.Flush()
}

// WriteJSON renders the full report, per-file detail included.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
