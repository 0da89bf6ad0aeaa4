// Package report turns rendered output trees into markdown documents.
// It consumes the pipeline's EntityResults; the core never writes files
// itself.
package report

import (
	"fmt"
	"strings"
	"time"

	"tsdocs/internal/core/app"
	"tsdocs/internal/engine/render"
)

type MarkdownOptions struct {
	ProjectName     string
	Version         string
	GeneratedAt     time.Time
	FrontMatter     bool
	TableOfContents bool
}

type MarkdownGenerator struct{}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

// Generate renders one entity page.
func (m *MarkdownGenerator) Generate(result app.EntityResult, opts MarkdownOptions) string {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	if opts.FrontMatter {
		b.WriteString("---\n")
		b.WriteString("title: " + nonEmpty(result.Output.Name, result.RefID) + "\n")
		b.WriteString("ref_id: " + result.RefID + "\n")
		b.WriteString("project: " + nonEmpty(opts.ProjectName, "unknown") + "\n")
		b.WriteString("generated_at: " + opts.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
		b.WriteString("version: " + nonEmpty(opts.Version, "unknown") + "\n")
		b.WriteString("---\n\n")
	}

	b.WriteString("# " + nonEmpty(result.Output.Name, result.RefID) + "\n\n")
	if result.Output.Deprecated {
		b.WriteString("> **Deprecated.**\n\n")
	}
	if result.Output.Description != "" {
		b.WriteString(result.Output.Description + "\n\n")
	}

	if len(result.Output.Children) > 0 {
		b.WriteString("## Structure\n\n")
		for _, child := range result.Output.Children {
			writeNode(&b, child, 0)
		}
		b.WriteString("\n")
	}

	if len(result.BrokenLinks) > 0 {
		b.WriteString("## Unresolved References\n\n")
		for _, link := range result.BrokenLinks {
			// Flagged presentation instead of a dead link.
			b.WriteString(fmt.Sprintf("- ⚠️ `%s`: %s\n", link.RefID, link.Error))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Index renders a table of contents over all generated pages.
func (m *MarkdownGenerator) Index(results []app.EntityResult, opts MarkdownOptions) string {
	var b strings.Builder
	b.WriteString("# " + nonEmpty(opts.ProjectName, "API") + " Reference\n\n")
	for _, result := range results {
		name := nonEmpty(result.Output.Name, result.RefID)
		if result.Path != "" {
			b.WriteString(fmt.Sprintf("- [%s](%s)\n", name, result.Path))
		} else {
			b.WriteString(fmt.Sprintf("- %s\n", name))
		}
	}
	return b.String()
}

func writeNode(b *strings.Builder, node *render.OutputNode, indent int) {
	prefix := strings.Repeat("  ", indent)

	if node.Truncated {
		b.WriteString(prefix + "- _" + node.Label + "_\n")
		return
	}

	line := prefix + "- **" + nonEmpty(node.Name, node.Kind) + "**"
	if node.Label != "" && node.Label != node.Name {
		line += " `" + node.Label + "`"
	}
	if node.Required {
		line += " (required)"
	}
	if node.Deprecated {
		line += " ~~deprecated~~"
	}
	if node.Description != "" {
		line += ": " + node.Description
	}
	b.WriteString(line + "\n")

	for _, child := range node.Children {
		writeNode(b, child, indent+1)
	}
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
