package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsdocs/internal/core/app"
	"tsdocs/internal/engine/render"
)

func sampleResult() app.EntityResult {
	return app.EntityResult{
		RefID: "mint-tsdocs.MarkdownDocumenter",
		Path:  "./mint-tsdocs/MarkdownDocumenter",
		Output: &render.OutputNode{
			ID:          "mint-tsdocs.MarkdownDocumenter",
			Name:        "MarkdownDocumenter",
			Kind:        "Class",
			Description: "Generates markdown from an API model.",
			Children: []*render.OutputNode{
				{
					ID:    "options-0",
					Name:  "options",
					Kind:  "property",
					Label: "object",
					Children: []*render.OutputNode{
						{ID: "outputDir-0", Name: "outputDir", Kind: "property", Label: "string", Required: true, Description: "Destination directory."},
						{ID: "legacy-1", Name: "legacy", Kind: "property", Label: "boolean", Deprecated: true},
					},
				},
			},
		},
	}
}

func TestGenerate_FrontMatter(t *testing.T) {
	g := NewMarkdownGenerator()
	out := g.Generate(sampleResult(), MarkdownOptions{
		ProjectName: "mint-tsdocs",
		Version:     "0.3.0",
		GeneratedAt: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		FrontMatter: true,
	})

	require.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "title: MarkdownDocumenter\n")
	assert.Contains(t, out, "ref_id: mint-tsdocs.MarkdownDocumenter\n")
	assert.Contains(t, out, "project: mint-tsdocs\n")
	assert.Contains(t, out, "generated_at: 2026-08-27T12:00:00Z\n")
	assert.Contains(t, out, "version: 0.3.0\n")
}

func TestGenerate_NoFrontMatterByDefault(t *testing.T) {
	g := NewMarkdownGenerator()
	out := g.Generate(sampleResult(), MarkdownOptions{})

	assert.False(t, strings.HasPrefix(out, "---"))
	assert.True(t, strings.HasPrefix(out, "# MarkdownDocumenter\n"))
}

func TestGenerate_StructureSection(t *testing.T) {
	g := NewMarkdownGenerator()
	out := g.Generate(sampleResult(), MarkdownOptions{})

	assert.Contains(t, out, "## Structure")
	assert.Contains(t, out, "- **options** `object`")
	assert.Contains(t, out, "  - **outputDir** `string` (required): Destination directory.")
	assert.Contains(t, out, "  - **legacy** `boolean` ~~deprecated~~")
}

func TestGenerate_TruncatedNode(t *testing.T) {
	result := sampleResult()
	result.Output.Children = append(result.Output.Children, &render.OutputNode{
		ID:        "deep-1",
		Label:     "further detail omitted beyond depth 10",
		Truncated: true,
	})

	g := NewMarkdownGenerator()
	out := g.Generate(result, MarkdownOptions{})

	assert.Contains(t, out, "- _further detail omitted beyond depth 10_")
	// A truncation marker has no bold name line.
	assert.NotContains(t, out, "- **deep**")
}

func TestGenerate_BrokenLinks(t *testing.T) {
	result := sampleResult()
	result.BrokenLinks = []app.BrokenLink{
		{RefID: "pkg.DoesNotExist", Error: `member "DoesNotExist" not found`},
	}

	g := NewMarkdownGenerator()
	out := g.Generate(result, MarkdownOptions{})

	assert.Contains(t, out, "## Unresolved References")
	assert.Contains(t, out, "- ⚠️ `pkg.DoesNotExist`: member \"DoesNotExist\" not found")
}

func TestGenerate_DeprecatedEntity(t *testing.T) {
	result := sampleResult()
	result.Output.Deprecated = true

	g := NewMarkdownGenerator()
	out := g.Generate(result, MarkdownOptions{})

	assert.Contains(t, out, "> **Deprecated.**")
}

func TestGenerate_FallsBackToRefID(t *testing.T) {
	result := app.EntityResult{
		RefID:  "pkg.anonymous",
		Output: &render.OutputNode{ID: "pkg.anonymous"},
	}

	g := NewMarkdownGenerator()
	out := g.Generate(result, MarkdownOptions{})
	assert.Contains(t, out, "# pkg.anonymous")
}

func TestIndex(t *testing.T) {
	results := []app.EntityResult{
		sampleResult(),
		{RefID: "pkg.NoPath", Output: &render.OutputNode{Name: "NoPath"}},
	}

	g := NewMarkdownGenerator()
	out := g.Index(results, MarkdownOptions{ProjectName: "mint-tsdocs"})

	assert.True(t, strings.HasPrefix(out, "# mint-tsdocs Reference\n"))
	assert.Contains(t, out, "[MarkdownDocumenter](./mint-tsdocs/MarkdownDocumenter)")
	assert.Contains(t, out, "- NoPath\n")
}
