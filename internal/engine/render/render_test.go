package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsdocs/internal/core/errors"
	"tsdocs/internal/core/ports"
	"tsdocs/internal/engine/analyzer"
	"tsdocs/internal/engine/enrich"
	"tsdocs/internal/engine/model"
)

// selfReferentialType builds an object literal whose only property is
// typed as the literal itself. Rendering it without a depth ceiling
// would never terminate.
func selfReferentialType() *analyzer.TypeNode {
	node := &analyzer.TypeNode{Kind: analyzer.KindObjectLiteral}
	node.Properties = []analyzer.PropertyNode{{Name: "self", Type: node}}
	return node
}

func TestRenderType_SelfReferenceTerminates(t *testing.T) {
	r, err := New(2)
	require.NoError(t, err)

	out := r.RenderType(selfReferentialType())

	// Depth 0 and 1 are real nodes; depth 2 is the truncation marker.
	require.False(t, out.Truncated)
	require.Len(t, out.Children, 1)

	level1 := out.Children[0]
	require.False(t, level1.Truncated)
	require.Len(t, level1.Children, 1)

	level2 := level1.Children[0]
	assert.True(t, level2.Truncated)
	assert.Empty(t, level2.Children)
}

func TestRenderType_DepthCeilingExact(t *testing.T) {
	for _, maxDepth := range []int{0, 1, 2, 5} {
		r, err := New(maxDepth)
		require.NoError(t, err)

		out := r.RenderType(selfReferentialType())
		depth := 0
		node := out
		for !node.Truncated {
			require.Len(t, node.Children, 1)
			node = node.Children[0]
			depth++
		}
		assert.Equal(t, maxDepth, depth, "maxDepth=%d", maxDepth)
	}
}

func TestRenderType_DeepButFiniteWithinCeiling(t *testing.T) {
	r, err := New(DefaultMaxDepth)
	require.NoError(t, err)

	// Three levels of nesting, well under the default ceiling.
	node := analyzer.ObjectOf(analyzer.PropertyNode{
		Name: "a",
		Type: analyzer.ObjectOf(analyzer.PropertyNode{
			Name: "b",
			Type: analyzer.ObjectOf(analyzer.PropertyNode{
				Name: "c", Type: analyzer.Primitive("string"),
			}),
		}),
	})

	out := r.RenderType(node)
	a := out.Children[0]
	b := a.Children[0]
	c := b.Children[0]
	assert.Equal(t, "c", c.Name)
	assert.False(t, c.Truncated)
	assert.Equal(t, "string", c.Label)
}

func TestRenderType_DoesNotMutateInput(t *testing.T) {
	r, err := New(5)
	require.NoError(t, err)

	node := analyzer.ObjectOf(
		analyzer.PropertyNode{Name: "x", Type: analyzer.Primitive("string")},
	)
	first := r.RenderType(node)
	second := r.RenderType(node)

	assert.Equal(t, first, second, "same input must render identically in independent contexts")
	assert.Equal(t, "x", node.Properties[0].Name)
}

func TestRenderProperty_ChildIdentity(t *testing.T) {
	r, err := New(5)
	require.NoError(t, err)

	info := enrich.PropertyInfo{
		Name: "config",
		Type: "object",
		NestedProperties: []enrich.PropertyInfo{
			// Duplicate sibling names: the positional index keeps
			// identities distinct.
			{Name: "value", Type: "string"},
			{Name: "value", Type: "number"},
			{Name: "other", Type: "boolean"},
		},
	}

	out := r.RenderProperty(info)
	require.Len(t, out.Children, 3)
	assert.Equal(t, "value-0", out.Children[0].ID)
	assert.Equal(t, "value-1", out.Children[1].ID)
	assert.Equal(t, "other-2", out.Children[2].ID)

	ids := map[string]bool{}
	for _, child := range out.Children {
		assert.False(t, ids[child.ID], "duplicate id %q", child.ID)
		ids[child.ID] = true
	}
}

func TestRenderProperty_CarriesFlags(t *testing.T) {
	r, err := New(5)
	require.NoError(t, err)

	info := enrich.PropertyInfo{
		Name:        "port",
		Type:        "number",
		Description: "Listening port.",
		Required:    true,
		Deprecated:  true,
	}
	out := r.RenderProperty(info)
	assert.Equal(t, "port", out.Name)
	assert.Equal(t, "number", out.Label)
	assert.Equal(t, "Listening port.", out.Description)
	assert.True(t, out.Required)
	assert.True(t, out.Deprecated)
}

func TestRenderItem_GraphWithRefIDs(t *testing.T) {
	r, err := New(5)
	require.NoError(t, err)

	pkg := model.NewItem(ports.KindPackage, "mint-tsdocs")
	class := model.NewItem(ports.KindClass, "MarkdownDocumenter").WithDoc(&ports.DocComment{
		Summary:    "Writes markdown files.",
		Deprecated: "Use EmitterV2 instead.",
	})
	pkg.AddMember(class)

	out := r.RenderItem(pkg)
	assert.Equal(t, "mint-tsdocs", out.ID)
	require.Len(t, out.Children, 1)

	child := out.Children[0]
	assert.Equal(t, "mint-tsdocs.MarkdownDocumenter-0", child.ID)
	assert.Equal(t, "Writes markdown files.", child.Description)
	assert.True(t, child.Deprecated)
}

func TestRenderItem_DepthGuarded(t *testing.T) {
	r, err := New(1)
	require.NoError(t, err)

	pkg := model.NewItem(ports.KindPackage, "pkg")
	class := model.NewItem(ports.KindClass, "A")
	method := model.NewItem(ports.KindMethod, "b")
	class.AddMember(method)
	pkg.AddMember(class)

	out := r.RenderItem(pkg)
	require.Len(t, out.Children, 1)
	assert.True(t, out.Children[0].Truncated)
}

func TestNew_NegativeDepthIsMisuse(t *testing.T) {
	_, err := New(-1)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestNew_ZeroDepthTruncatesImmediately(t *testing.T) {
	r, err := New(0)
	require.NoError(t, err)

	out := r.RenderType(analyzer.Primitive("string"))
	assert.True(t, out.Truncated)
}
