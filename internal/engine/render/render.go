// Package render walks PropertyInfo and TypeNode trees, and the
// external API item graph, into depth-guarded output trees. The depth
// ceiling is the single defence against both legitimately deep nesting
// and self-referential structures; exceeding it produces a truncation
// placeholder node, never an error.
package render

import (
	"fmt"

	"tsdocs/internal/core/errors"
	"tsdocs/internal/core/ports"
	"tsdocs/internal/engine/analyzer"
	"tsdocs/internal/engine/enrich"
	"tsdocs/internal/engine/resolver"
	"tsdocs/internal/shared/observability"
)

// DefaultMaxDepth is the recursion ceiling used when callers do not
// configure one.
const DefaultMaxDepth = 10

// OutputNode is one node of the rendered tree handed to the external
// formatting layer. ID is stable across runs for identical input and
// derived from the node's name plus its positional index among its
// siblings, since sibling names are not guaranteed unique.
type OutputNode struct {
	ID          string
	Name        string
	Kind        string
	Label       string
	Description string
	Required    bool
	Deprecated  bool
	Truncated   bool
	Children    []*OutputNode
}

// Renderer renders trees up to a fixed depth. Inputs are treated as
// immutable, so one cached analysis result can be rendered into any
// number of output contexts without interference.
type Renderer struct {
	maxDepth int
}

// New creates a renderer with the given depth ceiling. A negative
// ceiling is caller misuse; zero is legal and truncates immediately.
func New(maxDepth int) (*Renderer, error) {
	if maxDepth < 0 {
		return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("max depth must be >= 0, got %d", maxDepth))
	}
	return &Renderer{maxDepth: maxDepth}, nil
}

// MaxDepth returns the configured ceiling.
func (r *Renderer) MaxDepth() int {
	return r.maxDepth
}

func (r *Renderer) truncationNode(id string) *OutputNode {
	observability.RenderTruncationsTotal.Inc()
	return &OutputNode{
		ID:        id,
		Name:      "…",
		Kind:      "truncated",
		Label:     fmt.Sprintf("further detail omitted beyond depth %d", r.maxDepth),
		Truncated: true,
	}
}

func childID(name string, index int) string {
	if name == "" {
		name = "node"
	}
	return fmt.Sprintf("%s-%d", name, index)
}

// RenderProperty renders an enriched PropertyInfo tree.
func (r *Renderer) RenderProperty(info enrich.PropertyInfo) *OutputNode {
	return r.renderProperty(info, childID(info.Name, 0), 0)
}

func (r *Renderer) renderProperty(info enrich.PropertyInfo, id string, depth int) *OutputNode {
	if depth >= r.maxDepth {
		return r.truncationNode(id)
	}
	node := &OutputNode{
		ID:          id,
		Name:        info.Name,
		Kind:        "property",
		Label:       info.Type,
		Description: info.Description,
		Required:    info.Required,
		Deprecated:  info.Deprecated,
	}
	for i, nested := range info.NestedProperties {
		node.Children = append(node.Children, r.renderProperty(nested, childID(nested.Name, i), depth+1))
	}
	return node
}

// RenderType renders the structural shape of a TypeNode tree without
// documentation enrichment.
func (r *Renderer) RenderType(node *analyzer.TypeNode) *OutputNode {
	return r.renderType(node, childID(enrich.DisplayString(node), 0), 0)
}

func (r *Renderer) renderType(node *analyzer.TypeNode, id string, depth int) *OutputNode {
	if depth >= r.maxDepth {
		return r.truncationNode(id)
	}
	if node == nil {
		return &OutputNode{ID: id, Kind: analyzer.KindUnknown.String(), Label: "unknown"}
	}

	out := &OutputNode{
		ID:    id,
		Name:  node.Name,
		Kind:  node.Kind.String(),
		Label: enrich.DisplayString(node),
	}

	switch node.Kind {
	case analyzer.KindArray:
		out.Children = append(out.Children, r.renderType(node.Element, childID("element", 0), depth+1))
	case analyzer.KindUnion, analyzer.KindIntersection:
		for i, member := range node.Members {
			out.Children = append(out.Children, r.renderType(member, childID(enrich.DisplayString(member), i), depth+1))
		}
	case analyzer.KindObjectLiteral:
		for i, prop := range node.Properties {
			child := r.renderType(prop.Type, childID(prop.Name, i), depth+1)
			if !child.Truncated {
				child.Name = prop.Name
				child.Required = !prop.Optional
			}
			out.Children = append(out.Children, child)
		}
	}
	return out
}

// RenderItem renders a documented entity and its members from the
// external API item graph. Identities are the entities' RefIds, so a
// differential consumer can track nodes across runs.
func (r *Renderer) RenderItem(item ports.ApiItem) *OutputNode {
	return r.renderItem(item, resolver.GetRefID(item), 0)
}

func (r *Renderer) renderItem(item ports.ApiItem, id string, depth int) *OutputNode {
	if depth >= r.maxDepth {
		return r.truncationNode(id)
	}
	if item == nil {
		return &OutputNode{ID: id, Kind: "unknown"}
	}

	out := &OutputNode{
		ID:   id,
		Name: item.DisplayName(),
		Kind: string(item.Kind()),
	}
	if doc := item.Doc(); doc != nil {
		out.Description = doc.Summary
		out.Deprecated = doc.Deprecated != ""
	}
	for i, member := range item.Members() {
		memberID := resolver.GetRefID(member)
		if memberID == "" {
			memberID = childID(member.DisplayName(), i)
		} else {
			memberID = fmt.Sprintf("%s-%d", memberID, i)
		}
		out.Children = append(out.Children, r.renderItem(member, memberID, depth+1))
	}
	return out
}
