// Package enrich merges parsed TypeNode trees with the documentation
// description lookup to produce display-oriented PropertyInfo trees.
// Descriptions default to the empty string so downstream consumers
// never null-check.
package enrich

import (
	"strings"

	"tsdocs/internal/core/errors"
	"tsdocs/internal/core/ports"
	"tsdocs/internal/engine/analyzer"
)

// PropertyInfo is the documentation-enriched counterpart to a TypeNode.
// Built fresh per Enrich call and never mutated afterwards.
type PropertyInfo struct {
	Name             string
	Type             string
	Description      string
	Required         bool
	Deprecated       bool
	NestedProperties []PropertyInfo
}

// Enricher walks TypeNode trees against an injected read-only
// description source. Construct one per generation run.
type Enricher struct {
	source ports.DescriptionSource
}

func New(source ports.DescriptionSource) *Enricher {
	return &Enricher{source: source}
}

// Enrich builds the PropertyInfo tree for node. The description is the
// caller-supplied text for the node itself; propertyPath is the dotted
// path used to look up descriptions for nested properties.
//
// A nil node or a missing description source is caller misuse and the
// only way this method fails.
func (e *Enricher) Enrich(node *analyzer.TypeNode, description, propertyPath string) (PropertyInfo, error) {
	if node == nil {
		err := &errors.DomainError{Code: errors.CodeValidationError, Message: "enrich requires a type node"}
		return PropertyInfo{}, err.WithContext(errors.CtxPath, propertyPath)
	}
	if e.source == nil {
		return PropertyInfo{}, errors.New(errors.CodeValidationError, "enricher has no description source")
	}

	info := PropertyInfo{
		Name:        lastSegment(propertyPath),
		Type:        DisplayString(node),
		Description: description,
		Required:    true,
		Deprecated:  e.source.Deprecated(propertyPath),
	}
	info.NestedProperties = e.enrichProperties(node, propertyPath)
	return info, nil
}

// enrichProperties recurses into an object literal's members. Non-object
// nodes have no nested properties.
func (e *Enricher) enrichProperties(node *analyzer.TypeNode, propertyPath string) []PropertyInfo {
	if node.Kind != analyzer.KindObjectLiteral {
		return nil
	}
	nested := make([]PropertyInfo, 0, len(node.Properties))
	for _, prop := range node.Properties {
		childPath := prop.Name
		if propertyPath != "" {
			childPath = propertyPath + "." + prop.Name
		}
		description, _ := e.source.Description(childPath)
		child := PropertyInfo{
			Name:        prop.Name,
			Type:        DisplayString(prop.Type),
			Description: description,
			Required:    !prop.Optional,
			Deprecated:  e.source.Deprecated(childPath),
		}
		child.NestedProperties = e.enrichProperties(prop.Type, childPath)
		nested = append(nested, child)
	}
	return nested
}

// DisplayString renders a TypeNode as the human-readable type label
// used in documentation tables. Object literals display as the literal
// token "object"; their members travel separately as nested properties.
func DisplayString(node *analyzer.TypeNode) string {
	if node == nil {
		return "unknown"
	}
	switch node.Kind {
	case analyzer.KindPrimitive:
		return node.Name
	case analyzer.KindArray:
		return DisplayString(node.Element) + "[]"
	case analyzer.KindUnion:
		return joinDisplays(node.Members, " | ")
	case analyzer.KindIntersection:
		return joinDisplays(node.Members, " & ")
	case analyzer.KindGeneric:
		return node.Name + "<" + strings.Join(node.TypeParameters, ", ") + ">"
	case analyzer.KindObjectLiteral:
		return "object"
	case analyzer.KindUnknown:
		if node.Name == "" {
			return "unknown"
		}
		return node.Name
	default:
		return "unknown"
	}
}

func joinDisplays(members []*analyzer.TypeNode, sep string) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, DisplayString(m))
	}
	return strings.Join(parts, sep)
}

func lastSegment(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
