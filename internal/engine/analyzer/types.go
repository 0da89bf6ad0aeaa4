package analyzer

// NodeKind tags the variants of the TypeNode union. Every consumer is
// expected to switch over all kinds; there is no implicit fallthrough
// variant other than KindUnknown, which is an explicit value.
type NodeKind int

const (
	KindPrimitive NodeKind = iota
	KindArray
	KindUnion
	KindIntersection
	KindGeneric
	KindObjectLiteral
	KindUnknown
)

func (k NodeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindGeneric:
		return "generic"
	case KindObjectLiteral:
		return "object"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// TypeNode is the normalized structural representation of one parsed
// type signature. Nodes are immutable once constructed and may be
// shared freely between the cache and any number of renderers.
//
// Field usage per kind:
//
//	KindPrimitive     Name (the keyword)
//	KindArray         Element
//	KindUnion         Members
//	KindIntersection  Members
//	KindGeneric       Name (base identifier), TypeParameters
//	KindObjectLiteral Properties
//	KindUnknown       Name (original raw text)
type TypeNode struct {
	Kind           NodeKind
	Name           string
	Element        *TypeNode
	Members        []*TypeNode
	TypeParameters []string
	Properties     []PropertyNode
}

// PropertyNode is a single member of an object literal.
type PropertyNode struct {
	Name     string
	Type     *TypeNode
	Optional bool
}

func Primitive(name string) *TypeNode {
	return &TypeNode{Kind: KindPrimitive, Name: name}
}

func ArrayOf(element *TypeNode) *TypeNode {
	return &TypeNode{Kind: KindArray, Element: element}
}

func UnionOf(members ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: KindUnion, Members: members}
}

func IntersectionOf(members ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: KindIntersection, Members: members}
}

func GenericOf(base string, typeParameters ...string) *TypeNode {
	return &TypeNode{Kind: KindGeneric, Name: base, TypeParameters: typeParameters}
}

func ObjectOf(properties ...PropertyNode) *TypeNode {
	return &TypeNode{Kind: KindObjectLiteral, Properties: properties}
}

func Unknown(raw string) *TypeNode {
	return &TypeNode{Kind: KindUnknown, Name: raw}
}
