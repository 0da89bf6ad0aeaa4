// Package ports defines the boundary contracts between the
// analysis/caching/rendering core and its external collaborators: the
// API model extraction engine, the description lookup, and the output
// formatting layer. No implementation in this package touches the
// network or the filesystem.
package ports

// ItemKind classifies a documented entity in the API item graph.
type ItemKind string

const (
	KindPackage   ItemKind = "Package"
	KindNamespace ItemKind = "Namespace"
	KindClass     ItemKind = "Class"
	KindInterface ItemKind = "Interface"
	KindFunction  ItemKind = "Function"
	KindMethod    ItemKind = "Method"
	KindProperty  ItemKind = "Property"
	KindEnum      ItemKind = "Enum"
	KindEnumItem  ItemKind = "EnumMember"
	KindVariable  ItemKind = "Variable"
	KindTypeAlias ItemKind = "TypeAlias"
)

// DocComment is the documentation-comment structure the extraction
// engine attaches to an entity. Absent fields are empty, never nil
// semantics downstream.
type DocComment struct {
	Summary    string
	Remarks    string
	Params     map[string]string
	Returns    string
	Examples   []string
	Deprecated string // deprecation notice text; empty means not deprecated
}

// ApiItem is one node of the externally supplied API item graph.
// Implementations must return stable values for the lifetime of a
// generation run; the core never mutates the graph.
type ApiItem interface {
	// Kind classifies the entity.
	Kind() ItemKind
	// DisplayName is the human-readable name. Entities that carry no
	// display name (e.g. an entry point container) return "".
	DisplayName() string
	// Parent is the owning entity, nil for a package root.
	Parent() ApiItem
	// Members is the ordered list of child entities.
	Members() []ApiItem
	// Doc is the attached documentation comment, nil when absent.
	Doc() *DocComment
	// SignatureText is the raw structural type-signature string for
	// this entity, empty when the entity has no type signature.
	SignatureText() string
}

// DescriptionSource is the read-only property-path -> description
// lookup injected into the enricher. Populated once before any
// enrichment call; per-run ownership, no cross-run lifetime.
type DescriptionSource interface {
	// Description returns the description for a dotted property path
	// and whether one exists.
	Description(propertyPath string) (string, bool)
	// Deprecated reports whether the path carries a deprecation notice.
	Deprecated(propertyPath string) bool
}

// PathMapper maps an entity to its output display path. Supplied by the
// output-formatting collaborator; the reference resolver calls it for
// every successfully resolved entity.
type PathMapper func(item ApiItem) string
