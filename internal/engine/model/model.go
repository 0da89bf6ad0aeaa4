// Package model provides an in-memory implementation of the API item
// graph boundary. The extraction engine proper lives outside this
// repository; tests and the CLI load a pre-extracted model from JSON
// instead.
package model

import (
	"encoding/json"
	"fmt"

	"tsdocs/internal/core/ports"
)

// Item is a concrete API item graph node.
type Item struct {
	kind      ports.ItemKind
	name      string
	signature string
	parent    *Item
	members   []*Item
	doc       *ports.DocComment
}

var _ ports.ApiItem = (*Item)(nil)

func NewItem(kind ports.ItemKind, name string) *Item {
	return &Item{kind: kind, name: name}
}

func (i *Item) Kind() ports.ItemKind  { return i.kind }
func (i *Item) DisplayName() string   { return i.name }
func (i *Item) SignatureText() string { return i.signature }
func (i *Item) Doc() *ports.DocComment {
	return i.doc
}

func (i *Item) Parent() ports.ApiItem {
	if i.parent == nil {
		return nil
	}
	return i.parent
}

func (i *Item) Members() []ports.ApiItem {
	members := make([]ports.ApiItem, len(i.members))
	for idx, m := range i.members {
		members[idx] = m
	}
	return members
}

// AddMember appends child to the ordered member list and sets its
// parent link.
func (i *Item) AddMember(child *Item) *Item {
	child.parent = i
	i.members = append(i.members, child)
	return i
}

func (i *Item) WithDoc(doc *ports.DocComment) *Item {
	i.doc = doc
	return i
}

func (i *Item) WithSignature(signature string) *Item {
	i.signature = signature
	return i
}

type docJSON struct {
	Summary    string            `json:"summary"`
	Remarks    string            `json:"remarks"`
	Params     map[string]string `json:"params"`
	Returns    string            `json:"returns"`
	Examples   []string          `json:"examples"`
	Deprecated string            `json:"deprecated"`
}

type itemJSON struct {
	Kind      string     `json:"kind"`
	Name      string     `json:"name"`
	Signature string     `json:"signature"`
	Doc       *docJSON   `json:"doc"`
	Members   []itemJSON `json:"members"`
}

type modelJSON struct {
	Packages []itemJSON `json:"packages"`
}

// Load decodes a pre-extracted API model document. Every top-level
// entry must be a package.
func Load(data []byte) ([]ports.ApiItem, error) {
	var doc modelJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode api model: %w", err)
	}
	if len(doc.Packages) == 0 {
		return nil, fmt.Errorf("api model contains no packages")
	}

	packages := make([]ports.ApiItem, 0, len(doc.Packages))
	for i, raw := range doc.Packages {
		if ports.ItemKind(raw.Kind) != ports.KindPackage {
			return nil, fmt.Errorf("packages[%d]: top-level kind must be %q, got %q", i, ports.KindPackage, raw.Kind)
		}
		packages = append(packages, buildItem(raw))
	}
	return packages, nil
}

func buildItem(raw itemJSON) *Item {
	item := NewItem(ports.ItemKind(raw.Kind), raw.Name)
	item.signature = raw.Signature
	if raw.Doc != nil {
		item.doc = &ports.DocComment{
			Summary:    raw.Doc.Summary,
			Remarks:    raw.Doc.Remarks,
			Params:     raw.Doc.Params,
			Returns:    raw.Doc.Returns,
			Examples:   raw.Doc.Examples,
			Deprecated: raw.Doc.Deprecated,
		}
	}
	for _, child := range raw.Members {
		item.AddMember(buildItem(child))
	}
	return item
}
