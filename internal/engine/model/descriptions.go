package model

import (
	"strings"
	"sync"

	"tsdocs/internal/core/ports"
)

// DescriptionTable is a read-only property-path -> description lookup,
// populated once before any enrichment call and injected into the
// enricher. Constructed per generation run; it carries no cross-run
// lifetime.
type DescriptionTable struct {
	mu           sync.RWMutex
	sealed       bool
	descriptions map[string]string
	deprecated   map[string]bool
}

var _ ports.DescriptionSource = (*DescriptionTable)(nil)

func NewDescriptionTable() *DescriptionTable {
	return &DescriptionTable{
		descriptions: make(map[string]string),
		deprecated:   make(map[string]bool),
	}
}

// Add registers a description. No-op after Seal.
func (t *DescriptionTable) Add(propertyPath, description string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return
	}
	t.descriptions[strings.TrimSpace(propertyPath)] = description
}

// MarkDeprecated flags a path as deprecated. No-op after Seal.
func (t *DescriptionTable) MarkDeprecated(propertyPath string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return
	}
	t.deprecated[strings.TrimSpace(propertyPath)] = true
}

// Seal makes the table read-only for the rest of the run.
func (t *DescriptionTable) Seal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sealed = true
}

func (t *DescriptionTable) Description(propertyPath string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	desc, ok := t.descriptions[strings.TrimSpace(propertyPath)]
	return desc, ok
}

func (t *DescriptionTable) Deprecated(propertyPath string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.deprecated[strings.TrimSpace(propertyPath)]
}

// BuildDescriptions walks the API item graph and derives the lookup the
// enricher consumes: an entity's summary is registered under its display
// name, per-parameter text under name.param. The returned table is
// sealed.
func BuildDescriptions(packages []ports.ApiItem) *DescriptionTable {
	table := NewDescriptionTable()
	for _, pkg := range packages {
		collectDescriptions(pkg, table)
	}
	table.Seal()
	return table
}

func collectDescriptions(item ports.ApiItem, table *DescriptionTable) {
	if doc := item.Doc(); doc != nil && item.DisplayName() != "" {
		base := item.DisplayName()
		if doc.Summary != "" {
			table.Add(base, doc.Summary)
		}
		for param, text := range doc.Params {
			table.Add(base+"."+param, text)
		}
		if doc.Deprecated != "" {
			table.MarkDeprecated(base)
		}
	}
	for _, member := range item.Members() {
		collectDescriptions(member, table)
	}
}
