// Package resolver computes canonical reference identifiers for
// documented entities and resolves them back to entities and display
// paths. Broken references are data, not errors: they come back as
// invalid ResolutionResults and are cached just like successful ones so
// a repeatedly-hit broken link stays O(1).
package resolver

import (
	"fmt"
	"strings"

	"tsdocs/internal/core/ports"
	"tsdocs/internal/shared/cache"
	"tsdocs/internal/shared/observability"
)

const cacheName = "resolver"

// ResolutionResult is the outcome of resolving a reference or page id.
type ResolutionResult struct {
	IsValid bool
	Path    string
	Error   string
}

// Resolver resolves RefIds against the API item graph. The RefId string
// itself is the cache key, so two references resolve to the same slot
// exactly when they identify the same entity.
type Resolver struct {
	packages   []ports.ApiItem
	pathMapper ports.PathMapper
	cache      *cache.Bounded[string, ResolutionResult]
}

// New creates a resolver over the given package roots. pathMapper is
// supplied by the output-formatting collaborator and produces the
// display path for resolved entities.
func New(packages []ports.ApiItem, pathMapper ports.PathMapper, c *cache.Bounded[string, ResolutionResult]) *Resolver {
	return &Resolver{packages: packages, pathMapper: pathMapper, cache: c}
}

// GetRefID walks the entity's ownership chain from leaf to package,
// prepending each link's display name and skipping links that carry no
// display name. The package contributes its unscoped name.
func GetRefID(item ports.ApiItem) string {
	var segments []string
	for cur := item; cur != nil; cur = cur.Parent() {
		name := cur.DisplayName()
		if cur.Kind() == ports.KindPackage {
			name = UnscopedName(name)
		}
		if name == "" {
			continue
		}
		segments = append([]string{name}, segments...)
	}
	return strings.Join(segments, ".")
}

// UnscopedName strips an npm-style scope prefix: "@scope/pkg" -> "pkg".
func UnscopedName(packageName string) string {
	if strings.HasPrefix(packageName, "@") {
		if i := strings.IndexByte(packageName, '/'); i >= 0 {
			return packageName[i+1:]
		}
	}
	return packageName
}

// ValidateRefID resolves a dotted reference id against the known
// packages. Results, including negative ones, are cached by the exact
// RefId string.
func (r *Resolver) ValidateRefID(refID string) ResolutionResult {
	if res, ok := r.cache.Get(refID); ok {
		observability.CacheHitsTotal.WithLabelValues(cacheName).Inc()
		return res
	}
	observability.CacheMissesTotal.WithLabelValues(cacheName).Inc()

	res := r.resolve(strings.TrimSpace(refID))
	if res.IsValid {
		observability.ReferenceResolutionsTotal.WithLabelValues("valid").Inc()
	} else {
		observability.ReferenceResolutionsTotal.WithLabelValues("invalid").Inc()
	}
	r.cache.Set(refID, res)
	return res
}

func (r *Resolver) resolve(refID string) ResolutionResult {
	if refID == "" {
		return ResolutionResult{Error: "reference id is empty"}
	}

	segments := strings.Split(refID, ".")
	// Canonical RefIds never contain empty segments; an empty segment
	// would otherwise match a nameless entry-point container.
	for _, segment := range segments {
		if segment == "" {
			return ResolutionResult{Error: fmt.Sprintf("reference id %q contains an empty segment", refID)}
		}
	}

	current := r.findPackage(segments[0])
	if current == nil {
		return ResolutionResult{Error: fmt.Sprintf("package %q not found", segments[0])}
	}

	for _, segment := range segments[1:] {
		next := findMember(current, segment)
		if next == nil {
			return ResolutionResult{Error: fmt.Sprintf("member %q not found under %q", segment, GetRefID(current))}
		}
		current = next
	}

	path := ""
	if r.pathMapper != nil {
		path = r.pathMapper(current)
	}
	return ResolutionResult{IsValid: true, Path: path}
}

func (r *Resolver) findPackage(unscoped string) ports.ApiItem {
	for _, pkg := range r.packages {
		if UnscopedName(pkg.DisplayName()) == unscoped {
			return pkg
		}
	}
	return nil
}

// findMember looks up a named child. Members without a display name
// (entry-point containers) are transparent: their own members are
// searched in place, matching the segments GetRefID emits.
func findMember(item ports.ApiItem, name string) ports.ApiItem {
	for _, member := range item.Members() {
		if member.DisplayName() == name {
			return member
		}
		if member.DisplayName() == "" {
			if found := findMember(member, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// ValidatePageID is a pure format check: a page id must be non-empty
// and prefixed with "./", "../", or "/". Filesystem existence is the
// output layer's concern, deliberately not checked here.
func (r *Resolver) ValidatePageID(pageID string) ResolutionResult {
	trimmed := strings.TrimSpace(pageID)
	if trimmed == "" {
		return ResolutionResult{Error: "page id is empty"}
	}
	if !strings.HasPrefix(trimmed, "./") && !strings.HasPrefix(trimmed, "../") && !strings.HasPrefix(trimmed, "/") {
		return ResolutionResult{Error: fmt.Sprintf("page id %q must start with ./, ../ or /", trimmed)}
	}
	return ResolutionResult{IsValid: true, Path: trimmed}
}

// ClearCache empties the resolution cache. Required between independent
// generation runs sharing a process; entries never expire by time.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

// Stats exposes the resolution cache counters for diagnostics.
func (r *Resolver) Stats() cache.Stats {
	return r.cache.GetStats()
}
