// Package analyzer parses raw structural type-signature text into
// normalized TypeNode trees. Parsing is a pure function of the trimmed
// input and never fails: unparseable syntax degrades to an Unknown node
// carrying the original text so a single malformed signature cannot
// abort a generation batch.
package analyzer

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"tsdocs/internal/shared/cache"
	"tsdocs/internal/shared/observability"
)

const cacheName = "analyzer"

// primitiveKeywords is the fixed set of keywords recognized as
// primitive types.
var primitiveKeywords = map[string]bool{
	"string":    true,
	"number":    true,
	"boolean":   true,
	"bigint":    true,
	"symbol":    true,
	"object":    true,
	"any":       true,
	"unknown":   true,
	"never":     true,
	"void":      true,
	"null":      true,
	"undefined": true,
}

var (
	propertyNameRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	genericBaseRe  = regexp.MustCompile(`^[A-Za-z_$][\w$.]*$`)
)

// Analyzer converts signature strings into TypeNode trees, memoizing
// results in a caller-owned bounded cache.
type Analyzer struct {
	cache *cache.Bounded[string, *TypeNode]
}

// New creates an analyzer backed by the given cache. The cache may be
// disabled but must not be nil.
func New(c *cache.Bounded[string, *TypeNode]) *Analyzer {
	return &Analyzer{cache: c}
}

// Analyze parses raw into a TypeNode tree. Repeated calls with inputs
// that differ only in surrounding whitespace return the same cached
// tree; callers must treat the result as read-only.
func (a *Analyzer) Analyze(raw string) *TypeNode {
	if node, ok := a.cache.Get(raw); ok {
		observability.CacheHitsTotal.WithLabelValues(cacheName).Inc()
		return node
	}
	observability.CacheMissesTotal.WithLabelValues(cacheName).Inc()

	start := time.Now()
	node := parse(raw)
	observability.SignatureAnalysisDuration.Observe(time.Since(start).Seconds())

	if node.Kind == KindUnknown && strings.TrimSpace(raw) != "" {
		slog.Debug("signature did not match any known shape", "signature", strings.TrimSpace(raw))
	}
	a.cache.Set(raw, node)
	return node
}

// Stats exposes the underlying cache counters for diagnostics.
func (a *Analyzer) Stats() cache.Stats {
	return a.cache.GetStats()
}

// parse applies the resolution order: empty, object literal, array,
// union, intersection, generic, primitive, unknown. First match wins.
func parse(raw string) *TypeNode {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown(s)
	}

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return parseObjectLiteral(s)
	}

	if strings.HasSuffix(s, "[]") {
		return ArrayOf(parse(strings.TrimSuffix(s, "[]")))
	}

	if parts := splitTopLevel(s, '|'); len(parts) > 1 {
		members := make([]*TypeNode, 0, len(parts))
		for _, p := range parts {
			members = append(members, parse(p))
		}
		return UnionOf(members...)
	}

	if parts := splitTopLevel(s, '&'); len(parts) > 1 {
		members := make([]*TypeNode, 0, len(parts))
		for _, p := range parts {
			members = append(members, parse(p))
		}
		return IntersectionOf(members...)
	}

	if node, ok := parseGeneric(s); ok {
		return node
	}

	if primitiveKeywords[s] {
		return Primitive(s)
	}

	return Unknown(s)
}

// parseObjectLiteral splits the brace interior on top-level semicolons
// and matches each segment against `name optional? : type`. Segments
// that do not match are skipped rather than failing the whole literal.
func parseObjectLiteral(s string) *TypeNode {
	interior := strings.TrimSpace(s[1 : len(s)-1])
	if interior == "" {
		return ObjectOf()
	}

	var props []PropertyNode
	for _, segment := range splitTopLevel(interior, ';') {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		colon := indexTopLevel(segment, ':')
		if colon < 0 {
			continue
		}
		name := strings.TrimSpace(segment[:colon])
		optional := strings.HasSuffix(name, "?")
		name = strings.TrimSuffix(name, "?")
		if !propertyNameRe.MatchString(name) {
			continue
		}
		props = append(props, PropertyNode{
			Name:     name,
			Type:     parse(segment[colon+1:]),
			Optional: optional,
		})
	}
	return ObjectOf(props...)
}

// parseGeneric recognizes `Identifier<Params>` where the closing angle
// bracket of the first `<` is the final character. Params are split on
// top-level commas so nested generics stay intact.
func parseGeneric(s string) (*TypeNode, bool) {
	open := strings.IndexByte(s, '<')
	if open <= 0 || !strings.HasSuffix(s, ">") {
		return nil, false
	}
	base := strings.TrimSpace(s[:open])
	if !genericBaseRe.MatchString(base) {
		return nil, false
	}

	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 && i != len(s)-1 {
				return nil, false
			}
		}
	}
	if depth != 0 {
		return nil, false
	}

	interior := s[open+1 : len(s)-1]
	var params []string
	for _, p := range splitTopLevel(interior, ',') {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}
	if len(params) == 0 {
		return nil, false
	}
	return GenericOf(base, params...), true
}

// splitTopLevel splits s on sep occurrences that sit outside any
// {}/<>/()/[] nesting. The separator itself is dropped.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '<', '(', '[':
			depth++
		case '}', '>', ')', ']':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// indexTopLevel returns the index of the first sep outside any nesting,
// or -1.
func indexTopLevel(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '<', '(', '[':
			depth++
		case '}', '>', ')', ']':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
