package app

import "regexp"

// linkTagRe matches inline {@link Target} and {@link Target | text}
// tags inside doc-comment text.
var linkTagRe = regexp.MustCompile(`\{@link\s+([^}\s|]+)[^}]*\}`)

// ExtractLinkRefs returns the reference targets of every {@link} tag in
// text, in order of appearance.
func ExtractLinkRefs(text string) []string {
	matches := linkTagRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}
