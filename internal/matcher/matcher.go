package matcher

import (
	"path"
	"strings"

	"github.com/seitarof/gen-bind/internal/parser"
)

// DefaultMarker is the doc-comment line that marks a leaf type.
const DefaultMarker = "gen-bind:leaf"

// LeafMatcher selects leaf type declarations from parsed packages.
type LeafMatcher interface {
	Match(pkgs []*parser.PackageInfo) []*parser.DeclInfo
}

type leafMatcherImpl struct {
	marker   string
	patterns []string
}

// NewLeafMatcher returns a matcher accepting non-generic declarations that
// carry marker in their doc comment or whose name matches one of patterns
// (path.Match syntax). When no declaration carries the marker and no
// patterns are given, every non-generic declaration is a leaf.
func NewLeafMatcher(marker string, patterns []string) LeafMatcher {
	return &leafMatcherImpl{
		marker:   strings.TrimSpace(marker),
		patterns: patterns,
	}
}

func (m *leafMatcherImpl) Match(pkgs []*parser.PackageInfo) []*parser.DeclInfo {
	var marked, all []*parser.DeclInfo
	for _, pkg := range pkgs {
		for _, d := range pkg.Decls {
			if d.Generic {
				continue
			}
			all = append(all, d)
			if m.hasMarker(d) || m.matchesPattern(d.Name) {
				marked = append(marked, d)
			}
		}
	}
	if len(marked) == 0 && len(m.patterns) == 0 {
		return all
	}
	return marked
}

func (m *leafMatcherImpl) hasMarker(d *parser.DeclInfo) bool {
	if m.marker == "" {
		return false
	}
	for _, line := range d.Comments {
		if line == m.marker || strings.HasPrefix(line, m.marker+" ") {
			return true
		}
	}
	return false
}

func (m *leafMatcherImpl) matchesPattern(name string) bool {
	for _, p := range m.patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
