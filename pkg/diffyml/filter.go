// filter.go - Regex-based difference filtering, an ambient CLI
// convenience distinct from ignore.go's PathMatch glob grammar.
//
// Kept from the teacher's regex-filter half (the path-prefix half is
// superseded by ignore.go's PathMatch, which already covers "match a
// literal path" more precisely); re-targeted to match against a
// Difference's jq-like path rendering instead of the old string Path.
package diffyml

import (
	"fmt"
	"regexp"
)

// RegexFilter includes/excludes Differences by matching compiled regular
// expressions against the jq-like rendering of each difference's path.
type RegexFilter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// CompileRegexFilter compiles include/exclude pattern strings, returning
// an error naming the first invalid pattern.
func CompileRegexFilter(include, exclude []string) (RegexFilter, error) {
	inc, err := compileAll(include)
	if err != nil {
		return RegexFilter{}, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return RegexFilter{}, err
	}
	return RegexFilter{Include: inc, Exclude: exc}, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Apply filters diffs: when Include is non-empty, only matching
// differences survive; Exclude is then applied to drop the rest.
func (f RegexFilter) Apply(diffs []Difference) []Difference {
	if len(f.Include) == 0 && len(f.Exclude) == 0 {
		return diffs
	}

	out := make([]Difference, 0, len(diffs))
	for _, d := range diffs {
		path := differencePath(d).JQLike()

		if len(f.Include) > 0 && !matchesAnyRegex(f.Include, path) {
			continue
		}
		if len(f.Exclude) > 0 && matchesAnyRegex(f.Exclude, path) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matchesAnyRegex(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// differencePath returns the path a Difference is addressed at, using
// OriginalPath for Moved differences (the element's pre-move location).
func differencePath(d Difference) Path {
	if d.Kind == DiffMoved {
		return d.OriginalPath
	}
	return d.Path
}
