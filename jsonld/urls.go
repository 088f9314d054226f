package jsonld

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/oasgate/oaserrors"
)

// DefaultMaxDepth bounds how deeply nested objects are walked.
const DefaultMaxDepth = 100

// URLSet is a set of absolute http(s) URLs.
type URLSet map[string]struct{}

// NewURLSet returns a set holding urls.
func NewURLSet(urls ...string) URLSet {
	s := make(URLSet, len(urls))
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Add inserts u into the set.
func (s URLSet) Add(u string) {
	s[u] = struct{}{}
}

// Has reports whether u is in the set.
func (s URLSet) Has(u string) bool {
	_, ok := s[u]
	return ok
}

// Sorted returns the members in lexical order.
func (s URLSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// Artifact maps a companion .jsonld path to the URLs found in it. Artifacts
// produced by URLValidator hold exactly one entry.
type Artifact map[string]URLSet

// IsURL reports whether s looks like an absolute http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FindURLs collects every string value in root that looks like a URL.
//
// Only nested objects are walked: arrays are not traversed and object keys
// are never collected. A maxDepth <= 0 selects DefaultMaxDepth.
func FindURLs(root any, maxDepth int) (URLSet, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	urls := make(URLSet)
	obj, ok := root.(map[string]any)
	if !ok {
		return urls, nil
	}
	if err := walk(obj, 1, maxDepth, urls); err != nil {
		return nil, err
	}
	return urls, nil
}

func walk(obj map[string]any, depth, maxDepth int, urls URLSet) error {
	if depth > maxDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(maxDepth),
			Message:      fmt.Sprintf("JSON-LD objects nested deeper than %d levels", maxDepth),
		}
	}
	for _, v := range obj {
		switch t := v.(type) {
		case string:
			if IsURL(t) {
				urls.Add(t)
			}
		case map[string]any:
			if err := walk(t, depth+1, maxDepth, urls); err != nil {
				return err
			}
		}
	}
	return nil
}
