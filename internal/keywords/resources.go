package keywords

import (
	"fmt"
	"sort"
	"strings"
)

// Resources is the process-wide language data the scorer needs. It is built
// once at startup and never modified afterwards.
type Resources struct {
	stopwords map[string]struct{}
}

// ResourceOptions adjusts the built-in English resources.
type ResourceOptions struct {
	ExtraStopwords  []string
	RemoveStopwords []string
}

// LoadResources builds the English stopword set with the given adjustments.
// It fails when an entry is blank or when nothing is left in the set.
func LoadResources(opts ResourceOptions) (*Resources, error) {
	set := make(map[string]struct{}, len(englishStopwords)+len(opts.ExtraStopwords))
	for _, w := range englishStopwords {
		set[w] = struct{}{}
	}

	for _, w := range opts.ExtraStopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, fmt.Errorf("load resources: blank extra stopword")
		}
		set[w] = struct{}{}
	}

	for _, w := range opts.RemoveStopwords {
		delete(set, strings.ToLower(strings.TrimSpace(w)))
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("load resources: %w: stopword set is empty", ErrNoResources)
	}

	return &Resources{stopwords: set}, nil
}

// NewResources builds resources from an explicit stopword list. Intended for
// tests and callers that ship their own list.
func NewResources(stopwords []string) *Resources {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Resources{stopwords: set}
}

// IsStopword reports whether token is in the stopword set.
func (r *Resources) IsStopword(token string) bool {
	_, ok := r.stopwords[token]
	return ok
}

// Stopwords returns the stopword set as a sorted slice.
func (r *Resources) Stopwords() []string {
	out := make([]string, 0, len(r.stopwords))
	for w := range r.stopwords {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
