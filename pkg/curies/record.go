package curies

import (
	"fmt"
	"regexp"
	"sort"
)

// Record is one binding of a canonical prefix and a canonical URI prefix,
// plus their synonym sets and an optional identifier pattern. It is
// immutable from the outside: once returned from NewRecord (or read back
// off a Converter), its fields cannot be mutated in place. A Converter that
// owns a Record replaces it wholesale (via merge) rather than editing it.
type Record struct {
	prefix    string
	uriPrefix string

	prefixSynonyms    map[string]struct{}
	uriPrefixSynonyms map[string]struct{}

	pattern   string
	patternRe *regexp.Regexp
}

// NewRecord validates I3-I5 and, if pattern is non-empty, compiles it
// eagerly (a malformed regex fails here, not at Standardize* time).
func NewRecord(prefix, uriPrefix string, prefixSynonyms, uriPrefixSynonyms []string, pattern string) (*Record, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%w: prefix must not be empty", ErrInvalidRecord)
	}
	if uriPrefix == "" {
		return nil, fmt.Errorf("%w: uri_prefix must not be empty", ErrInvalidRecord)
	}

	r := &Record{
		prefix:            prefix,
		uriPrefix:         uriPrefix,
		prefixSynonyms:    make(map[string]struct{}, len(prefixSynonyms)),
		uriPrefixSynonyms: make(map[string]struct{}, len(uriPrefixSynonyms)),
		pattern:           pattern,
	}

	for _, s := range prefixSynonyms {
		if s == "" {
			return nil, fmt.Errorf("%w: prefix synonym must not be empty", ErrInvalidRecord)
		}
		if s == prefix {
			return nil, fmt.Errorf("%w: prefix %q cannot be its own synonym", ErrInvalidRecord, prefix)
		}
		r.prefixSynonyms[s] = struct{}{}
	}
	for _, s := range uriPrefixSynonyms {
		if s == "" {
			return nil, fmt.Errorf("%w: uri_prefix synonym must not be empty", ErrInvalidRecord)
		}
		if s == uriPrefix {
			return nil, fmt.Errorf("%w: uri_prefix %q cannot be its own synonym", ErrInvalidRecord, uriPrefix)
		}
		r.uriPrefixSynonyms[s] = struct{}{}
	}

	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pattern %q: %s", ErrInvalidRecord, pattern, err)
		}
		r.patternRe = re
	}

	return r, nil
}

// Prefix returns the canonical short prefix.
func (r *Record) Prefix() string { return r.prefix }

// URIPrefix returns the canonical URI prefix.
func (r *Record) URIPrefix() string { return r.uriPrefix }

// Pattern returns the identifier-pattern source, or "" if none was set.
func (r *Record) Pattern() string { return r.pattern }

// PrefixSynonyms returns the prefix synonyms in sorted order.
func (r *Record) PrefixSynonyms() []string { return sortedKeys(r.prefixSynonyms) }

// URIPrefixSynonyms returns the URI-prefix synonyms in sorted order.
func (r *Record) URIPrefixSynonyms() []string { return sortedKeys(r.uriPrefixSynonyms) }

// allPrefixes returns the canonical prefix followed by its synonyms.
func (r *Record) allPrefixes() []string {
	out := make([]string, 0, 1+len(r.prefixSynonyms))
	out = append(out, r.prefix)
	out = append(out, sortedKeys(r.prefixSynonyms)...)
	return out
}

// allURIPrefixes returns the canonical URI prefix followed by its synonyms.
func (r *Record) allURIPrefixes() []string {
	out := make([]string, 0, 1+len(r.uriPrefixSynonyms))
	out = append(out, r.uriPrefix)
	out = append(out, sortedKeys(r.uriPrefixSynonyms)...)
	return out
}

// matchesLocalID reports whether the record has no pattern, or the local
// identifier satisfies it. Only Standardize* paths call this.
func (r *Record) matchesLocalID(localID string) bool {
	if r.patternRe == nil {
		return true
	}
	return r.patternRe.MatchString(localID)
}

// mergeInto folds incoming's canonical and synonym values into a copy of
// base, keeping base's canonical fields and pattern (Open Question 1: a
// conservative implementation keeps only the accumulator's pattern).
func mergeInto(base, incoming *Record) *Record {
	merged := &Record{
		prefix:            base.prefix,
		uriPrefix:         base.uriPrefix,
		pattern:           base.pattern,
		patternRe:         base.patternRe,
		prefixSynonyms:    make(map[string]struct{}, len(base.prefixSynonyms)+len(incoming.prefixSynonyms)+1),
		uriPrefixSynonyms: make(map[string]struct{}, len(base.uriPrefixSynonyms)+len(incoming.uriPrefixSynonyms)+1),
	}
	for s := range base.prefixSynonyms {
		merged.prefixSynonyms[s] = struct{}{}
	}
	for s := range base.uriPrefixSynonyms {
		merged.uriPrefixSynonyms[s] = struct{}{}
	}
	for _, p := range incoming.allPrefixes() {
		if p != merged.prefix {
			merged.prefixSynonyms[p] = struct{}{}
		}
	}
	for _, u := range incoming.allURIPrefixes() {
		if u != merged.uriPrefix {
			merged.uriPrefixSynonyms[u] = struct{}{}
		}
	}
	return merged
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
