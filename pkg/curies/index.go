package curies

import (
	"fmt"
	"strings"
)

// recordIndex is the arena of records plus the two derived lookup maps
// described in the package documentation: prefix-or-synonym -> handle and
// uri-prefix-or-synonym -> handle. Handles are stable for the lifetime of
// the index; a merge replaces the record at a handle in place but never
// changes the handle itself, so the URI trie (which stores handles, not
// pointers) never needs to be rewritten wholesale.
type recordIndex struct {
	records []*Record

	byPrefix     map[string]int
	byPrefixFold map[string]int // lower-cased, used only for case-insensitive conflict checks
	byURIPrefix  map[string]int
}

func newRecordIndex() *recordIndex {
	return &recordIndex{
		byPrefix:     make(map[string]int),
		byPrefixFold: make(map[string]int),
		byURIPrefix:  make(map[string]int),
	}
}

// insert adds a brand-new record to the arena, failing if any of its
// prefixes or URI prefixes are already claimed (I1, I2).
func (ix *recordIndex) insert(r *Record) (int, error) {
	for _, p := range r.allPrefixes() {
		if _, ok := ix.byPrefix[p]; ok {
			return 0, fmt.Errorf("%w: %q", ErrDuplicatePrefix, p)
		}
	}
	for _, u := range r.allURIPrefixes() {
		if _, ok := ix.byURIPrefix[u]; ok {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateURIPrefix, u)
		}
	}

	handle := len(ix.records)
	ix.records = append(ix.records, r)
	for _, p := range r.allPrefixes() {
		ix.byPrefix[p] = handle
		ix.byPrefixFold[strings.ToLower(p)] = handle
	}
	for _, u := range r.allURIPrefixes() {
		ix.byURIPrefix[u] = handle
	}
	return handle, nil
}

// replace swaps the record at handle for merged, re-indexing any of
// merged's keys that were not already present (i.e. newly absorbed
// synonyms). Keys that already pointed at handle are left untouched.
func (ix *recordIndex) replace(handle int, merged *Record) {
	ix.records[handle] = merged
	for _, p := range merged.allPrefixes() {
		if _, ok := ix.byPrefix[p]; !ok {
			ix.byPrefix[p] = handle
		}
		ix.byPrefixFold[strings.ToLower(p)] = handle
	}
	for _, u := range merged.allURIPrefixes() {
		if _, ok := ix.byURIPrefix[u]; !ok {
			ix.byURIPrefix[u] = handle
		}
	}
}

func (ix *recordIndex) lookupByPrefix(s string) (*Record, bool) {
	h, ok := ix.byPrefix[s]
	if !ok {
		return nil, false
	}
	return ix.records[h], true
}

func (ix *recordIndex) lookupByURIPrefix(s string) (*Record, bool) {
	h, ok := ix.byURIPrefix[s]
	if !ok {
		return nil, false
	}
	return ix.records[h], true
}

func (ix *recordIndex) canonicalPrefix(s string) (string, bool) {
	r, ok := ix.lookupByPrefix(s)
	if !ok {
		return "", false
	}
	return r.prefix, true
}

// findConflict looks for an existing record sharing any prefix or URI
// prefix with r. It returns the single handle of that record, or
// ok=false if r introduces no conflict at all. If r's keys collide with
// more than one distinct existing record, that is an ambiguous merge and
// findConflict returns ambiguous=true so the caller can refuse it rather
// than guess (see DESIGN.md).
func (ix *recordIndex) findConflict(r *Record, caseSensitive bool) (handle int, ok bool, ambiguous bool) {
	seen := make(map[int]struct{})
	for _, p := range r.allPrefixes() {
		var h int
		var found bool
		if caseSensitive {
			h, found = ix.byPrefix[p]
		} else {
			h, found = ix.byPrefixFold[strings.ToLower(p)]
		}
		if found {
			seen[h] = struct{}{}
		}
	}
	for _, u := range r.allURIPrefixes() {
		if h, found := ix.byURIPrefix[u]; found {
			seen[h] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0, false, false
	}
	if len(seen) > 1 {
		return 0, true, true
	}
	for h := range seen {
		return h, true, false
	}
	panic("unreachable")
}

func (ix *recordIndex) prefixes(includeSynonyms bool) []string {
	out := make([]string, 0, len(ix.records))
	for _, r := range ix.records {
		out = append(out, r.prefix)
		if includeSynonyms {
			out = append(out, r.PrefixSynonyms()...)
		}
	}
	return out
}

func (ix *recordIndex) uriPrefixes(includeSynonyms bool) []string {
	out := make([]string, 0, len(ix.records))
	for _, r := range ix.records {
		out = append(out, r.uriPrefix)
		if includeSynonyms {
			out = append(out, r.URIPrefixSynonyms()...)
		}
	}
	return out
}
