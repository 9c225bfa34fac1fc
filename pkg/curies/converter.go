// Package curies implements bidirectional, idiomatic conversion between
// URIs and CURIEs (prefix:local_id), following the design of the
// biopragmatics "curies" family of libraries: an in-memory Converter holds
// a set of Records (a canonical prefix, a canonical URI prefix, and their
// synonym sets), indexes them for O(1) prefix lookup, and builds a byte
// trie over every registered URI prefix so Compress can find the longest
// matching namespace in a single pass.
//
// A Converter is not safe for concurrent mutation. Concurrent read-only
// calls (Expand, Compress, IsCurie, IsURI, GetPrefixes, GetURIPrefixes, the
// Write* emitters) on a Converter that is no longer being mutated are safe.
package curies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biopragmatics/curies-go/internal/triestore"
	"github.com/zeebo/xxh3"
)

// Converter aggregates a record index and a URI trie. The zero value is
// not usable; construct with New.
type Converter struct {
	index *recordIndex
	trie  *triestore.Trie
}

// New returns an empty Converter.
func New() *Converter {
	return &Converter{
		index: newRecordIndex(),
		trie:  triestore.New(),
	}
}

// Len returns the number of records (not counting synonyms).
func (c *Converter) Len() int { return len(c.index.records) }

// AddRecord inserts r into the Converter.
//
// If merge is false, any prefix or URI prefix collision with an existing
// record fails with ErrDuplicatePrefix/ErrDuplicateURIPrefix.
//
// If merge is true and r collides with exactly one existing record, the
// two are fused: the existing record's canonical fields and pattern are
// kept, and r's canonical and synonym values are added to the existing
// record's synonym sets (deduplicated). If r collides with more than one
// distinct existing record, that ambiguous merge is refused with
// ErrDuplicatePrefix rather than picking a record to fuse into.
//
// If caseSensitive is false, prefix comparisons (not URI prefix
// comparisons) fold to lower case when detecting conflicts.
func (c *Converter) AddRecord(r *Record, merge, caseSensitive bool) error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}

	handle, hasConflict, ambiguous := c.index.findConflict(r, caseSensitive)
	if !hasConflict {
		newHandle, err := c.index.insert(r)
		if err != nil {
			return err
		}
		return c.insertURIPrefixes(r, newHandle)
	}
	if ambiguous {
		return fmt.Errorf("%w: %q collides with more than one existing record", ErrDuplicatePrefix, r.prefix)
	}
	if !merge {
		return c.conflictError(r, handle)
	}

	existing := c.index.records[handle]
	merged := mergeInto(existing, r)
	c.index.replace(handle, merged)
	return c.insertURIPrefixes(merged, handle)
}

// insertURIPrefixes registers every URI prefix (canonical + synonyms) of r
// in the trie under handle, skipping ones already present (idempotent
// under Trie.Insert's same-handle rule).
func (c *Converter) insertURIPrefixes(r *Record, handle int) error {
	for _, u := range r.allURIPrefixes() {
		if err := c.trie.Insert(u, handle); err != nil {
			return fmt.Errorf("%w: %q", ErrDuplicateURIPrefix, u)
		}
	}
	return nil
}

func (c *Converter) conflictError(r *Record, existingHandle int) error {
	existing := c.index.records[existingHandle]
	for _, p := range r.allPrefixes() {
		if _, ok := c.index.byPrefix[p]; ok {
			return fmt.Errorf("%w: %q already used by record %q", ErrDuplicatePrefix, p, existing.prefix)
		}
	}
	for _, u := range r.allURIPrefixes() {
		if _, ok := c.index.byURIPrefix[u]; ok {
			return fmt.Errorf("%w: %q already used by record %q", ErrDuplicateURIPrefix, u, existing.prefix)
		}
	}
	return fmt.Errorf("%w: conflicts with record %q", ErrDuplicatePrefix, existing.prefix)
}

// AddPrefix is a convenience for AddRecord with no synonyms or pattern,
// merge=false, caseSensitive=true.
func (c *Converter) AddPrefix(prefix, uriPrefix string) error {
	r, err := NewRecord(prefix, uriPrefix, nil, nil, "")
	if err != nil {
		return err
	}
	return c.AddRecord(r, false, true)
}

// Expand splits curie at the first ':' and looks up the head in the
// record index, returning the concatenation of the canonical URI prefix
// and the tail.
func (c *Converter) Expand(curie string) (string, error) {
	idx := strings.IndexByte(curie, ':')
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrMalformedCurie, curie)
	}
	head, tail := curie[:idx], curie[idx+1:]
	r, ok := c.index.lookupByPrefix(head)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCurieNotFound, head)
	}
	return r.uriPrefix + tail, nil
}

// Compress finds the longest registered URI prefix that is a prefix of
// uri and returns "canonicalPrefix:residual".
func (c *Converter) Compress(uri string) (string, error) {
	term, ok := c.trie.LongestMatch(uri)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrURINotFound, uri)
	}
	r, ok := c.index.lookupByURIPrefix(term.Key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrURINotFound, uri)
	}
	return r.prefix + ":" + uri[len(term.Key):], nil
}

// Result is one position of an ExpandList/CompressList result: either a
// converted value with OK true, or an absent sentinel with OK false. A
// single failure never aborts the batch.
type Result struct {
	Value string
	OK    bool
}

// ExpandList expands every item, preserving order and position; items
// that fail to expand are OK: false in the result slice.
func (c *Converter) ExpandList(curieList []string) []Result {
	out := make([]Result, len(curieList))
	for i, item := range curieList {
		if v, err := c.Expand(item); err == nil {
			out[i] = Result{Value: v, OK: true}
		}
	}
	return out
}

// CompressList compresses every item, preserving order and position;
// items that fail to compress are OK: false in the result slice.
func (c *Converter) CompressList(uriList []string) []Result {
	out := make([]Result, len(uriList))
	for i, item := range uriList {
		if v, err := c.Compress(item); err == nil {
			out[i] = Result{Value: v, OK: true}
		}
	}
	return out
}

// StandardizePrefix returns the canonical prefix of the record containing
// p as a prefix or synonym.
func (c *Converter) StandardizePrefix(p string) (string, error) {
	canon, ok := c.index.canonicalPrefix(p)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCurieNotFound, p)
	}
	return canon, nil
}

// StandardizeCurie rewrites curie to use its canonical prefix and
// canonical URI prefix: expand, then compress. If the matching record
// carries an identifier pattern, the local identifier must satisfy it or
// the call fails with ErrPatternMismatch.
func (c *Converter) StandardizeCurie(curie string) (string, error) {
	idx := strings.IndexByte(curie, ':')
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrMalformedCurie, curie)
	}
	if err := c.checkPattern(curie[:idx], curie[idx+1:]); err != nil {
		return "", err
	}
	uri, err := c.Expand(curie)
	if err != nil {
		return "", err
	}
	return c.Compress(uri)
}

// StandardizeURI rewrites uri to the canonical URI prefix of the matching
// record: compress, then expand. Idempotent: calling it again on its own
// output returns the same string. If the matching record carries an
// identifier pattern, the residual local identifier must satisfy it or
// the call fails with ErrPatternMismatch.
func (c *Converter) StandardizeURI(uri string) (string, error) {
	curie, err := c.Compress(uri)
	if err != nil {
		return "", err
	}
	idx := strings.IndexByte(curie, ':')
	if err := c.checkPattern(curie[:idx], curie[idx+1:]); err != nil {
		return "", err
	}
	return c.Expand(curie)
}

// checkPattern looks up the record behind prefix and, if it carries an
// identifier pattern, verifies localID satisfies it.
func (c *Converter) checkPattern(prefix, localID string) error {
	r, ok := c.index.lookupByPrefix(prefix)
	if !ok {
		return fmt.Errorf("%w: %q", ErrCurieNotFound, prefix)
	}
	if !r.matchesLocalID(localID) {
		return fmt.Errorf("%w: %q does not match pattern %q for prefix %q", ErrPatternMismatch, localID, r.Pattern(), r.prefix)
	}
	return nil
}

// ExpandOrStandardize treats s as a CURIE if its text before the first ':'
// is a known prefix or synonym, and expands it. Otherwise it treats s as a
// URI and canonicalizes it (compress then expand).
func (c *Converter) ExpandOrStandardize(s string) (string, error) {
	if c.IsCurie(s) {
		return c.Expand(s)
	}
	return c.StandardizeURI(s)
}

// CompressOrStandardize tries to compress s as a URI first; if that fails
// and s parses as a CURIE with a known prefix, it standardizes the CURIE
// instead.
func (c *Converter) CompressOrStandardize(s string) (string, error) {
	if v, err := c.Compress(s); err == nil {
		return v, nil
	}
	if c.IsCurie(s) {
		return c.StandardizeCurie(s)
	}
	return "", fmt.Errorf("%w: %q", ErrURINotFound, s)
}

// IsCurie reports whether s contains a ':' and the text before the first
// ':' is a known prefix or synonym. It never fails.
func (c *Converter) IsCurie(s string) bool {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return false
	}
	_, ok := c.index.lookupByPrefix(s[:idx])
	return ok
}

// IsURI reports whether the URI trie yields a nonzero longest match for
// s. An exact match against a registered URI prefix (empty residual)
// counts as true. It never fails.
func (c *Converter) IsURI(s string) bool {
	_, ok := c.trie.LongestMatch(s)
	return ok
}

// GetPrefixes returns the set of canonical prefixes, plus synonyms if
// includeSynonyms is true. Order is unspecified.
func (c *Converter) GetPrefixes(includeSynonyms bool) []string {
	return c.index.prefixes(includeSynonyms)
}

// GetURIPrefixes returns the set of canonical URI prefixes, plus synonyms
// if includeSynonyms is true. Order is unspecified.
func (c *Converter) GetURIPrefixes(includeSynonyms bool) []string {
	return c.index.uriPrefixes(includeSynonyms)
}

// Records returns every record currently held by the Converter, in
// insertion order. The returned slice and its Records must be treated as
// read-only.
func (c *Converter) Records() []*Record {
	out := make([]*Record, len(c.index.records))
	copy(out, c.index.records)
	return out
}

// Chain merges converters in priority order: earlier converters win on
// canonicalization, later ones contribute their records as synonyms where
// they collide, and as brand-new records where they don't. It is exactly
// AddRecord(_, merge=true, caseSensitive=true) applied to every record of
// every input converter, in order. Chain is commutative only when the
// inputs are pairwise disjoint.
func Chain(converters ...*Converter) (*Converter, error) {
	acc := New()
	for _, conv := range converters {
		if conv == nil {
			continue
		}
		for _, r := range conv.index.records {
			clone, err := NewRecord(r.prefix, r.uriPrefix, r.PrefixSynonyms(), r.URIPrefixSynonyms(), r.pattern)
			if err != nil {
				return nil, err
			}
			if err := acc.AddRecord(clone, true, true); err != nil {
				return nil, err
			}
		}
	}
	return acc, nil
}

// Fingerprint hashes the sorted canonical (prefix, uriPrefix) pairs of the
// Converter with xxh3, giving a cheap, order-independent content key. It
// is not part of the equivalence contract of Go's == operator and is
// a content key, not a detector of every possible difference between two
// converters (it ignores synonyms and patterns). pkg/curies/registry
// caches converters by registry name, not by Fingerprint.
func (c *Converter) Fingerprint() uint64 {
	pairs := make([]string, 0, len(c.index.records))
	for _, r := range c.index.records {
		pairs = append(pairs, r.prefix+"\x00"+r.uriPrefix)
	}
	sort.Strings(pairs)
	h := xxh3.New()
	for _, p := range pairs {
		_, _ = h.WriteString(p)
		_, _ = h.WriteString("\x1e")
	}
	return h.Sum64()
}
