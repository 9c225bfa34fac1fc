package curies

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// extendedEntry mirrors one element of an extended prefix map: a canonical
// prefix/URI-prefix pair plus their synonym lists and an optional
// identifier pattern.
type extendedEntry struct {
	Prefix            string   `json:"prefix"`
	URIPrefix         string   `json:"uri_prefix"`
	PrefixSynonyms    []string `json:"prefix_synonyms,omitempty"`
	URIPrefixSynonyms []string `json:"uri_prefix_synonyms,omitempty"`
	Pattern           string   `json:"pattern,omitempty"`
}

// LoadExtendedPrefixMap reads a JSON array of extendedEntry objects from
// source and returns a Converter with one record per entry. Unlike the
// simple prefix map, this format carries synonyms and patterns, so it
// round-trips a Converter losslessly through WriteExtendedPrefixMap.
//
// If merge is true, an entry that collides with one already added is
// fused into it as a synonym instead of raising ErrDuplicatePrefix or
// ErrDuplicateURIPrefix; see Converter.AddRecord.
func LoadExtendedPrefixMap(ctx context.Context, f Fetcher, source string, merge bool) (*Converter, error) {
	data, err := resolveSource(ctx, f, source)
	if err != nil {
		return nil, err
	}
	return ParseExtendedPrefixMap(data, merge)
}

// ParseExtendedPrefixMap decodes an extended prefix map already held in
// memory, e.g. an embedded snapshot in pkg/curies/registry. See
// LoadExtendedPrefixMap for the meaning of merge.
func ParseExtendedPrefixMap(data []byte, merge bool) (*Converter, error) {
	var entries []extendedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	c := New()
	for _, e := range entries {
		r, err := NewRecord(e.Prefix, e.URIPrefix, e.PrefixSynonyms, e.URIPrefixSynonyms, e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: record %q: %s", ErrParse, e.Prefix, err)
		}
		if err := c.AddRecord(r, merge, true); err != nil {
			return nil, fmt.Errorf("%w: record %q: %w", ErrParse, e.Prefix, err)
		}
	}
	return c, nil
}

// WriteExtendedPrefixMap serializes every record in c, synonyms and
// pattern included, as a JSON array in insertion order.
func WriteExtendedPrefixMap(w io.Writer, c *Converter) error {
	records := c.Records()
	entries := make([]extendedEntry, len(records))
	for i, r := range records {
		entries[i] = extendedEntry{
			Prefix:            r.Prefix(),
			URIPrefix:         r.URIPrefix(),
			PrefixSynonyms:    r.PrefixSynonyms(),
			URIPrefixSynonyms: r.URIPrefixSynonyms(),
			Pattern:           r.Pattern(),
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrParse, err)
	}
	_, err = w.Write(data)
	return err
}
