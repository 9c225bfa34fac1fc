package curies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// LoadSimplePrefixMap reads a JSON object mapping prefix -> URI prefix
// (e.g. {"GO": "http://purl.obolibrary.org/obo/GO_"}) from source, which
// is either an http(s) URL, fetched with f (or the package default when f
// is nil), or a local file path, and returns a Converter with one record
// per entry. Any other source string, literal JSON text included, is read
// as a file path; ParseSimplePrefixMap decodes JSON already in memory.
//
// Unlike a plain json.Unmarshal into a map, this walks the token stream so
// a document with a repeated top-level key is rejected with ErrParse
// instead of silently keeping only the last occurrence: a duplicate key in
// a prefix map almost always indicates the source file was generated
// incorrectly, and converting a record might then quietly drop a prefix.
func LoadSimplePrefixMap(ctx context.Context, f Fetcher, source string) (*Converter, error) {
	data, err := resolveSource(ctx, f, source)
	if err != nil {
		return nil, err
	}
	return ParseSimplePrefixMap(data)
}

// ParseSimplePrefixMap decodes a simple prefix map already held in
// memory, e.g. an embedded snapshot in pkg/curies/registry.
func ParseSimplePrefixMap(data []byte) (*Converter, error) {
	pairs, err := decodeUniqueStringObject(data)
	if err != nil {
		return nil, err
	}

	c := New()
	for _, kv := range pairs {
		if err := c.AddPrefix(kv.key, kv.value); err != nil {
			return nil, fmt.Errorf("%w: prefix %q: %w", ErrParse, kv.key, err)
		}
	}
	return c, nil
}

type stringPair struct{ key, value string }

// decodeUniqueStringObject walks a top-level JSON object token by token,
// enforcing string values and no duplicate keys.
func decodeUniqueStringObject(data []byte) ([]stringPair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object at top level", ErrParse)
	}

	seen := make(map[string]struct{})
	var out []stringPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string object key %v", ErrParse, keyTok)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrParse, key)
		}
		seen[key] = struct{}{}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, err)
		}
		val, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: value for %q is not a string", ErrParse, key)
		}
		if val == "" {
			return nil, fmt.Errorf("%w: empty uri prefix for key %q", ErrParse, key)
		}
		out = append(out, stringPair{key: key, value: val})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	return out, nil
}

// WriteSimplePrefixMap serializes c's canonical prefixes as a simple
// prefix map; synonyms are not round-tripped by this format. Key order in
// the output is alphabetical, per encoding/json's map-marshaling rule.
func WriteSimplePrefixMap(w io.Writer, c *Converter) error {
	records := c.Records()
	m := make(map[string]string, len(records))
	for _, r := range records {
		m[r.Prefix()] = r.URIPrefix()
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrParse, err)
	}
	_, err = w.Write(data)
	return err
}
