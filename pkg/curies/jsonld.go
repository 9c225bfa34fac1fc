package curies

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// jsonldDocument is the subset of a JSON-LD document this package reads:
// just the top-level @context object. A @context entry may be a bare URI
// prefix string, or an object carrying an "@id" (the JSON-LD 1.1
// "expanded term definition" form); other keys in an expanded term
// definition (@type, @container, ...) are outside the scope of prefix
// conversion and are ignored.
type jsonldDocument struct {
	Context map[string]json.RawMessage `json:"@context"`
}

type jsonldExpandedTerm struct {
	ID string `json:"@id"`
}

// LoadJSONLDContext reads a JSON-LD document's @context from source and
// returns a Converter with one record per prefix binding: every bare string
// value, and every expanded term definition whose "@id" ends in "/", "_",
// ":", or "#". JSON-LD keyword entries ("@vocab", "@base", ...) are always
// skipped, as are expanded term definitions whose "@id" has no trailing
// separator.
func LoadJSONLDContext(ctx context.Context, f Fetcher, source string) (*Converter, error) {
	data, err := resolveSource(ctx, f, source)
	if err != nil {
		return nil, err
	}
	return ParseJSONLDContext(data)
}

// ParseJSONLDContext decodes a JSON-LD document already held in memory
// (a literal blob, not a file path or URL) the same way LoadJSONLDContext
// does.
func ParseJSONLDContext(data []byte) (*Converter, error) {
	var doc jsonldDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	c := New()
	for prefix, raw := range doc.Context {
		if len(prefix) == 0 || prefix[0] == '@' {
			continue
		}
		uriPrefix, ok := decodeContextValue(raw)
		isString := len(raw) > 0 && raw[0] == '"'
		if !ok || (!isString && !looksLikeNamespaceRoot(uriPrefix)) {
			continue
		}
		if err := c.AddPrefix(prefix, uriPrefix); err != nil {
			return nil, fmt.Errorf("%w: context entry %q: %w", ErrParse, prefix, err)
		}
	}
	return c, nil
}

// looksLikeNamespaceRoot reports whether s ends in one of the separator
// characters a URI prefix is expected to end with, per §4.4.3.
func looksLikeNamespaceRoot(s string) bool {
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '/', '_', ':', '#':
		return true
	default:
		return false
	}
}

// decodeContextValue extracts a candidate URI prefix from a @context
// entry. Only a bare string, or an object with a string "@id", are
// recognized shapes; anything else (a list, a number, a boolean, a
// nested context object with no "@id") is not a decode error — it is
// simply not a term definition this loader understands, and is skipped
// by the caller rather than aborting the whole document.
func decodeContextValue(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var term jsonldExpandedTerm
	if err := json.Unmarshal(raw, &term); err != nil {
		return "", false
	}
	if term.ID == "" {
		return "", false
	}
	return term.ID, true
}

// WriteJSONLD serializes c's canonical prefixes as a JSON-LD document
// containing only a top-level @context, the bare-string term-definition
// form. Synonyms are not round-tripped.
func WriteJSONLD(w io.Writer, c *Converter) error {
	records := c.Records()
	context := make(map[string]string, len(records))
	for _, r := range records {
		context[r.Prefix()] = r.URIPrefix()
	}
	doc := struct {
		Context map[string]string `json:"@context"`
	}{Context: context}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrParse, err)
	}
	_, err = w.Write(data)
	return err
}
