package curies

import (
	"bytes"
	"context"
	"testing"
)

func TestLoadJSONLDContext(t *testing.T) {
	path := writeTemp(t, "context.jsonld", `{
		"@context": {
			"GO": "http://purl.obolibrary.org/obo/GO_",
			"CHEBI": {"@id": "http://purl.obolibrary.org/obo/CHEBI_"},
			"@vocab": "http://example.org/vocab#",
			"label": "http://www.w3.org/2000/01/rdf-schema#label"
		}
	}`)

	c, err := LoadJSONLDContext(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("LoadJSONLDContext: %v", err)
	}
	// Bare string values are taken as prefix bindings whatever they end in,
	// so "label" becomes a record alongside GO and CHEBI; "@vocab" is a
	// keyword and is skipped.
	if c.Len() != 3 {
		t.Fatalf("expected 3 records (GO, CHEBI, label), got %d: %v", c.Len(), c.GetPrefixes(false))
	}
	uri, err := c.Expand("GO:1")
	if err != nil || uri != "http://purl.obolibrary.org/obo/GO_1" {
		t.Errorf("Expand(GO:1) = %q, %v", uri, err)
	}
	uri, err = c.Expand("CHEBI:1")
	if err != nil || uri != "http://purl.obolibrary.org/obo/CHEBI_1" {
		t.Errorf("Expand(CHEBI:1) = %q, %v", uri, err)
	}
	if !c.IsCurie("label:1") {
		t.Error("expected string-valued 'label' to be registered as a prefix")
	}
}

// A list-valued, boolean-valued, or number-valued @context entry is not a
// recognized term-definition shape and must be skipped without aborting
// the rest of the document.
func TestLoadJSONLDContext_NonStringNonObjectEntriesSkipped(t *testing.T) {
	c, err := ParseJSONLDContext([]byte(`{
		"@context": {
			"GO": "http://purl.obolibrary.org/obo/GO_",
			"terms": ["http://example.org/a", "http://example.org/b"],
			"flag": true,
			"count": 42,
			"nested": {"foo": "bar"}
		}
	}`))
	if err != nil {
		t.Fatalf("ParseJSONLDContext: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected only GO to be registered, got %d: %v", c.Len(), c.GetPrefixes(false))
	}
	if _, err := c.Expand("GO:1"); err != nil {
		t.Errorf("Expand(GO:1): %v", err)
	}
	for _, skipped := range []string{"terms", "flag", "count", "nested"} {
		if c.IsCurie(skipped + ":1") {
			t.Errorf("expected %q to be skipped, not registered as a prefix", skipped)
		}
	}
}

func TestWriteJSONLD(t *testing.T) {
	c := New()
	_ = c.AddPrefix("GO", "http://purl.obolibrary.org/obo/GO_")

	var buf bytes.Buffer
	if err := WriteJSONLD(&buf, c); err != nil {
		t.Fatalf("WriteJSONLD: %v", err)
	}

	path := writeTemp(t, "jsonld-roundtrip.json", buf.String())
	reloaded, err := LoadJSONLDContext(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("LoadJSONLDContext (roundtrip): %v", err)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", reloaded.Len())
	}
}
