package curies

import (
	"bytes"
	"context"
	"testing"
)

func TestLoadSHACLPrefixes(t *testing.T) {
	path := writeTemp(t, "prefixes.ttl", `
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

[] a sh:PrefixDeclaration ;
   sh:prefix "GO" ;
   sh:namespace "http://purl.obolibrary.org/obo/GO_"^^xsd:anyURI .

[] a sh:PrefixDeclaration ;
   sh:prefix "CHEBI" ;
   sh:namespace "http://purl.obolibrary.org/obo/CHEBI_"^^xsd:anyURI .
`)

	c, err := LoadSHACLPrefixes(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("LoadSHACLPrefixes: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", c.Len())
	}
	uri, err := c.Expand("CHEBI:1")
	if err != nil || uri != "http://purl.obolibrary.org/obo/CHEBI_1" {
		t.Errorf("Expand(CHEBI:1) = %q, %v", uri, err)
	}
}

func TestParseSHACLPrefixes(t *testing.T) {
	c, err := ParseSHACLPrefixes([]byte(`
@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

[] a sh:PrefixDeclaration ;
   sh:prefix "GO" ;
   sh:namespace "http://purl.obolibrary.org/obo/GO_"^^xsd:anyURI .
`))
	if err != nil {
		t.Fatalf("ParseSHACLPrefixes: %v", err)
	}
	uri, err := c.Expand("GO:1")
	if err != nil || uri != "http://purl.obolibrary.org/obo/GO_1" {
		t.Errorf("Expand(GO:1) = %q, %v", uri, err)
	}
}

func TestLoadSHACLPrefixes_MissingNamespaceFails(t *testing.T) {
	path := writeTemp(t, "bad.ttl", `
@prefix sh: <http://www.w3.org/ns/shacl#> .
[] sh:prefix "GO" .
`)
	if _, err := LoadSHACLPrefixes(context.Background(), nil, path); err == nil {
		t.Fatal("expected an error for incomplete declaration")
	}
}

func TestWriteSHACLRoundTrip(t *testing.T) {
	c := New()
	_ = c.AddPrefix("GO", "http://purl.obolibrary.org/obo/GO_")
	_ = c.AddPrefix("CHEBI", "http://purl.obolibrary.org/obo/CHEBI_")

	var buf bytes.Buffer
	if err := WriteSHACL(&buf, c); err != nil {
		t.Fatalf("WriteSHACL: %v", err)
	}

	path := writeTemp(t, "shacl-roundtrip.ttl", buf.String())
	reloaded, err := LoadSHACLPrefixes(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("LoadSHACLPrefixes (roundtrip): %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 records after roundtrip, got %d", reloaded.Len())
	}
}
