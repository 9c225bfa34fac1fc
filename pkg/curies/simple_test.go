package curies

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestLoadSimplePrefixMap(t *testing.T) {
	path := writeTemp(t, "map.json", `{
		"GO": "http://purl.obolibrary.org/obo/GO_",
		"CHEBI": "http://purl.obolibrary.org/obo/CHEBI_"
	}`)

	c, err := LoadSimplePrefixMap(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("LoadSimplePrefixMap: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", c.Len())
	}
	uri, err := c.Expand("GO:1")
	if err != nil || uri != "http://purl.obolibrary.org/obo/GO_1" {
		t.Errorf("Expand GO:1 = %q, %v", uri, err)
	}
}

func TestLoadSimplePrefixMap_DuplicateKeyRejected(t *testing.T) {
	path := writeTemp(t, "dup.json", `{"GO": "http://example.org/a/", "GO": "http://example.org/b/"}`)

	_, err := LoadSimplePrefixMap(context.Background(), nil, path)
	if err == nil {
		t.Fatal("expected an error for duplicate top-level key")
	}
	if !strings.Contains(err.Error(), "duplicate key") {
		t.Errorf("expected duplicate-key error, got %v", err)
	}
}

func TestWriteSimplePrefixMapRoundTrip(t *testing.T) {
	c := New()
	_ = c.AddPrefix("GO", "http://purl.obolibrary.org/obo/GO_")
	_ = c.AddPrefix("CHEBI", "http://purl.obolibrary.org/obo/CHEBI_")

	var buf bytes.Buffer
	if err := WriteSimplePrefixMap(&buf, c); err != nil {
		t.Fatalf("WriteSimplePrefixMap: %v", err)
	}

	path := writeTemp(t, "roundtrip.json", buf.String())
	reloaded, err := LoadSimplePrefixMap(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("LoadSimplePrefixMap (roundtrip): %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("expected 2 records after roundtrip, got %d", reloaded.Len())
	}
}

func TestLoadSimplePrefixMap_NonStringValueRejected(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"GO": 123}`)
	if _, err := LoadSimplePrefixMap(context.Background(), nil, path); err == nil {
		t.Fatal("expected an error for non-string value")
	}
}
