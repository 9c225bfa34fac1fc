package triestore

import "testing"

func TestLongestMatch_PicksDeepestTerminal(t *testing.T) {
	tr := New()
	if err := tr.Insert("http://purl.obolibrary.org/obo/", 1); err != nil {
		t.Fatalf("insert obo: %v", err)
	}
	if err := tr.Insert("http://purl.obolibrary.org/obo/DOID_", 2); err != nil {
		t.Fatalf("insert doid: %v", err)
	}

	term, ok := tr.LongestMatch("http://purl.obolibrary.org/obo/DOID_1234")
	if !ok {
		t.Fatal("expected a match")
	}
	if term.Handle != 2 || term.Key != "http://purl.obolibrary.org/obo/DOID_" {
		t.Errorf("expected DOID_ terminal, got %+v", term)
	}

	term, ok = tr.LongestMatch("http://purl.obolibrary.org/obo/1234")
	if !ok {
		t.Fatal("expected a match")
	}
	if term.Handle != 1 {
		t.Errorf("expected OBO terminal, got %+v", term)
	}
}

func TestLongestMatch_NoMatch(t *testing.T) {
	tr := New()
	_ = tr.Insert("http://example.org/", 1)
	if _, ok := tr.LongestMatch("http://other.org/x"); ok {
		t.Fatal("expected no match")
	}
}

func TestInsert_EmptyKeyRejected(t *testing.T) {
	tr := New()
	if err := tr.Insert("", 1); err != ErrEmptyKey {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestInsert_ConflictOnDifferentHandle(t *testing.T) {
	tr := New()
	if err := tr.Insert("http://example.org/", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tr.Insert("http://example.org/", 2); err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	// Re-inserting with the same handle is a no-op, not a conflict.
	if err := tr.Insert("http://example.org/", 1); err != nil {
		t.Fatalf("expected idempotent insert to succeed, got %v", err)
	}
}

func TestLongestMatch_ExactMatchEmptyResidual(t *testing.T) {
	tr := New()
	_ = tr.Insert("http://example.org/foo", 1)
	term, ok := tr.LongestMatch("http://example.org/foo")
	if !ok {
		t.Fatal("expected exact-match to count as a match")
	}
	if len(term.Key) != len("http://example.org/foo") {
		t.Errorf("expected zero residual, got match len %d", len(term.Key))
	}
}
