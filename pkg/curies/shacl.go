package curies

import (
	"context"
	"fmt"
	"io"

	"github.com/biopragmatics/curies-go/internal/turtleparse"
)

const (
	shaclPrefixPredicate    = "http://www.w3.org/ns/shacl#prefix"
	shaclNamespacePredicate = "http://www.w3.org/ns/shacl#namespace"
)

// LoadSHACLPrefixes reads a SHACL PrefixDeclaration graph, serialized as
// Turtle, from source and returns a Converter with one record per
// declaration. Each declaration is expected to carry a sh:prefix literal
// and a sh:namespace literal on the same (usually blank) subject node, as
// produced by tools like the OWL API's SHACL prefix declaration export.
//
// This loader uses internal/turtleparse, a condensed Turtle parser scoped
// to prefix-declaration graphs: it does not support RDF collections,
// quoted triples, or numeric literals, none of which a prefix declaration
// sheet has any legitimate use for.
func LoadSHACLPrefixes(ctx context.Context, f Fetcher, source string) (*Converter, error) {
	data, err := resolveSource(ctx, f, source)
	if err != nil {
		return nil, err
	}
	return ParseSHACLPrefixes(data)
}

// ParseSHACLPrefixes decodes a SHACL PrefixDeclaration graph already held
// in memory (a literal Turtle blob, not a file path or URL) the same way
// LoadSHACLPrefixes does.
func ParseSHACLPrefixes(data []byte) (*Converter, error) {
	triples, err := turtleparse.NewParser(string(data)).Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	bySubject := make(map[string]*shaclDecl)
	var order []string
	for _, tr := range triples {
		switch tr.Predicate.Value {
		case shaclPrefixPredicate:
			d := declFor(bySubject, &order, tr.Subject.Value)
			d.prefix = tr.Object.Value
		case shaclNamespacePredicate:
			d := declFor(bySubject, &order, tr.Subject.Value)
			d.namespace = tr.Object.Value
		}
	}

	c := New()
	for _, subj := range order {
		d := bySubject[subj]
		if d.prefix == "" || d.namespace == "" {
			return nil, fmt.Errorf("%w: PrefixDeclaration node missing sh:prefix or sh:namespace", ErrParse)
		}
		if err := c.AddPrefix(d.prefix, d.namespace); err != nil {
			return nil, fmt.Errorf("%w: declaration %q: %w", ErrParse, d.prefix, err)
		}
	}
	return c, nil
}

type shaclDecl struct{ prefix, namespace string }

func declFor(m map[string]*shaclDecl, order *[]string, subject string) *shaclDecl {
	d, ok := m[subject]
	if !ok {
		d = &shaclDecl{}
		m[subject] = d
		*order = append(*order, subject)
	}
	return d
}

// WriteSHACL serializes c's canonical prefixes as a SHACL
// PrefixDeclaration graph in Turtle, one blank-node-property-list
// statement per record, sh:prefix and sh:namespace literals.
func WriteSHACL(w io.Writer, c *Converter) error {
	if _, err := io.WriteString(w, "@prefix sh: <http://www.w3.org/ns/shacl#> .\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n\n"); err != nil {
		return err
	}
	for _, r := range c.Records() {
		_, err := fmt.Fprintf(w, "[] a sh:PrefixDeclaration ;\n   sh:prefix %q ;\n   sh:namespace %q^^xsd:anyURI .\n\n",
			r.Prefix(), r.URIPrefix())
		if err != nil {
			return err
		}
	}
	return nil
}
