// Package registry provides canned Converters for a handful of
// well-known biomedical prefix authorities (OBO, the Gene Ontology,
// Monarch Initiative, Bioregistry), built from snapshots embedded at
// compile time with go:embed. They are meant as a convenient starting
// point or as a base layer for curies.Chain, not as a live mirror of the
// upstream registries.
package registry

import (
	"embed"
	"fmt"
	"sync"

	"github.com/biopragmatics/curies-go/pkg/curies"
)

//go:embed data/obo.json data/go.json data/monarch.json data/bioregistry.json
var snapshots embed.FS

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*curies.Converter)
)

func cached(name string, build func() (*curies.Converter, error)) (*curies.Converter, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if c, ok := cache[name]; ok {
		return c, nil
	}
	c, err := build()
	if err != nil {
		return nil, fmt.Errorf("registry: building %s converter: %w", name, err)
	}
	cache[name] = c
	return c, nil
}

func readSnapshot(name string) ([]byte, error) {
	data, err := snapshots.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("registry: reading embedded snapshot %s: %w", name, err)
	}
	return data, nil
}

// GetOBOConverter returns a Converter covering a representative slice of
// OBO Foundry PURL namespaces (GO, CHEBI, DOID, HP, UBERON, ...), loaded
// from an embedded simple prefix map.
func GetOBOConverter() (*curies.Converter, error) {
	return cached("obo", func() (*curies.Converter, error) {
		data, err := readSnapshot("obo.json")
		if err != nil {
			return nil, err
		}
		return curies.ParseSimplePrefixMap(data)
	})
}

// GetGOConverter returns a Converter scoped to the Gene Ontology's own
// namespaces and closely related ontologies (GO, GOREL, ECO, ...).
func GetGOConverter() (*curies.Converter, error) {
	return cached("go", func() (*curies.Converter, error) {
		data, err := readSnapshot("go.json")
		if err != nil {
			return nil, err
		}
		return curies.ParseSimplePrefixMap(data)
	})
}

// GetMonarchConverter returns a Converter covering the cross-species
// disease and phenotype namespaces used by the Monarch Initiative (MONDO,
// HP, HGNC, MGI, ORPHANET), loaded from an embedded extended prefix map
// so their common case-variant synonyms (hp, HPO, Orphanet, ...) resolve.
func GetMonarchConverter() (*curies.Converter, error) {
	return cached("monarch", func() (*curies.Converter, error) {
		data, err := readSnapshot("monarch.json")
		if err != nil {
			return nil, err
		}
		return curies.ParseExtendedPrefixMap(data, false)
	})
}

// GetBioregistryConverter returns a Converter covering a representative
// slice of Bioregistry entries (chebi, ncbigene, pubchem.compound,
// uniprot, doid, reactome), loaded from an embedded extended prefix map.
func GetBioregistryConverter() (*curies.Converter, error) {
	return cached("bioregistry", func() (*curies.Converter, error) {
		data, err := readSnapshot("bioregistry.json")
		if err != nil {
			return nil, err
		}
		return curies.ParseExtendedPrefixMap(data, false)
	})
}
