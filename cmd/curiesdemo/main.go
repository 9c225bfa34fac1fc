package main

import (
	"fmt"
	"log"
	"os"

	"github.com/biopragmatics/curies-go/pkg/curies"
	"github.com/biopragmatics/curies-go/pkg/curies/registry"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: curiesdemo <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo            - Run a demo with sample prefixes")
		fmt.Println("  expand <curie>  - Expand a CURIE against the bundled OBO converter")
		fmt.Println("  compress <uri>  - Compress a URI against the bundled OBO converter")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "demo":
		runDemo()
	case "expand":
		if len(os.Args) < 3 {
			fmt.Println("Usage: curiesdemo expand <curie>")
			os.Exit(1)
		}
		runExpand(os.Args[2])
	case "compress":
		if len(os.Args) < 3 {
			fmt.Println("Usage: curiesdemo compress <uri>")
			os.Exit(1)
		}
		runCompress(os.Args[2])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func runDemo() {
	fmt.Println("=== curies-go demo ===")
	fmt.Println()

	c := curies.New()
	records := []struct {
		prefix, uriPrefix string
		synonyms          []string
	}{
		{"GO", "http://purl.obolibrary.org/obo/GO_", []string{"go"}},
		{"CHEBI", "http://purl.obolibrary.org/obo/CHEBI_", nil},
		{"DOID", "http://purl.obolibrary.org/obo/DOID_", nil},
	}

	fmt.Println("Registering prefixes...")
	for _, rec := range records {
		r, err := curies.NewRecord(rec.prefix, rec.uriPrefix, rec.synonyms, nil, "")
		if err != nil {
			log.Fatalf("building record for %s: %v", rec.prefix, err)
		}
		if err := c.AddRecord(r, false, true); err != nil {
			log.Fatalf("registering %s: %v", rec.prefix, err)
		}
		fmt.Printf("  + %s -> %s\n", rec.prefix, rec.uriPrefix)
	}
	fmt.Println()

	curie := "GO:0008150"
	uri, err := c.Expand(curie)
	if err != nil {
		log.Fatalf("expand: %v", err)
	}
	fmt.Printf("Expand(%q)  = %s\n", curie, uri)

	back, err := c.Compress(uri)
	if err != nil {
		log.Fatalf("compress: %v", err)
	}
	fmt.Printf("Compress(%q) = %s\n", uri, back)

	fmt.Println()
	fmt.Println("Chaining with the bundled Bioregistry converter...")
	bioregistry, err := registry.GetBioregistryConverter()
	if err != nil {
		log.Fatalf("loading bioregistry converter: %v", err)
	}
	chained, err := curies.Chain(c, bioregistry)
	if err != nil {
		log.Fatalf("chaining converters: %v", err)
	}
	fmt.Printf("chained converter now knows %d prefixes\n", chained.Len())
	fmt.Printf("fingerprint: %x\n", chained.Fingerprint())
}

func runExpand(curie string) {
	c, err := registry.GetOBOConverter()
	if err != nil {
		log.Fatalf("loading OBO converter: %v", err)
	}
	uri, err := c.Expand(curie)
	if err != nil {
		log.Fatalf("expand %q: %v", curie, err)
	}
	fmt.Println(uri)
}

func runCompress(uri string) {
	c, err := registry.GetOBOConverter()
	if err != nil {
		log.Fatalf("loading OBO converter: %v", err)
	}
	curie, err := c.Compress(uri)
	if err != nil {
		log.Fatalf("compress %q: %v", uri, err)
	}
	fmt.Println(curie)
}
