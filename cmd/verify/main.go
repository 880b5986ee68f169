// Package main provides the verify command: it checks the provenance block
// embedded in a generated report against the document contents.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"wureport/pkg/metadata"
)

func main() {
	inputPath := flag.String("input", "index.html", "Path to a generated report")
	flag.Parse()

	content, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", *inputPath, err)
		os.Exit(1)
	}

	meta, _ := metadata.Extract(string(content))
	if meta == nil {
		fmt.Fprintf(os.Stderr, "%s: no metadata block found\n", *inputPath)
		os.Exit(1)
	}

	ok, err := metadata.Verify(string(content))
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: verification failed: %v\n", *inputPath, err)
		os.Exit(1)
	}

	fmt.Printf("%s: ok\n", *inputPath)
	fmt.Printf("generated at: %s\n", meta.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("window days:  %d\n", meta.WindowDays)
	fmt.Printf("hash:         %s\n", meta.Hash)
}
