package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/escape-engine/internal/content"
	"github.com/jwebster45206/escape-engine/pkg/catalog"
)

// validate checks catalog content files before they ship: strict JSON
// decoding, ID formats, and every cross-reference in the catalog. Run
// it against a file or a directory of catalogs.

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog.json | directory>\n", os.Args[0])
		os.Exit(1)
	}

	target := os.Args[1]
	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read %s: %v\n", target, err)
		os.Exit(1)
	}

	files := []string{target}
	if info.IsDir() {
		files, err = jsonFiles(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "No catalog files found in %s\n", target)
			os.Exit(1)
		}
	}

	preds := content.Predicates()
	failed := false
	for _, file := range files {
		if err := validateFile(file, preds); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid\n", file)
	}
	if failed {
		os.Exit(1)
	}
}

var filenamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func validateFile(filename string, preds catalog.Predicates) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("catalog file must have .json extension: %s", baseName)
	}
	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !filenamePattern.MatchString(nameWithoutExt) {
		return fmt.Errorf("catalog filename %q must be lowercase snake_case (e.g. ward701.json, not Ward701.json)", baseName)
	}

	c, err := catalog.LoadFile(filename)
	if err != nil {
		return err
	}
	if err := c.Validate(preds); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

func jsonFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
