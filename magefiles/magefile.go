//go:build mage

// Package main contains Mage build targets for scholar-page developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "scholar-page"
	cmdPkg  = "./cmd/scholar-page"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints Go production and test line counts per package directory.
func Stats() error {
	prod, test := map[string]int{}, map[string]int{}
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)
		if strings.HasSuffix(path, "_test.go") {
			test[dir] += n
		} else {
			prod[dir] += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(prod))
	for dir := range prod {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var totalProd, totalTest int
	fmt.Printf("%-28s %8s %8s\n", "package", "prod", "test")
	for _, dir := range dirs {
		fmt.Printf("%-28s %8d %8d\n", dir, prod[dir], test[dir])
		totalProd += prod[dir]
		totalTest += test[dir]
	}
	fmt.Printf("%-28s %8d %8d\n", "total", totalProd, totalTest)
	return nil
}

// countLines counts non-blank lines in a file.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}

// Page builds the binary and generates publications.html for the profile
// in SCHOLAR_PAGE_PROFILE_ID, named SCHOLAR_PAGE_PROFILE_NAME.
func Page() error {
	mg.Deps(Build)
	if os.Getenv("SCHOLAR_PAGE_PROFILE_ID") == "" && os.Getenv("SCHOLAR_PAGE_PAGE_INPUT") == "" {
		return fmt.Errorf("set SCHOLAR_PAGE_PROFILE_ID (or SCHOLAR_PAGE_PAGE_INPUT) and SCHOLAR_PAGE_PROFILE_NAME")
	}
	return sh.RunV(filepath.Join(binDir, binName), "generate")
}

// Snapshot saves the profile's raw publications to pubs.json for offline
// runs with "generate --input pubs.json".
func Snapshot() error {
	mg.Deps(Build)
	id := os.Getenv("SCHOLAR_PAGE_PROFILE_ID")
	if id == "" {
		return fmt.Errorf("set SCHOLAR_PAGE_PROFILE_ID")
	}
	out, err := sh.Output(filepath.Join(binDir, binName), "fetch", "--id", id, "--format", "json")
	if err != nil {
		return err
	}
	if err := os.WriteFile("pubs.json", []byte(out+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing pubs.json: %w", err)
	}
	fmt.Println("Saved pubs.json")
	return nil
}
