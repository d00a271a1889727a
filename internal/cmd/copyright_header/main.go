// Copyright 2023-2026 The ThrillerFlow Authors. SPDX-License-Identifier: Apache-2.0

// copyright_header adds the project's SPDX copyright header to every Go source file missing one.
// Generated files (gen_*.go) are skipped.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagProject = flag.String("project", "ThrillerFlow", "Project name used in the copyright header.")
	flagDryRun  = flag.Bool("dry_run", false, "Only list the files missing the header.")
)

// headerScanLines is how far from the top of a file an existing header is searched for.
const headerScanLines = 50

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [path ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Adds a copyright header to Go files missing one. Default path is the current directory.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	header := copyrightHeader(*flagProject)
	roots := flag.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) && path != root || name == "vendor" {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(d.Name(), ".go") || strings.HasPrefix(d.Name(), "gen_") {
				return nil
			}
			changed, err := addHeader(path, header, *flagDryRun)
			if changed {
				klog.Infof("Header missing in %s", path)
			}
			return err
		}); err != nil {
			klog.Fatalf("Failed walking %q: %+v", root, err)
		}
	}
}

func copyrightHeader(project string) string {
	return fmt.Sprintf("// Copyright 2023-2026 The %s Authors. SPDX-License-Identifier: Apache-2.0\n\n", project)
}

// addHeader inserts header at the top of the file, or after its build constraints, unless the file
// already has a copyright line. It returns whether the file was missing the header.
func addHeader(path, header string, dryRun bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "reading %q", path)
	}
	updated, changed := withHeader(string(content), header)
	if !changed || dryRun {
		return changed, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return true, errors.Wrapf(err, "writing %q", path)
	}
	return true, nil
}

// withHeader returns content with the header added, and whether it was missing.
func withHeader(content, header string) (string, bool) {
	lines := strings.Split(content, "\n")
	lastConstraint := -1
	for ii, line := range lines {
		if ii > headerScanLines {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "// Copyright") {
			return content, false
		}
		if strings.HasPrefix(trimmed, "//go:build") || strings.HasPrefix(trimmed, "// +build") {
			lastConstraint = ii
		}
	}
	if lastConstraint == -1 {
		return header + content, true
	}
	constraints := strings.Join(lines[:lastConstraint+1], "\n")
	rest := strings.TrimLeft(strings.Join(lines[lastConstraint+1:], "\n"), "\n")
	return constraints + "\n\n" + header + rest, true
}
