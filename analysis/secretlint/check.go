// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type finding struct {
	file    string
	line    int
	content string
	reason  string
}

// check is one analysis pass. dirs limits the walk to those directories
// (relative to the repo root); nil walks the whole tree.
type check struct {
	name  string
	title string
	dirs  []string

	// exemptFiles are path suffixes of files that intentionally reveal secrets.
	exemptFiles []string

	scan func(path string, lines []string) []finding
}

type report struct {
	title        string
	filesChecked int
	findings     []finding
}

var allChecks = []*check{keylogCheck, keyzeroCheck, insecureRandCheck}

func checkNames() []string {
	names := make([]string, len(allChecks))
	for i, c := range allChecks {
		names[i] = c.name
	}
	return names
}

func findCheck(name string) *check {
	for _, c := range allChecks {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (c *check) run(root string) (*report, error) {
	r := &report{title: c.title}
	dirs := c.dirs
	if dirs == nil {
		dirs = []string{"."}
	}

	for _, dir := range dirs {
		dirPath := filepath.Join(root, dir)
		if _, err := os.Stat(dirPath); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dirPath && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") || c.exempt(path) {
				return nil
			}

			lines, err := readLines(path)
			if err != nil {
				return err
			}
			r.filesChecked++
			r.findings = append(r.findings, c.scan(path, lines)...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	return r, nil
}

// skipDir mirrors the go tool: "_" and "." prefixed directories are ignored,
// as are vendored code, testdata and the analyzers themselves.
func skipDir(name string) bool {
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "vendor", "testdata", "node_modules", "analysis":
		return true
	}
	return false
}

func (c *check) exempt(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, suffix := range c.exemptFiles {
		if strings.HasSuffix(slashed, suffix) {
			return true
		}
	}
	return false
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

func (r *report) print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s\n%s\n", r.title, strings.Repeat("=", len(r.title)))
	_, _ = fmt.Fprintf(w, "Files checked: %d\n\n", r.filesChecked)
	if len(r.findings) == 0 {
		_, _ = fmt.Fprintln(w, "No issues found.")
		_, _ = fmt.Fprintln(w)
		return
	}
	_, _ = fmt.Fprintf(w, "Potential issues: %d\n\n", len(r.findings))
	for _, f := range r.findings {
		_, _ = fmt.Fprintf(w, "%s:%d\n", f.file, f.line)
		_, _ = fmt.Fprintf(w, "  Line: %s\n", strings.TrimSpace(f.content))
		_, _ = fmt.Fprintf(w, "  Issue: %s\n\n", f.reason)
	}
}
