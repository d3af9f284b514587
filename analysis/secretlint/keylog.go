// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"regexp"
	"strings"
)

var keylogCheck = &check{
	name:  "keylog",
	title: "Key Logging Analysis",
	exemptFiles: []string{
		"cmd/apkey/phrase.go", // prints the mnemonic on request
		"cmd/apkey/export.go", // prints the base58 seed on request
	},
	scan: scanKeylog,
}

// secretNames are identifiers (lowercased) that hold key material.
var secretNames = map[string]bool{
	"seed":            true,
	"entropy":         true,
	"stretched":       true,
	"secret":          true,
	"scalar":          true,
	"privatekey":      true,
	"privkey":         true,
	"secretkey":       true,
	"mnemonic":        true,
	"passphrase":      true,
	"plaintext":       true,
	"secretbytes":     true,
	"unencryptedseed": true,
}

var (
	formatVerbPattern = regexp.MustCompile(`%[-+# 0-9.]*[vxXsqd]`)
	identPattern      = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	lenPattern        = regexp.MustCompile(`\b(len|cap)\([^)]*\)`)
	printCallPattern  = regexp.MustCompile(`\b(fmt\.Print(ln)?|log\.Print(ln)?|util\.(Debug|Warn)|Logger\.\w+)\(`)
)

func scanKeylog(path string, lines []string) []finding {
	var findings []finding
	for i, line := range lines {
		if isComment(line) {
			continue
		}
		code, literals := splitLiterals(line)
		name := secretIdent(code)
		if name == "" {
			continue
		}

		switch {
		case printCallPattern.MatchString(line):
			findings = append(findings, finding{
				file:    path,
				line:    i + 1,
				content: line,
				reason:  "Direct logging of key material variable " + name,
			})
		case formatVerbPattern.MatchString(literals):
			findings = append(findings, finding{
				file:    path,
				line:    i + 1,
				content: line,
				reason:  "Potential key material in formatted output: " + name,
			})
		}
	}
	return findings
}

// secretIdent returns the first secret-named identifier in code that is not a
// package or receiver qualifier. len() and cap() arguments are ignored.
func secretIdent(code string) string {
	code = lenPattern.ReplaceAllString(code, "")
	for _, loc := range identPattern.FindAllStringIndex(code, -1) {
		if loc[1] < len(code) && code[loc[1]] == '.' {
			continue
		}
		ident := code[loc[0]:loc[1]]
		if secretNames[strings.ToLower(ident)] {
			return ident
		}
	}
	return ""
}

// splitLiterals separates a line into code with string literal contents
// removed and the concatenated literal contents.
func splitLiterals(line string) (code, literals string) {
	var c, l strings.Builder
	var quote rune
	escaped := false
	for _, ch := range line {
		switch {
		case quote == 0:
			if ch == '"' || ch == '`' {
				quote = ch
			}
			c.WriteRune(ch)
		case escaped:
			escaped = false
			l.WriteRune(ch)
		case ch == '\\' && quote == '"':
			escaped = true
		case ch == quote:
			quote = 0
			c.WriteRune(ch)
		default:
			l.WriteRune(ch)
		}
	}
	return c.String(), l.String()
}
