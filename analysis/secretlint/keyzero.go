// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"regexp"
	"strings"
)

var keyzeroCheck = &check{
	name:  "keyzero",
	title: "Key Zeroing Analysis",
	dirs: []string{
		"internal/keys",
		"internal/keypair",
		"internal/crypto",
		"internal/wallet",
		"cmd/apkey",
	},
	scan: scanKeyzero,
}

// Calls that hand the caller a fresh copy of secret bytes.
var secretSourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.SecretBytes\(\)`),
	regexp.MustCompile(`\.UnencryptedSeed\(\)`),
	regexp.MustCompile(`\.MarshalBinary\(\)`),
	regexp.MustCompile(`\bcrypto\.Open\(`),
}

var zeroPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bZeroBytes\(`),
	regexp.MustCompile(`\.Zero\(\)`),
	regexp.MustCompile(`\bclear\(`),
}

// Functions that return the secret to their caller, who owns zeroing it.
var ownershipTransfer = map[string]bool{
	"SecretBytes":     true,
	"UnencryptedSeed": true,
	"MarshalBinary":   true,
	"encode":          true,
}

var funcPattern = regexp.MustCompile(`^func\s+(\([^)]+\)\s+)?(\w+)`)

type funcState struct {
	name    string
	depth   int
	source  int
	content string
	hasZero bool
	started bool
}

func scanKeyzero(path string, lines []string) []finding {
	var findings []finding
	var fn *funcState

	flush := func() {
		if fn != nil && fn.source > 0 && !fn.hasZero && !ownershipTransfer[fn.name] {
			findings = append(findings, finding{
				file:    path,
				line:    fn.source,
				content: fn.content,
				reason:  "secret bytes obtained in " + fn.name + " but nothing is zeroed",
			})
		}
		fn = nil
	}

	for i, line := range lines {
		lineNum := i + 1
		if m := funcPattern.FindStringSubmatch(line); m != nil {
			flush()
			fn = &funcState{name: m[2]}
		}
		if fn == nil || isComment(line) {
			continue
		}

		code, _ := splitLiterals(line)
		opens := strings.Count(code, "{")
		fn.depth += opens - strings.Count(code, "}")
		if opens > 0 {
			fn.started = true
		}

		if fn.source == 0 {
			for _, pat := range secretSourcePatterns {
				if pat.MatchString(code) {
					fn.source = lineNum
					fn.content = line
					break
				}
			}
		}
		for _, pat := range zeroPatterns {
			if pat.MatchString(code) {
				fn.hasZero = true
				break
			}
		}

		if fn.started && fn.depth == 0 {
			flush()
		}
	}
	flush()
	return findings
}
