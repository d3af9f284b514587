// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import "regexp"

var insecureRandCheck = &check{
	name:  "insecurerand",
	title: "Insecure Random Analysis",
	dirs: []string{
		"internal/keys",
		"internal/keypair",
		"internal/crypto",
		"internal/mnemonic",
		"internal/wallet",
	},
	scan: scanInsecureRand,
}

var mathRandImportPattern = regexp.MustCompile(`"math/rand(/v2)?"`)

var cryptoRandImportPattern = regexp.MustCompile(`"crypto/rand"`)

// Calls that only exist in math/rand.
var mathRandOnlyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rand\.Seed\(`),
	regexp.MustCompile(`rand\.Intn\(`),
	regexp.MustCompile(`rand\.Int(31|63)`),
	regexp.MustCompile(`rand\.Float(32|64)\(`),
	regexp.MustCompile(`rand\.Perm\(`),
	regexp.MustCompile(`rand\.Shuffle\(`),
	regexp.MustCompile(`rand\.NewSource\(`),
	regexp.MustCompile(`rand\.(N|IntN|Uint64)\(`),
}

func scanInsecureRand(path string, lines []string) []finding {
	var findings []finding
	hasCryptoRand := false

	for i, line := range lines {
		if mathRandImportPattern.MatchString(line) {
			findings = append(findings, finding{
				file:    path,
				line:    i + 1,
				content: line,
				reason:  "math/rand import in key handling package - use crypto/rand instead",
			})
		}
		if cryptoRandImportPattern.MatchString(line) {
			hasCryptoRand = true
		}
	}

	// An aliased math/rand import still shows up through its API
	if hasCryptoRand {
		return findings
	}
	for i, line := range lines {
		if isComment(line) {
			continue
		}
		for _, pat := range mathRandOnlyPatterns {
			if pat.MatchString(line) {
				findings = append(findings, finding{
					file:    path,
					line:    i + 1,
					content: line,
					reason:  "math/rand function in key handling code without crypto/rand import",
				})
				break
			}
		}
	}
	return findings
}
