// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func lines(src string) []string {
	return strings.Split(strings.TrimPrefix(src, "\n"), "\n")
}

func TestKeylog(t *testing.T) {
	src := lines(`
func leak(seed []byte, n int) {
	fmt.Printf("seed: %x\n", seed)
	util.Debug("derived", "entropy", entropy)
	fmt.Println(privateKey)
	err := fmt.Errorf("got %d bytes", len(seed))
	fmt.Printf("words: %d\n", n)
	mnemonic.SplitPhrase(phrase)
	// fmt.Printf("%x", seed)
	fmt.Printf("%s", "seed")
}`)
	findings := scanKeylog("leak.go", src)
	require.Len(t, findings, 3)
	require.Equal(t, 2, findings[0].line)
	require.Equal(t, 3, findings[1].line)
	require.Contains(t, findings[1].reason, "Direct logging")
	require.Equal(t, 4, findings[2].line)
}

func TestSplitLiterals(t *testing.T) {
	code, literals := splitLiterals(`fmt.Printf("a \"%x\" b", seed, ` + "`raw %v`" + `)`)
	require.Equal(t, `fmt.Printf("", seed, `+"``"+`)`, code)
	require.Equal(t, `a "%x" braw %v`, literals)
}

func TestSecretIdent(t *testing.T) {
	require.Equal(t, "seed", secretIdent("fmt.Printf(, seed)"))
	require.Equal(t, "", secretIdent("fmt.Printf(, len(seed))"))
	require.Equal(t, "", secretIdent("mnemonic.SplitPhrase(x)"))
	require.Equal(t, "", secretIdent("ErrInvalidEntropy, EntropySize"))
	require.Equal(t, "Scalar", secretIdent("k.Scalar"))
}

func TestKeyzero(t *testing.T) {
	src := lines(`
func good(kp *keypair.Keypair) error {
	seed, err := kp.UnencryptedSeed()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(seed)
	return nil
}

func bad(kp *keypair.Keypair) []string {
	entropy := kp.inner.SecretBytes()
	return words(entropy)
}

func (k *Keypair) MarshalBinary() ([]byte, error) {
	return k.inner.MarshalBinary()
}

func load(env *crypto.Envelope, pass []byte) {
	plaintext, _ := crypto.Open(env, pass)
	use(plaintext)
}`)
	findings := scanKeyzero("zero.go", src)
	require.Len(t, findings, 2)
	require.Equal(t, 11, findings[0].line)
	require.Contains(t, findings[0].reason, "bad")
	require.Equal(t, 20, findings[1].line)
	require.Contains(t, findings[1].reason, "load")
}

func TestInsecureRand(t *testing.T) {
	findings := scanInsecureRand("r.go", lines(`
import "math/rand"

func pick() int { return rand.Intn(10) }`))
	require.Len(t, findings, 2)

	findings = scanInsecureRand("r.go", lines(`
import "crypto/rand"

func fill(b []byte) { _, _ = rand.Read(b) }`))
	require.Empty(t, findings)
}

func TestRun_WalksAndExempts(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	leak := "package x\n\nfunc f() { fmt.Printf(\"%x\", seed) }\n"
	write("internal/keys/leak.go", leak)
	write("internal/keys/leak_test.go", leak)
	write("cmd/apkey/phrase.go", leak)
	write("_examples/other/leak.go", leak)
	write("internal/keys/notes.txt", leak)

	report, err := keylogCheck.run(root)
	require.NoError(t, err)
	require.Equal(t, 1, report.filesChecked)
	require.Len(t, report.findings, 1)
	require.Equal(t, "internal/keys/leak.go", filepath.ToSlash(strings.TrimPrefix(report.findings[0].file, root+string(filepath.Separator))))
}

func TestSelectChecks(t *testing.T) {
	checks, err := selectChecks(nil)
	require.NoError(t, err)
	require.Len(t, checks, 3)

	checks, err = selectChecks([]string{"keyzero"})
	require.NoError(t, err)
	require.Equal(t, keyzeroCheck, checks[0])

	_, err = selectChecks([]string{"nope"})
	require.Error(t, err)
}

// The repository itself must pass every check.
func TestRepositoryIsClean(t *testing.T) {
	root := filepath.Join("..", "..")
	for _, c := range allChecks {
		report, err := c.run(root)
		require.NoError(t, err)
		require.Empty(t, report.findings, c.name)
	}
}
