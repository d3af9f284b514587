// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// configdoc generates markdown documentation from Go struct tags.
// Usage: go run ./cmd/configdoc > doc/CONFIG_REFERENCE.md
package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/aplane-algo/apkeys/internal/util"
)

// envVar describes an environment variable read by apkey
type envVar struct {
	Name        string
	Description string
}

var envVars = []envVar{
	{util.DataDirEnvVar, "Data directory (config and wallet file), default `~/.apkey`"},
	{util.DebugEnvVar, "Set to any value to enable debug logging"},
	{"APKEY_PASSPHRASE", "Wallet passphrase for non-interactive use"},
}

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		fmt.Println("Usage: go run ./cmd/configdoc > doc/CONFIG_REFERENCE.md")
		fmt.Println()
		fmt.Println("Generates markdown documentation from Go struct tags.")
		return
	}
	writeReference(os.Stdout)
}

func writeReference(w io.Writer) {
	fmt.Fprintln(w, "# Configuration Reference")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Auto-generated from Go struct tags. Do not edit manually.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "## apkey Configuration")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: `%s` in the data directory (`-d` or `%s`)\n", util.ConfigFileName, util.DataDirEnvVar)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Field | Type | Default | Description |")
	fmt.Fprintln(w, "|-------|------|---------|-------------|")
	writeFields(w, reflect.TypeOf(util.Config{}), "")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Environment Variables")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Variable | Description |")
	fmt.Fprintln(w, "|----------|-------------|")
	for _, env := range envVars {
		fmt.Fprintf(w, "| `%s` | %s |\n", env.Name, env.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "### Passphrase Precedence")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "1. `APKEY_PASSPHRASE` environment variable")
	fmt.Fprintln(w, "2. `passphrase_command` config block")
	fmt.Fprintln(w, "3. Interactive terminal prompt")
}

func writeFields(w io.Writer, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get("yaml")
		if tag == "" {
			tag = field.Tag.Get("json")
		}
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if prefix != "" {
			name = prefix + "." + name
		}

		desc := field.Tag.Get("description")

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			if desc == "" {
				desc = "(nested config block)"
			}
			fmt.Fprintf(w, "| `%s` | object | (none) | %s |\n", name, desc)
			writeFields(w, ft, name)
			continue
		}

		if desc == "" {
			desc = "(no description)"
		}
		def := field.Tag.Get("default")
		switch def {
		case "":
			def = "(none)"
		case `""`:
			def = "(empty string)"
		}
		fmt.Fprintf(w, "| `%s` | %s | `%s` | %s |\n", name, formatType(field.Type), def, desc)
	}
}

func formatType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "[]" + formatType(t.Elem())
	case reflect.Map:
		return "map[" + formatType(t.Key()) + "]" + formatType(t.Elem())
	case reflect.Ptr:
		return "*" + formatType(t.Elem())
	default:
		return t.String()
	}
}
