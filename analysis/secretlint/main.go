// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// secretlint is a line-oriented static checker for secret handling.
//
// Checks:
//
//	keylog        format verbs or log calls next to secret-named values
//	keyzero       functions that obtain secret bytes but never zero anything
//	insecurerand  math/rand in key handling packages
//
// Usage:
//
//	secretlint [--check keylog,keyzero,insecurerand] <repo-root>
//
// Exits 1 when any check reports a finding.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	var selected []string
	exitCode := 0

	cmd := &cobra.Command{
		Use:          "secretlint <repo-root>",
		Short:        "Check Go sources for leaked, unzeroed or weakly random key material",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks, err := selectChecks(selected)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range checks {
				report, err := c.run(args[0])
				if err != nil {
					return err
				}
				report.print(out)
				if len(report.findings) > 0 {
					exitCode = 1
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&selected, "check", nil, "checks to run (default all): "+strings.Join(checkNames(), ","))

	if err := cmd.Execute(); err != nil {
		return 2
	}
	return exitCode
}

func selectChecks(names []string) ([]*check, error) {
	if len(names) == 0 {
		return allChecks, nil
	}
	var out []*check
	for _, name := range names {
		c := findCheck(name)
		if c == nil {
			return nil, fmt.Errorf("unknown check %q (available: %s)", name, strings.Join(checkNames(), ", "))
		}
		out = append(out, c)
	}
	return out, nil
}
