// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// printWarning prints a boxed warning before secret material is revealed.
func printWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, warningStyle.Render(msg))
}

// printField prints one aligned "label value" line.
func printField(w io.Writer, label, value string) {
	_, _ = fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
}
