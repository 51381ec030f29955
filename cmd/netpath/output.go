// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette.
var (
	colorRoute   = lipgloss.Color("#2CD7C7") // found paths
	colorHeading = lipgloss.Color("#20B9B4")
	colorMuted   = lipgloss.Color("#2C4A54")
	colorError   = lipgloss.Color("#E74C3C")
)

// styles provides the pre-configured lipgloss styles for command output.
var styles = struct {
	Heading lipgloss.Style
	Route   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}{
	Heading: lipgloss.NewStyle().Bold(true).Foreground(colorHeading),
	Route:   lipgloss.NewStyle().Foreground(colorRoute),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Error:   lipgloss.NewStyle().Foreground(colorError),
}

// printHeading prints a bold section heading.
func printHeading(format string, args ...any) {
	fmt.Println(styles.Heading.Render(fmt.Sprintf(format, args...)))
}

// printRoute prints one rendered path.
func printRoute(rendered string) {
	fmt.Println("  " + styles.Route.Render(rendered))
}

// printMuted prints secondary information.
func printMuted(format string, args ...any) {
	fmt.Println(styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// printError prints an error line.
func printError(err error) {
	fmt.Println(styles.Error.Render("error: " + err.Error()))
}
