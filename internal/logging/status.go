// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Status lines printed by the CLI. Color is disabled automatically when w is
// not a terminal.
var (
	okMark   = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnMark = color.New(color.FgYellow, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Success prints a green "ok" status line to w.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", okMark("ok"), fmt.Sprintf(format, args...))
}

// Warning prints a yellow "warning" status line to w.
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warnMark("warning:"), fmt.Sprintf(format, args...))
}

// Failure prints a red "error" status line to w.
func Failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", failMark("error:"), fmt.Sprintf(format, args...))
}
