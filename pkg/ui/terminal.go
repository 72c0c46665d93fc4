// Package ui prints coloured status lines for the command line tool
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Banner is printed by commands that talk to a human
const Banner = `
  ┌──────────────────────────────────────────────┐
  │  EUR-LEX SCRAPER  ·  paginated search export │
  └──────────────────────────────────────────────┘
`

var (
	mu        sync.Mutex
	out       io.Writer = os.Stderr
	quietMode bool
	colorMode bool = true
)

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		mu.Lock()
		enabled := colorMode
		mu.Unlock()
		if !enabled {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// SetOutput redirects status lines. Stdout is left to command results,
// so the default is stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetQuietMode suppresses everything except errors
func SetQuietMode(quiet bool) {
	mu.Lock()
	defer mu.Unlock()
	quietMode = quiet
}

// SetColor enables or disables ANSI colours
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorMode = enabled
}

func printLine(always bool, s string) {
	mu.Lock()
	w, quiet := out, quietMode
	mu.Unlock()
	if quiet && !always {
		return
	}
	fmt.Fprintln(w, s)
}

// PrintBanner prints the banner with color
func PrintBanner() {
	printLine(false, Cyan(Banner))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		printLine(true, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		printLine(true, Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	printLine(false, Green(msg))
}

// PrintInfo prints a label and value
func PrintInfo(label string, value string) {
	printLine(false, fmt.Sprintf("%s: %s", Cyan(label), Yellow(value)))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		printLine(false, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		printLine(false, Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	printLine(false, Magenta(msg))
}
