// Package report renders harness results: colored terminal tables for
// interactive runs, JSON/YAML for machine consumption, and the markdown
// writeup with embedded chart data.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Color helpers shared by all renderers.
var (
	Bold   = color.New(color.Bold)
	Green  = color.New(color.FgGreen)
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
)

// FormatNumber formats an integer with comma separators.
func FormatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(c)
	}
	return result.String()
}

// FormatKB renders a kilobyte figure with a unit, switching to MB above
// a threshold where the KB number stops being readable.
func FormatKB(kb int64) string {
	if kb < 10_000 {
		return fmt.Sprintf("%s KB", FormatNumber(int(kb)))
	}
	return fmt.Sprintf("%.1f MB", float64(kb)/1024)
}

func colorFprintln(w io.Writer, c *color.Color, a ...any) {
	_, _ = c.Fprintln(w, a...)
}

func colorFprintf(w io.Writer, c *color.Color, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}
