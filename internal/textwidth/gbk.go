package textwidth

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StringWidth returns the widest line of s in monospace columns. Han
// characters (lunar labels) count as two columns, measured by their GBK
// encoding; ANSI color sequences count as zero.
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		if width := lineWidth(line); width > maxWidth {
			maxWidth = width
		}
	}
	return maxWidth
}

// PadRight appends ASCII spaces until the rendered width matches target.
func PadRight(s string, width int) string {
	diff := width - StringWidth(s)
	if diff <= 0 {
		return s
	}
	return s + strings.Repeat(" ", diff)
}

const ellipsis = "…"

// Truncate shortens s to at most width columns, ending with an ellipsis
// when cut. Widths too narrow for the ellipsis get a plain cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(s) <= width {
		return s
	}
	if width < lineWidth(ellipsis) {
		return cut(s, width)
	}
	return cut(s, width-lineWidth(ellipsis)) + ellipsis
}

// cut keeps the leading runes of s that fit in limit columns.
func cut(s string, limit int) string {
	var sb strings.Builder
	used := 0
	for _, r := range s {
		w := lineWidth(string(r))
		if used+w > limit {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	return sb.String()
}

func lineWidth(s string) int {
	if s == "" {
		return 0
	}
	clean := stripANSI(s)
	encoder := simplifiedchinese.GBK.NewEncoder()
	encoded, _, err := transform.String(encoder, clean)
	if err != nil {
		return fallbackWidth(clean)
	}
	return len(encoded)
}

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

func fallbackWidth(s string) int {
	width := 0
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		if r <= unicode.MaxASCII {
			width++
		} else {
			width += 2
		}
	}
	return width
}
