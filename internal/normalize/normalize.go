// Package normalize cleans raw OCR output into the line-oriented view the
// field extractors work over.
package normalize

import "strings"

// Normalized is the cleaned view of one receipt's recognized text.
type Normalized struct {
	Lower string
	Lines []string
}

// Text splits raw OCR output into trimmed, non-empty lines and a lowercase
// full-text view for keyword search. Empty input yields an empty line slice;
// downstream components treat that as "no data", never as a failure.
func Text(raw string) Normalized {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = cleanLine(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return Normalized{
		Lines: lines,
		Lower: strings.ToLower(raw),
	}
}

// cleanLine collapses whitespace and strips common OCR artifacts.
func cleanLine(line string) string {
	line = strings.ReplaceAll(line, "|", " ")
	line = strings.ReplaceAll(line, "\\", " ")
	line = strings.Join(strings.Fields(line), " ")
	return strings.TrimSpace(line)
}
