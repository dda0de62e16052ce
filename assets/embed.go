// Package assets embeds the default terminal dictionary.
package assets

import (
	"bufio"
	_ "embed"
	"io"
	"strings"
)

//go:embed words.txt
var wordsTxt string

// Words returns a reader over the embedded dictionary.
func Words() io.Reader { return strings.NewReader(wordsTxt) }

// ReadLines returns the non-blank, non-comment lines of r, trimmed.
// Casing is left to the caller.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
