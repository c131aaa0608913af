//go:build ignore

// This program generates mirroring_table.go from the Unicode Character
// Database. Run it with go generate.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"log"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
)

const (
	unicodeVersion = "17.0.0"
	source         = "https://www.unicode.org/Public/" + unicodeVersion + "/ucd/BidiMirroring.txt"
)

func main() {
	resp, err := http.Get(source)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("fetching %s: %s", source, resp.Status)
	}
	var pairs [][2]rune
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		from, to, ok := strings.Cut(line, ";")
		if !ok {
			continue
		}
		a, err := strconv.ParseUint(strings.TrimSpace(from), 16, 32)
		if err != nil {
			log.Fatalf("malformed line %q: %v", scanner.Text(), err)
		}
		b, err := strconv.ParseUint(strings.TrimSpace(to), 16, 32)
		if err != nil {
			log.Fatalf("malformed line %q: %v", scanner.Text(), err)
		}
		pairs = append(pairs, [2]rune{rune(a), rune(b)})
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
	slices.SortFunc(pairs, func(x, y [2]rune) int { return int(x[0] - y[0]) })

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by gen_mirroring.go from BidiMirroring.txt (Unicode %s). DO NOT EDIT.\n\n", unicodeVersion)
	buf.WriteString("package harfbuzz\n\n")
	buf.WriteString("// bidiMirrorPairs holds the Bidi_Mirroring_Glyph property, sorted by code point.\n")
	buf.WriteString("var bidiMirrorPairs = [...][2]rune{\n")
	for i, p := range pairs {
		fmt.Fprintf(&buf, "{0x%04X, 0x%04X},", p[0], p[1])
		if i%4 == 3 {
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("\n}\n")
	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("mirroring_table.go", src, 0o644); err != nil {
		log.Fatal(err)
	}
}
