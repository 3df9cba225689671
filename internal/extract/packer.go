package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// packedPattern finds Dean Edwards P.A.C.K.E.R. scripts.
var packedPattern = regexp.MustCompile(`eval\(function\(p,a,c,k,e,[dr]\)[\s\S]*?\.split\('\|'\)[^)]*\)\)`)

var packerArgs = regexp.MustCompile(`\}\('([\s\S]*)',\s*(\d+),\s*(\d+),\s*'([\s\S]*?)'\.split\('\|'\)`)

var packerWord = regexp.MustCompile(`\b\w+\b`)

const base62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// unpackAll returns html with every packed script appended in unpacked form.
func unpackAll(html string) string {
	var b strings.Builder
	b.WriteString(html)
	for _, packed := range packedPattern.FindAllString(html, -1) {
		if src, err := unpack(packed); err == nil {
			b.WriteString("\n")
			b.WriteString(src)
		}
	}
	return b.String()
}

// unpack reverses a P.A.C.K.E.R. script: each word in the payload is a
// radix-encoded index into the keyword table.
func unpack(packed string) (string, error) {
	m := packerArgs.FindStringSubmatch(packed)
	if m == nil {
		return "", fmt.Errorf("packer arguments not found")
	}

	payload := strings.NewReplacer(`\\`, `\`, `\'`, `'`).Replace(m[1])
	radix, err := strconv.Atoi(m[2])
	if err != nil || radix < 2 || radix > len(base62) {
		return "", fmt.Errorf("unsupported packer radix %q", m[2])
	}
	count, _ := strconv.Atoi(m[3])
	keywords := strings.Split(m[4], "|")
	if count > 0 && len(keywords) < count {
		padded := make([]string, count)
		copy(padded, keywords)
		keywords = padded
	}

	return packerWord.ReplaceAllStringFunc(payload, func(word string) string {
		i, ok := unbase(word, radix)
		if !ok || i < 0 || i >= len(keywords) || keywords[i] == "" {
			return word
		}
		return keywords[i]
	}), nil
}

// unbase decodes word in the given radix. Words whose value does not fit
// in an int are rejected.
func unbase(word string, radix int) (int, bool) {
	n := 0
	for _, c := range word {
		d := strings.IndexRune(base62[:radix], c)
		if d < 0 {
			return 0, false
		}
		if n > (math.MaxInt-d)/radix {
			return 0, false
		}
		n = n*radix + d
	}
	return n, true
}
