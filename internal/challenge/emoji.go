package challenge

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// NormalizeEmoji reduces input to its last grapheme cluster when that cluster is an emoji.
// Anything else yields fallback.
func NormalizeEmoji(input, fallback string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fallback
	}

	var last string
	g := uniseg.NewGraphemes(trimmed)
	for g.Next() {
		last = g.Str()
	}

	if isEmoji(last) {
		return last
	}
	return fallback
}

func isEmoji(cluster string) bool {
	if cluster == "" {
		return false
	}
	// Variation selector 16 requests emoji presentation for otherwise textual symbols.
	if strings.ContainsRune(cluster, '\uFE0F') {
		return true
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2300 && r <= 0x23FF:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	case r == 0x00A9 || r == 0x00AE || r == 0x203C || r == 0x2049 || r == 0x2122 || r == 0x3030 || r == 0x303D:
		return true
	}
	return false
}
