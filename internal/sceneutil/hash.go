package sceneutil

import (
	"strconv"
	"unicode/utf16"
)

// DefaultHashLength is the number of leading runes sampled by ContentHash.
const DefaultHashLength = 20

// ContentHash fingerprints the first length runes of text with a 32-bit
// rolling hash (hash*31 + unit over UTF-16 code units) and renders it as
// signed hexadecimal, so the values agree with hashes already stored by the
// browser editor. Empty text hashes to "".
func ContentHash(text string, length int) string {
	if text == "" {
		return ""
	}
	if length <= 0 {
		length = DefaultHashLength
	}
	runes := []rune(text)
	if len(runes) > length {
		runes = runes[:length]
	}

	var hash int32
	for _, unit := range utf16.Encode(runes) {
		hash = (hash << 5) - hash + int32(unit)
	}
	return strconv.FormatInt(int64(hash), 16)
}
