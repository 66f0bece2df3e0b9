package cv

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ETag returns the quoted hex BLAKE2b-256 digest of b.
func ETag(b []byte) string {
	sum := blake2b.Sum256(b)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// Filename is the download name for a rendered CV.
func Filename(fullName, lang string) string {
	return fmt.Sprintf("CV-%s-%s.pdf", fullName, lang)
}

// ContentDisposition builds an inline disposition carrying an ASCII filename
// and the RFC 5987 UTF-8 variant.
func ContentDisposition(fullName, lang string) string {
	name := Filename(fullName, lang)
	return fmt.Sprintf(`inline; filename="%s"; filename*=UTF-8''%s`, asciiFilename(name), encodeRFC5987(name))
}

// asciiFilename strips diacritics and replaces what is left outside printable
// ASCII, plus quotes and backslashes, with '_'.
func asciiFilename(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, folded)
}

func encodeRFC5987(s string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
