package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestETag(t *testing.T) {
	tag := ETag([]byte("%PDF-1.3"))

	assert.Len(t, tag, 66)
	assert.Equal(t, byte('"'), tag[0])
	assert.Equal(t, byte('"'), tag[len(tag)-1])
	assert.Equal(t, tag, ETag([]byte("%PDF-1.3")))
	assert.NotEqual(t, tag, ETag([]byte("%PDF-1.4")))
}

func TestContentDisposition(t *testing.T) {
	got := ContentDisposition("Ing. Jana Nováková", "cs")

	assert.Equal(t,
		`inline; filename="CV-Ing. Jana Novakova-cs.pdf"; filename*=UTF-8''CV-Ing.%20Jana%20Nov%C3%A1kov%C3%A1-cs.pdf`,
		got)
}

func TestAsciiFilename(t *testing.T) {
	assert.Equal(t, "Zlutoucky kun", asciiFilename("Žluťoučký kůň"))
	assert.Equal(t, "a_b_c", asciiFilename(`a"b\c`))
	assert.Equal(t, "____", asciiFilename("日本語€"))
}
