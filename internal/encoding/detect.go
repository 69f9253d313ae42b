// Package encoding normalizes uploaded statement files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decoders maps chardet charset names to the decoder that reads them.
var decoders = map[string]encoding.Encoding{
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// Decoded is a UTF-8 view of an input together with the charset it was read as.
type Decoded struct {
	io.Reader
	Charset string
}

// NewUTF8Reader sniffs the start of r and returns a reader producing UTF-8.
// A UTF-8 BOM is dropped, UTF-16 is recognized by its BOM, valid UTF-8 passes
// through, and anything else is classified by chardet. Unknown charsets are
// read as Windows-1252, the usual encoding of spreadsheet CSV exports.
func NewUTF8Reader(r io.Reader) (*Decoded, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, utf8BOM):
		_, _ = br.Discard(len(utf8BOM))
		return &Decoded{Reader: br, Charset: "UTF-8"}, nil
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return decode(br, "UTF-16LE"), nil
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return decode(br, "UTF-16BE"), nil
	case utf8.Valid(head):
		return &Decoded{Reader: br, Charset: "UTF-8"}, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		if result.Charset == "UTF-8" {
			return &Decoded{Reader: br, Charset: "UTF-8"}, nil
		}

		if _, ok := decoders[result.Charset]; ok {
			return decode(br, result.Charset), nil
		}
	}

	return decode(br, "windows-1252"), nil
}

func decode(r io.Reader, charset string) *Decoded {
	return &Decoded{
		Reader:  transform.NewReader(r, decoders[charset].NewDecoder()),
		Charset: charset,
	}
}
