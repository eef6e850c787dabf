// Package encoding normalizes uploaded spreadsheets to UTF-8.
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

// sniffLen is how much of the input is inspected before decoding.
const sniffLen = 4096

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

var boms = []struct {
	prefix  []byte
	decoder encoding.Encoding
}{
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// charsets maps chardet results onto decoders. Spreadsheet tools on Windows
// save as Windows-1252, which chardet usually reports as ISO-8859-1.
var charsets = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8. A byte order
// mark wins, then valid UTF-8 passes through, then chardet guesses, and
// anything left is read as Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	for _, bom := range boms {
		if bytes.HasPrefix(head, bom.prefix) {
			return transform.NewReader(br, bom.decoder.NewDecoder()), nil
		}
	}

	if utf8.Valid(trimPartialRune(head)) {
		return br, nil
	}

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if res.Charset == "UTF-8" {
			return br, nil
		}

		if enc, ok := charsets[res.Charset]; ok {
			return transform.NewReader(br, enc.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of head.
func trimPartialRune(head []byte) []byte {
	for i := len(head) - 1; i >= 0 && i >= len(head)-utf8.UTFMax; i-- {
		if utf8.RuneStart(head[i]) {
			if !utf8.FullRune(head[i:]) {
				return head[:i]
			}

			break
		}
	}

	return head
}
