package http

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// charsetFunc resolves the charset parameter of a request to a decoder
// producing UTF-8. A nil decoder means the body is already UTF-8.
type charsetFunc func(charset string) (*encoding.Decoder, error)

// utf8Charset accepts only UTF-8 bodies.
func utf8Charset(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, charset)
	}
}

// unicodeCharset accepts the UTF-8, UTF-16 and UTF-32 families. Unmarked
// UTF-16 and UTF-32 honor a byte order mark and default to little endian.
func unicodeCharset(charset string) (*encoding.Decoder, error) {
	var enc encoding.Encoding

	switch strings.ToLower(charset) {
	case "", "utf-8":
		return nil, nil
	case "utf-16":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16le":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be":
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "utf-32":
		enc = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)
	case "utf-32le":
		enc = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case "utf-32be":
		enc = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, charset)
	}

	return enc.NewDecoder(), nil
}

// toUTF8 transcodes raw with decoder, when set, and drops a leading byte
// order mark.
func toUTF8(raw []byte, decoder *encoding.Decoder) ([]byte, error) {
	if decoder != nil {
		decoded, err := decoder.Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEncodedBody, err)
		}
		raw = decoded
	}

	return bytes.TrimPrefix(raw, utf8BOM), nil
}
