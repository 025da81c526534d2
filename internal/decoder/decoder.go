// Package decoder converts raw response bytes to text incrementally.
//
// Decoding is chunk-oriented: a multi-byte sequence may be split across
// two reads, so the trailing undecodable bytes of a chunk are carried
// over to the next call instead of being reported as an error. Input
// that is genuinely invalid in the negotiated encoding is substituted
// with U+FFFD rather than failing the stream.
package decoder

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ResolveEncoding returns the encoding a response body declares through
// its Content-Type header. When no charset parameter is present the
// WHATWG fallback applies, which decodes any byte sequence and matches
// the latin-1 default HTTP clients assume for text/* bodies.
func ResolveEncoding(contentType string) encoding.Encoding {
	e, _, _ := charset.DetermineEncoding(nil, contentType)
	return e
}

// A Decoder incrementally decodes byte chunks to text. It holds partial
// multi-byte sequences between calls and must be rebuilt or Reset
// whenever the source stream restarts.
type Decoder struct {
	tr      transform.Transformer
	pending []byte
}

// New creates a Decoder for the given encoding.
func New(e encoding.Encoding) *Decoder {
	return &Decoder{tr: e.NewDecoder()}
}

// Decode converts the next chunk of the stream to text. Bytes that may
// begin a multi-byte sequence completed by a future chunk are retained;
// bytes that cannot be decoded at all are replaced with U+FFFD.
func (d *Decoder) Decode(p []byte) string {
	src := p
	if len(d.pending) > 0 {
		src = append(d.pending, p...)
		d.pending = nil
	}

	var sb strings.Builder
	buf := make([]byte, (len(src)+1)*utf8.UTFMax)

	for len(src) > 0 {
		nDst, nSrc, err := d.tr.Transform(buf, src, false)
		sb.Write(buf[:nDst])
		src = src[nSrc:]

		switch err {
		case nil, transform.ErrShortDst:
			// Keep going; a short destination only means buf filled up.
		case transform.ErrShortSrc:
			d.pending = append(d.pending, src...)
			return sb.String()
		default:
			// The x/text decoders substitute malformed input themselves,
			// so any other error means the byte is undecodable. Replace
			// it and move on.
			sb.WriteRune(utf8.RuneError)
			src = src[1:]
		}
	}

	return sb.String()
}

// Reset discards all partial decoder state.
func (d *Decoder) Reset() {
	d.tr.Reset()
	d.pending = nil
}
