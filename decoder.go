package mrq

import (
	"errors"
	"io"
	"net"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// encoding tags the decoder variant chosen for a response body.
type encoding int

const (
	encodingIdentity encoding = iota
	encodingGzip
	encodingDeflate
)

// Decoder is a streaming wrapper over a response body that transparently
// decompresses gzip and deflate content. The variant is selected exactly
// once, at construction, before any byte is read from the wrapped source.
type Decoder struct {
	enc encoding
	src io.Reader
	r   io.Reader
}

// NewDecoder selects a decoder for the body by inspecting the
// Content-Encoding header, falling back to Transfer-Encoding. On a
// case-sensitive match of "gzip" or "deflate" the matched header and
// Content-Length are removed from headers (length is meaningless after
// decompression) and the body is wrapped in the corresponding
// decompressor. Anything else is an identity pass-through.
func NewDecoder(headers map[string]string, src io.Reader) *Decoder {
	key := "Content-Encoding"
	val, ok := headers[key]
	if !ok {
		key = "Transfer-Encoding"
		val = headers[key]
	}
	switch strings.TrimSpace(val) {
	case "gzip":
		delete(headers, key)
		delete(headers, "Content-Length")
		return &Decoder{enc: encodingGzip, src: src}
	case "deflate":
		delete(headers, key)
		delete(headers, "Content-Length")
		return &Decoder{enc: encodingDeflate, src: src}
	default:
		return &Decoder{enc: encodingIdentity, src: src, r: src}
	}
}

// Read forwards to the underlying decompressor or source. The
// decompressor is built on the first read so that malformed compressed
// data surfaces as a read error at the point of failure, not at
// construction.
func (d *Decoder) Read(p []byte) (int, error) {
	if d.r == nil {
		var err error
		switch d.enc {
		case encodingGzip:
			d.r, err = gzip.NewReader(d.src)
		case encodingDeflate:
			d.r, err = zlib.NewReader(d.src)
		}
		if err != nil {
			d.r = errReader{NewDecodeError(err)}
		}
	}
	n, err := d.r.Read(p)
	if err != nil && err != io.EOF && d.enc != encodingIdentity {
		// A transport failure mid-body is still a transport error and is
		// left raw for the caller to classify; only decompressor
		// rejections become decode errors.
		var e *Error
		var ne net.Error
		if !errors.As(err, &e) && !errors.As(err, &ne) {
			err = NewDecodeError(err)
		}
	}
	return n, err
}

// errReader replays a construction-time decode failure on every read.
type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
