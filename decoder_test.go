package mrq

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

func gzipped(t *testing.T, plaintext string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(plaintext)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.Bytes()
}

func deflated(t *testing.T, plaintext string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(plaintext)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return buf.Bytes()
}

func TestDecoderGzip(t *testing.T) {
	const plaintext = "the quick brown fox jumps over the lazy dog"
	compressed := gzipped(t, plaintext)
	headers := map[string]string{
		"Content-Encoding": "gzip",
		"Content-Length":   "999",
	}

	d := NewDecoder(headers, bytes.NewReader(compressed))

	if _, ok := headers["Content-Encoding"]; ok {
		t.Error("expected Content-Encoding to be stripped")
	}
	if _, ok := headers["Content-Length"]; ok {
		t.Error("expected Content-Length to be stripped")
	}
	out, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != plaintext {
		t.Errorf("expected %q, got %q", plaintext, out)
	}
}

func TestDecoderTransferEncodingFallback(t *testing.T) {
	const plaintext = "fallback payload"
	headers := map[string]string{
		"Transfer-Encoding": "gzip",
		"Content-Length":    "999",
	}

	d := NewDecoder(headers, bytes.NewReader(gzipped(t, plaintext)))

	if _, ok := headers["Transfer-Encoding"]; ok {
		t.Error("expected Transfer-Encoding to be stripped")
	}
	if _, ok := headers["Content-Length"]; ok {
		t.Error("expected Content-Length to be stripped")
	}
	out, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != plaintext {
		t.Errorf("expected %q, got %q", plaintext, out)
	}
}

func TestDecoderDeflate(t *testing.T) {
	const plaintext = "deflated payload"
	headers := map[string]string{"Content-Encoding": "deflate"}

	d := NewDecoder(headers, bytes.NewReader(deflated(t, plaintext)))
	out, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != plaintext {
		t.Errorf("expected %q, got %q", plaintext, out)
	}
}

func TestDecoderIdentityPassthrough(t *testing.T) {
	headers := map[string]string{"Content-Length": "4"}
	d := NewDecoder(headers, strings.NewReader("body"))

	if got := headers["Content-Length"]; got != "4" {
		t.Errorf("expected Content-Length untouched, got %q", got)
	}
	out, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "body" {
		t.Errorf("expected byte-identical passthrough, got %q", out)
	}
}

func TestDecoderUnknownEncodingPassesThrough(t *testing.T) {
	headers := map[string]string{"Content-Encoding": "br"}
	d := NewDecoder(headers, strings.NewReader("raw"))

	if got := headers["Content-Encoding"]; got != "br" {
		t.Errorf("expected unrecognized encoding header kept, got %q", got)
	}
	out, _ := io.ReadAll(d)
	if string(out) != "raw" {
		t.Errorf("expected passthrough, got %q", out)
	}
}

func TestDecoderMatchIsCaseSensitive(t *testing.T) {
	headers := map[string]string{"Content-Encoding": "GZIP"}
	d := NewDecoder(headers, strings.NewReader("raw"))

	if _, ok := headers["Content-Encoding"]; !ok {
		t.Error("expected non-matching case to leave the header alone")
	}
	out, _ := io.ReadAll(d)
	if string(out) != "raw" {
		t.Errorf("expected identity treatment, got %q", out)
	}
}

func TestDecoderValueIsTrimmed(t *testing.T) {
	const plaintext = "trimmed"
	headers := map[string]string{"Content-Encoding": "  gzip  "}
	d := NewDecoder(headers, bytes.NewReader(gzipped(t, plaintext)))
	out, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != plaintext {
		t.Errorf("expected %q, got %q", plaintext, out)
	}
}

func TestDecoderMalformedDataFailsOnRead(t *testing.T) {
	headers := map[string]string{"Content-Encoding": "gzip"}
	// Construction must not touch the source; the failure surfaces on read.
	d := NewDecoder(headers, strings.NewReader("this is not gzip data"))

	_, err := io.ReadAll(d)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if !IsDecode(err) {
		t.Errorf("expected decode classification, got %v", err)
	}
}
