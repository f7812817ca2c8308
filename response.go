package mrq

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Response is a parsed HTTP response. The body is a lazy stream positioned
// at the first body byte: nothing past the header block is read during
// parsing, and the body shares the lifetime of the connection it was read
// from. Callers should drain or Close the body to release the connection.
type Response struct {
	// Status is the response status code, eg. 404.
	Status Status
	// Reason is the reason phrase following the status code. Only the
	// first word is kept; anything after the first space is dropped.
	Reason string
	// Headers maps header keys to values with their original casing.
	// Duplicate keys in the response resolve last-write-wins.
	Headers map[string]string
	// Body streams the remaining, not-yet-read bytes of the response.
	Body io.ReadCloser
}

const statusLineFallbackReason = "Server did not provide a status line"

// ReadResponse parses a response from a byte stream: status line, header
// block, and a lazy body over the remaining bytes.
//
// A missing or garbled status line is recovered locally as a synthetic 503
// rather than failing the parse. A header line without a colon is a hard
// malformed-response error.
func ReadResponse(r io.Reader) (*Response, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	line, err := readLine(br)
	if err != nil && err != io.EOF {
		return nil, classifyTransportError(err)
	}
	status, reason := parseStatusLine(line)

	headers := make(map[string]string)
	for {
		line, err := readLine(br)
		if err != nil && err != io.EOF {
			return nil, classifyTransportError(err)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		idx := strings.IndexByte(trimmed, ':')
		if idx < 0 {
			return nil, NewMalformedResponseError(fmt.Sprintf("header line without separator: %q", trimmed))
		}
		headers[trimmed[:idx]] = strings.TrimSpace(trimmed[idx+1:])
	}

	return &Response{
		Status:  status,
		Reason:  reason,
		Headers: headers,
		Body:    io.NopCloser(br),
	}, nil
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.Status.IsSuccess()
}

// Bytes drains the body and returns it. The connection stays open; call
// Close when done with the response.
func (r *Response) Bytes() ([]byte, error) {
	return io.ReadAll(r.Body)
}

// Text drains the body and returns it as a string.
func (r *Response) Text() (string, error) {
	b, err := r.Bytes()
	return string(b), err
}

// Close releases the connection owned by the body.
func (r *Response) Close() error {
	return r.Body.Close()
}

// contentLength reports the parsed Content-Length header, if present and
// valid.
func (r *Response) contentLength() (int64, bool) {
	v, ok := r.Headers["Content-Length"]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseStatusLine extracts the status code and the first word of the
// reason phrase. Missing tokens or a non-numeric code fall back to a
// synthetic 503.
func parseStatusLine(line string) (Status, string) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), " ")
	if len(parts) >= 3 {
		if code, err := strconv.Atoi(parts[1]); err == nil {
			return Status(code), parts[2]
		}
	}
	return Status(503), statusLineFallbackReason
}

// readLine reads up to and including '\n'. A partial line terminated by
// EOF is returned without error; EOF surfaces only on an empty read.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
