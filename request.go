package mrq

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kbukum/mrq/logger"
)

// Request is an outbound HTTP request under construction. Build one with
// NewRequest (or a verb helper such as Get), chain With* calls to add
// headers, a body, or a timeout, and finish with Send.
//
// The builder has value semantics: every With* call takes the request by
// value and returns the updated value, so configuration is fixed before
// transmission and intermediate values are discarded.
type Request struct {
	// Method is the HTTP method placed on the request line.
	Method Method
	// Host is the target authority, always with an explicit port.
	Host string
	// Resource is the path plus query, never empty.
	Resource string
	// Headers maps header keys to values. Keys are unique and written to
	// the wire exactly as given; no case normalization is applied.
	Headers map[string]string
	// Body is the raw request payload. Nil means no body; a non-nil empty
	// slice is an empty body with Content-Length: 0.
	Body []byte
	// Timeout is the per-request connect/read/write timeout. Zero means
	// unset, deferring to the client config and the MRQ_TIMEOUT
	// environment default.
	Timeout time.Duration
	// HTTPS is true when the request URL used the https scheme.
	HTTPS bool

	ctx context.Context
	log *logger.Logger
}

// NewRequest creates a request for the given method and URL. Only the
// request data is assembled here; nothing is sent until Send.
func NewRequest(method Method, url string) Request {
	host, resource, https := ParseURL(url)
	return Request{
		Method:   method,
		Host:     host,
		Resource: resource,
		Headers:  make(map[string]string),
		HTTPS:    https,
	}
}

// WithHeader adds a header, overwriting any existing value for the key.
// The key and value are written to the wire verbatim; the caller must
// supply valid token and value text.
func (r Request) WithHeader(key, value string) Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// WithHeaders merges the given headers into the request, overwriting on
// key collision.
func (r Request) WithHeaders(headers map[string]string) Request {
	for k, v := range headers {
		r = r.WithHeader(k, v)
	}
	return r
}

// WithBody sets the request body and sets the Content-Length header to the
// body's byte length. The wire format relies on that header, so it is
// always written, overwriting any caller-supplied value.
func (r Request) WithBody(body string) Request {
	r.Body = []byte(body)
	return r.WithHeader("Content-Length", strconv.Itoa(len(body)))
}

// WithTimeout sets an explicit timeout, overriding the client config and
// the MRQ_TIMEOUT environment default.
func (r Request) WithTimeout(d time.Duration) Request {
	r.Timeout = d
	return r
}

// WithContext attaches a context to the request. Its deadline tightens the
// connection deadline, and canceling it aborts the dial, the TLS handshake,
// and any in-flight read or write, including body reads after Send returns.
func (r Request) WithContext(ctx context.Context) Request {
	r.ctx = ctx
	return r
}

// WithLogger attaches a logger used for dispatch-time debug logging.
func (r Request) WithLogger(l *logger.Logger) Request {
	r.log = l
	return r
}

// Send transmits the request through the default client and returns the
// parsed response. The request value must not be reused after Send; a
// redirect retry works on an internal clone.
func (r Request) Send() (*Response, error) {
	return DefaultClient.Do(r)
}

// Context returns the request's context, defaulting to Background.
func (r Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// serialize renders the request in wire format: request line, Host header,
// remaining headers in map iteration order, a blank line, then the body.
func (r Request) serialize() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s HTTP/1.1\r\nHost: %s\r\n", r.Method, r.Resource, r.Host)
	for k, v := range r.Headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	buf.WriteString("\r\n")
	if r.Body != nil {
		buf.Write(r.Body)
	}
	return buf.Bytes()
}

// clone returns a deep copy of the request so a redirect retry cannot
// observe mutations made while serializing or re-targeting.
func (r Request) clone() Request {
	c := r
	c.Headers = make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		c.Headers[k] = v
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return c
}
