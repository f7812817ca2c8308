package mrq

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/mrq/logger"
)

const tracerName = "github.com/kbukum/mrq"

// Client sends requests with shared defaults applied. The zero value is
// usable and is what package-level sends go through.
type Client struct {
	config Config
}

// DefaultClient serves Request.Send and the package-level verb helpers.
var DefaultClient = &Client{}

// New creates a client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{config: cfg}, nil
}

// Do sends the request and returns the parsed response, following
// redirects up to the configured hop limit. Each hop opens a fresh
// connection; the returned response's body owns the final connection.
//
// Responses with 4xx or 5xx status codes are returned as-is, not as
// errors. Transport and parse failures anywhere in a redirect chain abort
// the whole chain.
func (c *Client) Do(req Request) (*Response, error) {
	cfg := c.config
	cfg.ApplyDefaults()
	log := c.loggerFor(req)

	cur := req.clone()
	for k, v := range cfg.Headers {
		if _, ok := cur.Headers[k]; !ok {
			cur.Headers[k] = v
		}
	}
	timeout := cfg.resolveTimeout(cur)

	for hop := 0; ; hop++ {
		if cur.HTTPS && cfg.DisableTLS {
			return nil, NewConfigError("https requested but TLS support is disabled")
		}
		resp, err := c.dispatch(&cfg, cur, timeout, log)
		if err != nil {
			return nil, err
		}
		if resp.Status.Band() != BandRedirect {
			return resp, nil
		}
		loc, ok := resp.Headers["Location"]
		if !ok {
			// A redirect without a target is terminal.
			return resp, nil
		}
		_ = resp.Close()
		if hop >= cfg.MaxRedirects {
			return nil, NewRedirectError(cfg.MaxRedirects)
		}
		log.Debug("following redirect", logger.Fields("location", loc, "hop", hop+1))
		cur = redirectTarget(cur, loc)
	}
}

// dispatch performs one hop: open the transport, write the serialized
// request in full, and parse the response. The returned response's body
// owns the connection.
func (c *Client) dispatch(cfg *Config, r Request, timeout time.Duration, log *logger.Logger) (*Response, error) {
	ctx := r.Context()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mrq.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.Method.String()),
			attribute.String("server.address", r.Host),
			attribute.String("url.path", r.Resource),
		))
	defer span.End()

	if r.Headers["X-Request-ID"] == "" {
		r.Headers["X-Request-ID"] = uuid.NewString()
	}
	wire := r.serialize()

	log.Debug("dialing", logger.Fields("host", r.Host, "https", r.HTTPS, "timeout", timeout.String()))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", r.Host)
	if err != nil {
		span.RecordError(err)
		return nil, classifyTransportError(err)
	}
	applyDeadline(ctx, conn, timeout)
	stop := watchContext(ctx, conn)

	if r.HTTPS {
		tlsCfg, err := cfg.TLS.Build(r.Host)
		if err != nil {
			stop()
			_ = conn.Close()
			span.RecordError(err)
			return nil, NewConfigError(err.Error())
		}
		tc := tls.Client(conn, tlsCfg)
		if err := tc.HandshakeContext(ctx); err != nil {
			stop()
			_ = conn.Close()
			span.RecordError(err)
			return nil, classifyTransportError(err)
		}
		conn = tc
	}

	log.Debug("sending request", logger.Fields("method", r.Method.String(), "resource", r.Resource, "bytes", len(wire)))
	if _, err := conn.Write(wire); err != nil {
		stop()
		_ = conn.Close()
		span.RecordError(err)
		return nil, classifyTransportError(err)
	}

	resp, err := ReadResponse(bufio.NewReader(conn))
	if err != nil {
		stop()
		_ = conn.Close()
		span.RecordError(err)
		return nil, err
	}
	if resp.Reason == statusLineFallbackReason {
		log.Warn("response carried no usable status line", logger.Fields("host", r.Host))
	}
	span.SetAttributes(attribute.Int("http.status_code", int(resp.Status)))

	// The body takes ownership of the connection from here on: limit it to
	// Content-Length when the server declared one, then layer the
	// decompressor, which strips the framing headers it consumes.
	var body io.Reader = resp.Body
	if n, ok := resp.contentLength(); ok {
		body = io.LimitReader(body, n)
	}
	resp.Body = &connBody{r: NewDecoder(resp.Headers, body), conn: conn, stop: stop}
	return resp, nil
}

func (c *Client) loggerFor(r Request) *logger.Logger {
	if r.log != nil {
		return r.log
	}
	if c.config.Logger != nil {
		return c.config.Logger
	}
	return logger.Nop()
}

// redirectTarget rewrites the request for a Location header. An absolute
// URL replaces host, resource, and scheme; anything else is treated as an
// absolute path under the original host and scheme. The body is dropped:
// redirects never resubmit one.
func redirectTarget(r Request, location string) Request {
	next := r.clone()
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		next.Host, next.Resource, next.HTTPS = ParseURL(location)
	} else {
		next.Resource = location
	}
	next.Body = nil
	delete(next.Headers, "Content-Length")
	return next
}

// applyDeadline sets the connection deadline from the timeout, tightened
// by the context deadline when that is earlier. For TLS connections this
// runs against the raw socket, so the deadline covers the handshake too.
func applyDeadline(ctx context.Context, conn net.Conn, timeout time.Duration) {
	var d time.Time
	if timeout > 0 {
		d = time.Now().Add(timeout)
	}
	if dl, ok := ctx.Deadline(); ok {
		if d.IsZero() || dl.Before(d) {
			d = dl
		}
	}
	if !d.IsZero() {
		_ = conn.SetDeadline(d)
	}
}

// watchContext aborts blocked reads and writes on the connection when the
// context is canceled, by expiring its deadline. The returned stop function
// releases the watcher; it must be called exactly once, either when dispatch
// fails or when the response body is closed.
func watchContext(ctx context.Context, conn net.Conn) func() {
	if ctx.Done() == nil {
		return func() {}
	}
	released := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.SetDeadline(time.Now())
		case <-released:
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(released) }) }
}

// connBody is a response body that owns its connection and the context
// watcher guarding it.
type connBody struct {
	r    io.Reader
	conn net.Conn
	stop func()
}

// Read forwards to the decoded stream, classifying raw transport failures
// so timeouts and connection drops report uniformly whether or not the
// body was compressed.
func (b *connBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF {
		var e *Error
		var ne net.Error
		if !errors.As(err, &e) && errors.As(err, &ne) {
			err = classifyTransportError(err)
		}
	}
	return n, err
}

func (b *connBody) Close() error {
	if b.stop != nil {
		b.stop()
	}
	return b.conn.Close()
}
