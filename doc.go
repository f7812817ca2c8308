// Package mrq is a minimal synchronous HTTP/1.1 client that speaks the
// wire protocol itself over plain TCP or TLS connections. It is aimed at
// library consumers who need to issue requests without pulling in a full
// client stack: no connection pooling, no HTTP/2, no cookie jars, no
// automatic retries.
//
// Requests are built with a value-chaining builder and sent with a single
// blocking call:
//
//	resp, err := mrq.Get("http://example.com/users/123").
//	    WithHeader("Accept", "application/json").
//	    WithTimeout(10 * time.Second).
//	    Send()
//	if err != nil {
//	    return err
//	}
//	defer resp.Close()
//	body, err := resp.Text()
//
// The response body is a lazy stream over the same connection the headers
// were read from; nothing past the header block is read until the caller
// reads the body. Gzip and deflate response bodies are decompressed
// transparently.
//
// # Configured clients
//
// A Client applies shared defaults (timeout, TLS settings, headers) to
// every request it sends:
//
//	client, err := mrq.New(mrq.Config{
//	    Timeout: 30 * time.Second,
//	    TLS:     &mrq.TLSConfig{CAFile: "ca.pem"},
//	})
//	resp, err := client.Do(mrq.Post("https://api.example.com/jobs").WithBody(payload))
//
// When a request carries no explicit timeout and the client config has
// none either, the MRQ_TIMEOUT environment variable (whole seconds) is
// used as a final default.
package mrq
