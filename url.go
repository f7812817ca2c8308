package mrq

import "strings"

// ParseURL splits a URL into the authority (always with an explicit port),
// the resource (path plus query, never empty), and whether the scheme is
// https.
//
// The split is a single character scan counting '/' occurrences: the first
// two slashes are the scheme separator, characters up to the third slash
// form the authority, and everything from the third slash on is the
// resource. Input without "//" yields an empty authority, which surfaces
// as a connection error at dial time rather than a parse error here.
func ParseURL(rawurl string) (host, resource string, https bool) {
	var first, second strings.Builder
	slashes := 0
	for _, c := range rawurl {
		if c == '/' {
			slashes++
		} else if slashes == 2 {
			first.WriteRune(c)
		}
		if slashes >= 3 {
			second.WriteRune(c)
		}
	}
	host = first.String()
	resource = second.String()
	if resource == "" {
		resource = "/"
	}
	https = strings.HasPrefix(rawurl, "https://")
	if !strings.Contains(host, ":") {
		if https {
			host += ":443"
		} else {
			host += ":80"
		}
	}
	return host, resource, https
}

// hostNoPort strips the port from an authority for use as a TLS server
// name. Bracketed IPv6 literals lose their brackets.
func hostNoPort(host string) string {
	if i := strings.LastIndex(host, ":"); i != -1 {
		if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
			return strings.Trim(host, "[]")
		}
		return host[:i]
	}
	return host
}
