package mrq

// Get creates a GET request for the given URL.
func Get(url string) Request {
	return NewRequest(MethodGet, url)
}

// Head creates a HEAD request for the given URL.
func Head(url string) Request {
	return NewRequest(MethodHead, url)
}

// Post creates a POST request for the given URL.
func Post(url string) Request {
	return NewRequest(MethodPost, url)
}

// Put creates a PUT request for the given URL.
func Put(url string) Request {
	return NewRequest(MethodPut, url)
}

// Delete creates a DELETE request for the given URL.
func Delete(url string) Request {
	return NewRequest(MethodDelete, url)
}

// Connect creates a CONNECT request for the given URL.
func Connect(url string) Request {
	return NewRequest(MethodConnect, url)
}

// Options creates an OPTIONS request for the given URL.
func Options(url string) Request {
	return NewRequest(MethodOptions, url)
}

// Trace creates a TRACE request for the given URL.
func Trace(url string) Request {
	return NewRequest(MethodTrace, url)
}

// Patch creates a PATCH request for the given URL.
func Patch(url string) Request {
	return NewRequest(MethodPatch, url)
}

// CreateRequest creates a request with an arbitrary method, including
// ones built with CustomMethod.
func CreateRequest(method Method, url string) Request {
	return NewRequest(method, url)
}
