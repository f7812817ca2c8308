package mrq

// Method is an HTTP request method. The predefined constants cover the
// standard verbs; CustomMethod produces any other verb.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

// CustomMethod returns a method with a caller-supplied verb. The verb is
// embedded in the request line as-is, without validation against the HTTP
// token grammar; a malformed verb produces a malformed request.
func CustomMethod(verb string) Method {
	return Method(verb)
}

// String returns the verb as it appears on the request line.
func (m Method) String() string {
	return string(m)
}
