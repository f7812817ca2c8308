package mrq

import "strconv"

// Band classifies a status code into one of the five HTTP status classes.
type Band int

const (
	// BandInformational covers 1xx status codes.
	BandInformational Band = iota + 1
	// BandSuccess covers 2xx status codes.
	BandSuccess
	// BandRedirect covers 3xx status codes.
	BandRedirect
	// BandClientError covers 4xx status codes.
	BandClientError
	// BandServerError covers 5xx status codes, and by fallback any code
	// outside the 100-599 range.
	BandServerError
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandInformational:
		return "informational"
	case BandSuccess:
		return "success"
	case BandRedirect:
		return "redirect"
	case BandClientError:
		return "client_error"
	case BandServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Status is a response status code, eg. 404.
type Status int

// Band returns the status class of the code. Classification is purely
// numeric; codes outside 100-599 fall into BandServerError.
func (s Status) Band() Band {
	switch {
	case s >= 100 && s < 200:
		return BandInformational
	case s >= 200 && s < 300:
		return BandSuccess
	case s >= 300 && s < 400:
		return BandRedirect
	case s >= 400 && s < 500:
		return BandClientError
	default:
		return BandServerError
	}
}

// IsSuccess returns true if the status code is 2xx.
func (s Status) IsSuccess() bool {
	return s.Band() == BandSuccess
}

// String returns the numeric code as text.
func (s Status) String() string {
	return strconv.Itoa(int(s))
}
