package mrq

import "testing"

func TestStatusBand(t *testing.T) {
	tests := []struct {
		code Status
		band Band
	}{
		{100, BandInformational},
		{101, BandInformational},
		{200, BandSuccess},
		{204, BandSuccess},
		{301, BandRedirect},
		{308, BandRedirect},
		{404, BandClientError},
		{418, BandClientError},
		{500, BandServerError},
		{503, BandServerError},
		// Codes outside 100-599 fall into the server-error band.
		{42, BandServerError},
		{600, BandServerError},
		{0, BandServerError},
	}

	for _, tt := range tests {
		if got := tt.code.Band(); got != tt.band {
			t.Errorf("Status(%d).Band(): expected %s, got %s", tt.code, tt.band, got)
		}
	}
}

func TestStatusIsSuccess(t *testing.T) {
	if !Status(200).IsSuccess() {
		t.Error("expected 200 to be a success")
	}
	if Status(418).IsSuccess() {
		t.Error("expected 418 not to be a success")
	}
	if Status(301).IsSuccess() {
		t.Error("expected 301 not to be a success")
	}
}

func TestStatusString(t *testing.T) {
	if got := Status(404).String(); got != "404" {
		t.Errorf("expected %q, got %q", "404", got)
	}
}

func TestBandString(t *testing.T) {
	if got := BandClientError.String(); got != "client_error" {
		t.Errorf("expected %q, got %q", "client_error", got)
	}
	if got := Band(99).String(); got != "unknown" {
		t.Errorf("expected %q, got %q", "unknown", got)
	}
}
