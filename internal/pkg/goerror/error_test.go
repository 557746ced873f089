package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"server", NewServer(errors.New("boom")), http.StatusInternalServerError},
		{"not found", NewBusiness("User not found", CodeNotFound), http.StatusNotFound},
		{"unauthorized", NewBusiness("Invalid or expired OTP", CodeUnauthorized), http.StatusUnauthorized},
		{"conflict", NewBusiness("busy", CodeConflict), http.StatusConflict},
		{"invalid input", NewInvalidInput(errors.New("email is required")), http.StatusUnprocessableEntity},
		{"invalid format", NewInvalidFormat(), http.StatusBadRequest},
		{"upstream 429", NewUpstream("slow down", http.StatusTooManyRequests), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tt.err, &gerr) {
				t.Fatalf("expected *Error, got %T", tt.err)
			}
			if got := gerr.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewUpstreamType(t *testing.T) {
	var gerr *Error

	if !errors.As(NewUpstream("User not found", http.StatusNotFound), &gerr) {
		t.Fatal("expected *Error")
	}
	if gerr.Type() != TypeBusiness || gerr.Code() != CodeNotFound {
		t.Errorf("4xx upstream = %s/%s, want business/not found", gerr.Type(), gerr.Code())
	}

	if !errors.As(NewUpstream("bad gateway", http.StatusBadGateway), &gerr) {
		t.Fatal("expected *Error")
	}
	if gerr.Type() != TypeServer || gerr.Code() != CodeInternal {
		t.Errorf("5xx upstream = %s/%s, want server/internal", gerr.Type(), gerr.Code())
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "email", "email is required")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatal("expected *Error")
	}
	if got := gerr.Fields()["email"]; got != "email is required" {
		t.Errorf("Fields()[email] = %q", got)
	}

	if !errors.As(NewInvalidInput(nil, "odd"), &gerr) || gerr.Code() != CodeInvalidFormat {
		t.Error("odd key/value count should produce invalid format")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{"nil", nil, "Something went wrong", "Something went wrong"},
		{"business", NewBusiness("User not found", CodeNotFound), "x", "User not found"},
		{"server keeps generic msg", NewServer(errors.New("dial tcp")), "x", "Internal server error"},
		{"plain", errors.New("connection refused"), "x", "connection refused"},
		{"empty plain", errors.New(""), "Verification failed", "Verification failed"},
		{"empty structured", &Error{errType: TypeBusiness}, "Verification failed", "Verification failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err, tt.fallback); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
