package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
	"github.com/shandysiswandi/postlearn/internal/pkg/instrument"
	"github.com/shandysiswandi/postlearn/internal/pkg/validator"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestAPI(t *testing.T, h http.HandlerFunc) *API {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	return New(Config{BaseURL: srv.URL + "/", Timeout: 5 * time.Second}, nil, fixedID("cid-1"), v, instrument.NewNoop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestSendCode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		var gotPath, gotCID, gotAccept string
		var gotBody map[string]string
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotCID = r.Header.Get("X-Correlation-ID")
			gotAccept = r.Header.Get("Accept")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			writeJSON(w, http.StatusOK, `{"success":true,"message":"OTP sent","otp":"123456"}`)
		})

		// Act
		res, err := a.SendCode(context.Background(), "admin@postlearn.id")

		// Assert
		if err != nil {
			t.Fatalf("SendCode: %v", err)
		}
		if !res.Success || res.Message != "OTP sent" || res.Code != "123456" {
			t.Fatalf("result = %+v", res)
		}
		if gotPath != "/v1/auth/admin/login" {
			t.Fatalf("path = %q", gotPath)
		}
		if gotCID != "cid-1" || gotAccept != "application/json" {
			t.Fatalf("headers cid=%q accept=%q", gotCID, gotAccept)
		}
		if gotBody["email"] != "admin@postlearn.id" {
			t.Fatalf("body = %v", gotBody)
		}
	})

	t.Run("KeepsContextCorrelationID", func(t *testing.T) {
		var gotCID string
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			gotCID = r.Header.Get("X-Correlation-ID")
			writeJSON(w, http.StatusOK, `{"success":true,"message":"ok"}`)
		})

		ctx := instrument.SetCorrelationID(context.Background(), "from-ctx")
		if _, err := a.SendCode(ctx, "admin@postlearn.id"); err != nil {
			t.Fatalf("SendCode: %v", err)
		}
		if gotCID != "from-ctx" {
			t.Fatalf("cid = %q", gotCID)
		}
	})

	t.Run("UnsuccessfulIsNotAnError", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":false,"message":"User not found"}`)
		})

		res, err := a.SendCode(context.Background(), "x@postlearn.id")

		if err != nil {
			t.Fatalf("SendCode: %v", err)
		}
		if res.Success || res.Message != "User not found" {
			t.Fatalf("result = %+v", res)
		}
	})

	t.Run("ErrorStatusWithMessage", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"success":false,"message":"User not found"}`)
		})

		_, err := a.SendCode(context.Background(), "x@postlearn.id")

		var gerr *goerror.Error
		if !errors.As(err, &gerr) {
			t.Fatalf("err = %v, want *goerror.Error", err)
		}
		if gerr.Msg() != "User not found" || gerr.Code() != goerror.CodeNotFound || gerr.Type() != goerror.TypeBusiness {
			t.Fatalf("err = %s", gerr.String())
		}
	})

	t.Run("ErrorStatusWithoutMessage", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		})

		_, err := a.SendCode(context.Background(), "x@postlearn.id")

		if got := goerror.Message(err, ""); got != "Request failed with status code 502" {
			t.Fatalf("message = %q", got)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"message":"OTP sent"}`)
		})

		_, err := a.SendCode(context.Background(), "x@postlearn.id")

		if !errors.Is(err, ErrInvalidResponse) {
			t.Fatalf("err = %v, want ErrInvalidResponse", err)
		}
		if got := goerror.Message(err, ""); got != "Unexpected response from server" {
			t.Fatalf("message = %q", got)
		}
	})

	t.Run("NotJSON", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		if _, err := a.SendCode(context.Background(), "x@postlearn.id"); !errors.Is(err, ErrInvalidResponse) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		v, _ := validator.NewV10Validator()
		a := New(Config{BaseURL: url, Timeout: time.Second}, nil, fixedID("x"), v, instrument.NewNoop())

		_, err := a.SendCode(context.Background(), "x@postlearn.id")

		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeServer {
			t.Fatalf("err = %v, want server error", err)
		}
	})
}

func TestVerifyCode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]string
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			writeJSON(w, http.StatusOK, `{"message":"Login successful","tokens":{"accessToken":"at","refreshToken":"rt"}}`)
		})

		cred, err := a.VerifyCode(context.Background(), "admin@postlearn.id", "123456")

		if err != nil {
			t.Fatalf("VerifyCode: %v", err)
		}
		if cred.AccessToken != "at" || cred.RefreshToken != "rt" {
			t.Fatalf("credential = %+v", cred)
		}
		if gotPath != "/v1/auth/admin/login/verify" {
			t.Fatalf("path = %q", gotPath)
		}
		if gotBody["email"] != "admin@postlearn.id" || gotBody["otp"] != "123456" {
			t.Fatalf("body = %v", gotBody)
		}
	})

	t.Run("InvalidCode", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"message":"Invalid or expired OTP"}`)
		})

		_, err := a.VerifyCode(context.Background(), "admin@postlearn.id", "000000")

		if got := goerror.Message(err, ""); got != "Invalid or expired OTP" {
			t.Fatalf("message = %q", got)
		}
	})

	t.Run("MissingTokens", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"message":"Login successful"}`)
		})

		if _, err := a.VerifyCode(context.Background(), "admin@postlearn.id", "123456"); !errors.Is(err, ErrInvalidResponse) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("EmptyRefreshToken", func(t *testing.T) {
		a := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"message":"ok","tokens":{"accessToken":"at","refreshToken":""}}`)
		})

		if _, err := a.VerifyCode(context.Background(), "admin@postlearn.id", "123456"); !errors.Is(err, ErrInvalidResponse) {
			t.Fatalf("err = %v", err)
		}
	})
}
