package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type createdResponse struct {
	ID string `json:"id"`
}

func (createdResponse) StatusCode() int { return http.StatusCreated }

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	r := NewRouter(Config{UUID: fixedID("generated-cid")})
	r.POST("/echo", func(req *Request) (any, error) {
		var in struct {
			Name string `json:"name"`
		}
		if err := req.DecodeBody(&in); err != nil {
			return nil, err
		}
		return map[string]string{"name": in.Name}, nil
	})
	r.POST("/created", func(*Request) (any, error) {
		return createdResponse{ID: "1"}, nil
	})
	r.POST("/unauthorized", func(*Request) (any, error) {
		return nil, goerror.NewBusiness("Invalid or expired OTP", goerror.CodeUnauthorized)
	})
	r.GET("/panic", func(*Request) (any, error) {
		panic("boom")
	})
	r.GET("/empty", func(*Request) (any, error) {
		return nil, nil
	})

	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)

	t.Run("FlatJSON", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/echo", `{"name":"ada"}`, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := decode(t, rec)["name"]; got != "ada" {
			t.Fatalf("name = %v", got)
		}
	})

	t.Run("StatusCodeHook", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/created", ``, nil)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/echo", `{"name":"ada","extra":1}`, nil)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("BusinessError", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/unauthorized", ``, nil)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := decode(t, rec)["message"]; got != "Invalid or expired OTP" {
			t.Fatalf("message = %v", got)
		}
	})

	t.Run("Panic", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/panic", ``, nil)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := decode(t, rec)["message"]; got != "Internal server error" {
			t.Fatalf("message = %v", got)
		}
	})

	t.Run("NoContent", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/empty", ``, nil)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/nope", ``, nil)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("GeneratedCorrelationID", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/created", ``, nil)

		if got := rec.Header().Get(HeaderCorrelationID); got != "generated-cid" {
			t.Fatalf("cid = %q", got)
		}
	})

	t.Run("ForwardedCorrelationID", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/created", ``, map[string]string{HeaderCorrelationID: "from-client"})

		if got := rec.Header().Get(HeaderCorrelationID); got != "from-client" {
			t.Fatalf("cid = %q", got)
		}
	})
}

func TestMaskJSON(t *testing.T) {
	in := map[string]any{
		"email": "a@b.c",
		"otp":   "123456",
		"tokens": map[string]any{
			"accessToken": "x",
		},
		"list": []any{map[string]any{"OTP": "1"}},
	}
	keys := map[string]struct{}{"otp": {}, "accesstoken": {}}

	out := maskJSON(in, keys).(map[string]any)

	if out["email"] != "a@b.c" || out["otp"] != "***" {
		t.Fatalf("out = %v", out)
	}
	if out["tokens"].(map[string]any)["accessToken"] != "***" {
		t.Fatalf("nested = %v", out["tokens"])
	}
	if out["list"].([]any)[0].(map[string]any)["OTP"] != "***" {
		t.Fatalf("list = %v", out["list"])
	}
}
