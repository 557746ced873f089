package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/postlearn/internal/pkg/clock"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestJWT(t *testing.T, clk *clock.Fixed) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("k", 64)),
		Issuer:    "postlearn-devapi",
		Audiences: []string{"postlearn-admin"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      fixedID("jti-1"),
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}
	return s
}

func TestNewHS512ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("err = %v, want ErrSigningKeyTooShort", err)
	}
}

func TestGenerateVerifyInspect(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	s := newTestJWT(t, clk)

	token, err := s.Generate("admin@postlearn.io", "admin@postlearn.io")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Email != "admin@postlearn.io" || claims.ID != "jti-1" {
		t.Errorf("claims = %+v", claims)
	}

	inspected, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	wantExp := clk.Now().Add(15 * time.Minute)
	if !inspected.ExpiresAt.Time.Equal(wantExp) {
		t.Errorf("Inspect() exp = %v, want %v", inspected.ExpiresAt.Time, wantExp)
	}

	clk.Advance(16 * time.Minute)
	if _, err := s.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify() after expiry err = %v, want ErrTokenExpired", err)
	}
}

func TestInspectGarbage(t *testing.T) {
	if _, err := Inspect("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Inspect() err = %v, want ErrInvalidToken", err)
	}
}
