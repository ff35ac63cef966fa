package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/studyspot/studyspot/libs/auth"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	demo := DemoUser{ID: "demo-user", Username: "user", PasswordHash: hash}
	return NewAuthHandler(slog.New(slog.DiscardHandler), "test-secret", time.Hour, demo)
}

func TestLogin(t *testing.T) {
	h := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"user","password":"123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %q", rec.Code, rec.Body.String())
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.User.Username != "user" {
		t.Fatalf("response = %+v", resp)
	}

	claims, err := auth.ParseAndVerifyHS256(resp.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Sub != "demo-user" {
		t.Fatalf("claims.Sub = %q, want demo-user", claims.Sub)
	}
}

func TestLoginRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"username":"user","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"someone","password":"123"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"user"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestAuthHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestLoginMethodNotAllowed(t *testing.T) {
	h := newTestAuthHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
