package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studyspot/studyspot/libs/auth"
)

func TestRequireAuth(t *testing.T) {
	secret := "test-secret"
	claims := auth.Claims{
		Sub:      "user-1",
		Username: "user",
		Iat:      time.Now().Unix(),
		Exp:      time.Now().Add(1 * time.Hour).Unix(),
	}
	token, err := auth.SignHS256(claims, secret)
	if err != nil {
		t.Fatalf("SignHS256 failed: %v", err)
	}

	h := requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-Id") != claims.Sub {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("X-Username") != claims.Username {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}), secret)

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}

	reqBad := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	reqBad.Header.Set("Authorization", "Bearer badtoken")
	rwBad := httptest.NewRecorder()
	h.ServeHTTP(rwBad, reqBad)
	if rwBad.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rwBad.Code)
	}
}

func TestRequireAuthStripsSpoofedIdentity(t *testing.T) {
	secret := "test-secret"
	token, err := auth.SignHS256(auth.Claims{
		Sub:      "user-1",
		Username: "user",
		Iat:      time.Now().Unix(),
		Exp:      time.Now().Add(1 * time.Hour).Unix(),
	}, secret)
	if err != nil {
		t.Fatalf("SignHS256 failed: %v", err)
	}

	h := requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-Id") != "user-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}), secret)

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-User-Id", "someone-else")
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	h := requireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), "test-secret")

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	if rw.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rw.Code)
	}
}
