package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/studyspot/studyspot/libs/auth"
	"golang.org/x/crypto/bcrypt"
)

// DemoUser is the single fixed credential pair the demo accepts.
type DemoUser struct {
	ID           string
	Username     string
	PasswordHash []byte
}

type AuthHandler struct {
	logger   *slog.Logger
	secret   string
	tokenTTL time.Duration
	demo     DemoUser
}

func NewAuthHandler(logger *slog.Logger, secret string, tokenTTL time.Duration, demo DemoUser) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{logger: logger, secret: secret, tokenTTL: tokenTTL, demo: demo}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        loginUser `json:"user"`
}

type loginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}

	if req.Username != h.demo.Username ||
		bcrypt.CompareHashAndPassword(h.demo.PasswordHash, []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	token, err := auth.SignHS256(auth.Claims{
		Sub:      h.demo.ID,
		Username: h.demo.Username,
		Iat:      now.Unix(),
		Exp:      now.Add(h.tokenTTL).Unix(),
	}, h.secret)
	if err != nil {
		h.logger.Error("token signing failed", "err", err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        loginUser{ID: h.demo.ID, Username: h.demo.Username},
	})
}
