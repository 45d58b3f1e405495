package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/middleware"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/request"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/response"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/auth"
)

// AuthHandler handles account endpoints
type AuthHandler struct {
	authService *auth.Service

	cookieDuration time.Duration
	secureCookies  bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, cookieDuration time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		cookieDuration: cookieDuration,
		secureCookies:  secureCookies,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	response.JSON(w, http.StatusCreated, response.NewAuthResponse(user, token))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	response.JSON(w, http.StatusOK, response.NewAuthResponse(user, token))
}

// Logout handles POST /api/v1/auth/logout by expiring the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// setTokenCookie mirrors the token into an HTTP-only cookie so browser
// clients do not have to store it themselves
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
