package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// POST v1/auth/login JSON {"email", "password"} (200 OK, 401 Unauthorized)
// POST v1/auth/admin/login JSON {"email", "password"} (200 OK, 401 Unauthorized)
// POST v1/auth/register JSON {"name", "email", "password"} (201 Created, 400 Bad request)
// POST v1/auth/logout (204 No content)
// GET v1/auth/session (200 OK, 204 No content)

type AuthHandler struct {
	auth port.Authenticator
}

func RegisterAuth(mux *http.ServeMux, auth port.Authenticator) {
	h := AuthHandler{auth}
	mux.HandleFunc("POST /v1/auth/login", h.PostLogin)
	mux.HandleFunc("POST /v1/auth/admin/login", h.PostAdminLogin)
	mux.HandleFunc("POST /v1/auth/register", h.PostRegister)
	mux.HandleFunc("POST /v1/auth/logout", h.PostLogout)
	mux.HandleFunc("GET /v1/auth/session", h.GetSession)
}

func (h AuthHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, "AuthHandler.PostLogin", h.auth.Login)
}

func (h AuthHandler) PostAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, "AuthHandler.PostAdminLogin", h.auth.AdminLogin)
}

func (h AuthHandler) login(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	loginFn func(context.Context, string, string) (domain.User, error),
) {
	log := slog.With("op", op)

	var req Credentials
	if !decodeJSON(w, r, log, &req) {
		return
	}

	u, err := loginFn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("login failed", "email", req.Email)
			writeError(w, log, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Error("failed to login", "err", err)
		writeError(w, log, http.StatusServiceUnavailable, "login is unavailable, try again")
		return
	}

	writeJSON(w, log, http.StatusOK, fromDomainUser(u))
}

func (h AuthHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostRegister"
	log := slog.With("op", op)

	var req RegisterRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	u, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRegistration) {
			writeError(w, log, http.StatusBadRequest, service.ErrInvalidRegistration.Error())
			return
		}
		log.Error("failed to register", "err", err)
		writeError(w, log, http.StatusServiceUnavailable, "registration failed, try again")
		return
	}

	writeJSON(w, log, http.StatusCreated, fromDomainUser(u))
}

func (h AuthHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.GetSession"
	log := slog.With("op", op)

	u, ok := h.auth.CurrentUser()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, log, http.StatusOK, fromDomainUser(u))
}
