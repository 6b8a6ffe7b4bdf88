package controllers

import (
	"net/http"

	"blogspace/app/services"
	"blogspace/app/store"

	"go.uber.org/zap"
)

// AuthController handles registration and the session.
type AuthController struct {
	auth   *services.AuthService
	store  *store.Store
	logger *zap.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *services.AuthService, st *store.Store, logger *zap.Logger) *AuthController {
	return &AuthController{auth: auth, store: st, logger: logger}
}

// Register creates an account
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decode(r, &in); err != nil {
		sendError(w, ac.logger, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.auth.Register(r.Context(), in)
	if err != nil {
		handleError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, ac.logger, http.StatusCreated, user)
}

// Login starts a session
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := decode(r, &in); err != nil {
		sendError(w, ac.logger, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := ac.auth.Login(r.Context(), in); err != nil {
		handleError(w, r, ac.logger, err)
		return
	}
	sendJSON(w, ac.logger, http.StatusOK, ac.store.Auth())
}

// Logout ends the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.auth.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the auth slice of the store
func (ac *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, ac.logger, http.StatusOK, ac.store.Auth())
}
