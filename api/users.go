package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// registerUser registers a wallet with a role (platform owner only).
// POST /users
func (a *API) registerUser(w http.ResponseWriter, r *http.Request) {
	req := &RegisterUserRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	user, err := a.voting.RegisterUser(r.Context(), principal(r), req.WalletAddress, req.Role)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, user)
}

// listUsers returns every registered user (platform owner only).
// GET /users
func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.voting.Users(r.Context(), principal(r))
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, users)
}

// updateUserRole changes a user's role (platform owner only).
// PUT /users/{walletAddress}/role
func (a *API) updateUserRole(w http.ResponseWriter, r *http.Request) {
	wallet := chi.URLParam(r, UserURLParam)
	req := &UpdateRoleRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	user, err := a.voting.UpdateUserRole(r.Context(), principal(r), wallet, req.Role)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, user)
}
