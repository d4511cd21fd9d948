// Package middleware gates protected endpoints behind bearer-token
// authentication. The gate runs once per request: it verifies the token
// (signature and expiry, no store access), then resolves the subject against
// the user store, and hands the full identity to the handler via the request
// context. Every rejection looks identical to the client; the sub-reason is
// logged only.
package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"TASKTRACKER_BACK-END/internal/models"
	"TASKTRACKER_BACK-END/internal/store"
	"TASKTRACKER_BACK-END/internal/token"
	"TASKTRACKER_BACK-END/internal/utils"
)

var (
	// ErrNoToken covers a missing or malformed Authorization header.
	ErrNoToken = errors.New("no bearer token")

	// ErrUserGone means the token verified but its subject no longer exists.
	ErrUserGone = errors.New("token subject no longer exists")
)

// Authenticator resolves a bearer credential into a user identity.
type Authenticator struct {
	codec *token.Codec
	users store.UserRepository
}

// NewAuthenticator creates an Authenticator over the given codec and store.
func NewAuthenticator(codec *token.Codec, users store.UserRepository) *Authenticator {
	return &Authenticator{codec: codec, users: users}
}

// Authenticate turns the Authorization header value into a resolved user.
// Token verification happens before the store lookup, so obviously invalid
// tokens never cost a query. The returned error is one of ErrNoToken,
// token.ErrMalformed, token.ErrBadSignature, token.ErrExpired, ErrUserGone,
// or a store failure.
func (a *Authenticator) Authenticate(ctx context.Context, authHeader string) (*models.User, error) {
	if authHeader == "" {
		return nil, ErrNoToken
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrNoToken
	}

	userID, err := a.codec.Verify(parts[1], time.Now())
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserGone
		}
		return nil, err
	}

	return user, nil
}

// Wrap composes the gate in front of a handler. On success the resolved user
// is placed in the request context; on any rejection the client sees the same
// 401 body regardless of why.
func (a *Authenticator) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		user, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			log.Printf("auth rejected: %s %s: %v", r.Method, r.URL.Path, err)
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Not authorized")
			return
		}

		ctx := utils.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
