// Package http implements the HTTP transport layer of the sync service.
// It provides middleware, route handlers, and request/response utilities
// for the REST API and the WebSocket upgrade endpoint. Authentication,
// logging, and tracing concerns are all handled at this layer before
// requests are forwarded to the service layer.
package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/utils"
)

// deviceIDHeader carries the caller's device identity. Device identity is
// transport-level information, not an auth claim: the same account token
// is valid from every device.
const deviceIDHeader = "X-Device-ID"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, validates it via [utils.ParseAuthToken], and — on success —
// stores the authenticated [models.AuthContext] in the request context
// under [utils.AuthCtxKey] before delegating to the next handler. The
// device identity from the X-Device-ID header, when present, is attached
// to the same context.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is
// absent, malformed, or the token is expired or otherwise invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		auth, err := utils.ParseAuthToken(tokenString, h.config.App.TokenSignKey, h.config.App.TokenIssuer)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
				http.Error(w, utils.ErrTokenIsExpired.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		auth.DeviceID = r.Header.Get(deviceIDHeader)

		ctx := utils.WithAuthContext(r.Context(), auth)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form
// "<scheme> <token>".
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — fewer than two space-separated
//     parts (the token is missing entirely).
//   - [ErrEmptyToken] — the second part exists but is empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
