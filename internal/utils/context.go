// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, JWT parsing,
// JSON response writing, checksums, and UUID generation.
package utils

import (
	"context"

	"github.com/edusync/statesync/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AuthCtxKey is the key under which the authenticated [models.AuthContext]
// is stored in the request context by the auth middleware.
var AuthCtxKey = contextKey("authContext")

// GetAuthFromContext retrieves the authenticated context from ctx.
//
// Returns the AuthContext and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetAuthFromContext(ctx context.Context) (models.AuthContext, bool) {
	auth, ok := ctx.Value(AuthCtxKey).(models.AuthContext)
	return auth, ok
}

// WithAuthContext returns a child context carrying the given AuthContext.
func WithAuthContext(ctx context.Context, auth models.AuthContext) context.Context {
	return context.WithValue(ctx, AuthCtxKey, auth)
}
