package auth

import "context"

// Claims is the identity the middleware extracts from a bearer token. Role may
// be empty when the provider does not embed one; the middleware then falls
// back to the user document.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// TokenIssuer mints tokens at registration/login. Only the local provider
// issues tokens; with Firebase the client obtains ID tokens itself.
type TokenIssuer interface {
	Issue(ctx context.Context, claims *Claims) (string, error)
}
