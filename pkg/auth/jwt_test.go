package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTProvider_RoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret", time.Hour)
	ctx := context.Background()

	token, err := provider.Issue(ctx, &Claims{
		UserID: "user-1",
		Email:  "user1@swiftaid.dev",
		Role:   "driver",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := provider.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user1@swiftaid.dev", claims.Email)
	assert.Equal(t, "driver", claims.Role)
}

func TestJWTProvider_WrongSecret(t *testing.T) {
	issuer := NewJWTProvider("secret-a", time.Hour)
	verifier := NewJWTProvider("secret-b", time.Hour)
	ctx := context.Background()

	token, err := issuer.Issue(ctx, &Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Verify(ctx, token)
	assert.Error(t, err)
}

func TestJWTProvider_ExpiredToken(t *testing.T) {
	provider := NewJWTProvider("test-secret", -time.Minute)
	ctx := context.Background()

	token, err := provider.Issue(ctx, &Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = provider.Verify(ctx, token)
	assert.Error(t, err)
}

func TestJWTProvider_Garbage(t *testing.T) {
	provider := NewJWTProvider("test-secret", time.Hour)

	_, err := provider.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}
