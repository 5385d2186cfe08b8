package config

import (
	"time"
)

type AuthConfig struct {
	// Provider selects the token verifier: "local" (HS256, issued by this
	// service) or "firebase" (client-obtained ID tokens).
	Provider            string        `yaml:"provider"`
	JWTSecret           string        `yaml:"jwt_secret"`
	JWTTokenTTL         time.Duration `yaml:"jwt_token_ttl"`
	FirebaseCredentials string        `yaml:"firebase_credentials"`
}

func loadAuthConfig() *AuthConfig {
	return &AuthConfig{
		Provider:            getEnv("AUTH_PROVIDER", "local"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-only-signing-key"),
		JWTTokenTTL:         getEnvAsDuration("JWT_TOKEN_TTL", 24*time.Hour),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
	}
}
