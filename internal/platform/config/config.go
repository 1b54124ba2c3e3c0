package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures gateway level configuration.
type Server struct {
	Addr            string
	IdentityBaseURL string
	Production      bool

	// CredentialTTL applies to the access token, refresh token and cached
	// user snapshot entries in the browser store.
	CredentialTTL time.Duration

	// IntentTTL bounds how long a stashed "return to this path" survives.
	IntentTTL time.Duration

	LoginPath             string
	RootPath              string
	EmployerDashboardPath string
}

const (
	defaultCredentialTTLDays = 7
	defaultIntentTTL         = 300 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("JOBGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	identityURL := os.Getenv("JOBGATE_IDENTITY_URL")
	if identityURL == "" {
		identityURL = "http://localhost:8000/auth"
	}

	ttlDays := defaultCredentialTTLDays
	if v := os.Getenv("JOBGATE_COOKIE_EXPIRE_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			ttlDays = parsed
		}
	}

	return Server{
		Addr:                  addr,
		IdentityBaseURL:       identityURL,
		Production:            os.Getenv("JOBGATE_ENV") == "production",
		CredentialTTL:         time.Duration(ttlDays) * 24 * time.Hour,
		IntentTTL:             defaultIntentTTL,
		LoginPath:             "/login",
		RootPath:              "/",
		EmployerDashboardPath: "/employer/dashboard",
	}
}
