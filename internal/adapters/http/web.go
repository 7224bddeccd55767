package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"ugoness/internal/adapters/api"
	"ugoness/internal/adapters/email"
	"ugoness/internal/adapters/http/middleware"
	journalStore "ugoness/internal/adapters/storage/journal"
	sessionStore "ugoness/internal/adapters/storage/session"
	"ugoness/internal/application/playback"
)

// Stores holds all storage dependencies.
type Stores struct {
	SessionStore sessionStore.Store
	JournalStore journalStore.Store
}

// loadCSRFKey reads the CSRF secret from UGONESS_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("UGONESS_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("UGONESS_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("UGONESS_ENV") == "production" {
		log.Fatal("UGONESS_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set UGONESS_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global API client instance (set by NewMux)
var apiClient *api.Client

// Global playback session manager (set by NewMux)
var playbackSessions *playback.Manager

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var notifyAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, notify string) {
	emailSender = sender
	emailFromAddress = from
	notifyAddress = notify
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, client *api.Client, pm *playback.Manager) http.Handler {
	stores = s
	apiClient = client
	playbackSessions = pm
	middleware.SecureCookies = os.Getenv("UGONESS_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Request flow: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> mux
	// (Chain wraps in listed order, so the last middleware is outermost)
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(s.SessionStore),
		middleware.RateLimit(limiter),
		middleware.Timing,
	)
}
