package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ugoness/internal/adapters/api"
	emailPkg "ugoness/internal/adapters/email"
	web "ugoness/internal/adapters/http"
	"ugoness/internal/adapters/storage"
	journalStorePkg "ugoness/internal/adapters/storage/journal"
	sessionStorePkg "ugoness/internal/adapters/storage/session"
	"ugoness/internal/application/playback"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Local database: operator sessions and the workout journal. All
	// training data itself lives behind the UgoNess API.
	dbPath := envOrDefault("UGONESS_DB_PATH", "ugoness.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	log.Println("Database initialized successfully!")

	sessStore, err := sessionStorePkg.NewSQLiteStore(db)
	if err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}
	journalStore, err := journalStorePkg.NewSQLiteStore(db)
	if err != nil {
		log.Fatalf("failed to initialize journal store: %v", err)
	}
	stores := &web.Stores{
		SessionStore: sessStore,
		JournalStore: journalStore,
	}

	// Purge expired sessions hourly
	go func() {
		for {
			if err := sessStore.DeleteExpired(context.Background(), time.Now()); err != nil {
				log.Printf("session cleanup failed: %v", err)
			}
			time.Sleep(time.Hour)
		}
	}()

	apiURL := os.Getenv("UGONESS_API_URL")
	if apiURL == "" {
		log.Fatal("UGONESS_API_URL is required")
	}
	client := api.NewClient(apiURL)

	// Configure email sender
	resendKey := os.Getenv("UGONESS_RESEND_KEY")
	emailFrom := envOrDefault("UGONESS_RESEND_FROM", "UgoNess <noreply@ugoness.jp>")
	notifyAddr := os.Getenv("UGONESS_NOTIFY_ADDRESS")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, notifyAddr)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, notifyAddr)
		if os.Getenv("UGONESS_ENV") == "production" {
			log.Println("WARNING: UGONESS_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set UGONESS_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware
	mux := web.NewMux("static", stores, client, playback.NewManager())

	// Start server
	addr := envOrDefault("UGONESS_ADDR", ":8080")
	log.Printf("UgoNess dashboard %s starting on %s (env=%s, api=%s)", version, addr, envOrDefault("UGONESS_ENV", "development"), apiURL)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
