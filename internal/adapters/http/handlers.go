package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"ugoness/internal/adapters/http/middleware"
	"ugoness/internal/application/orchestrators"
	"ugoness/internal/application/projections"
	"ugoness/internal/domain/catalog"
	"ugoness/internal/domain/training"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func badRequestJSON(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// templatesDir is relative to the server's working directory (the repo
// root). Tests in this package override it.
var templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())
	email := ""
	if loggedIn {
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return loggedIn },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"formatDuration": func(seconds int) string {
			return catalog.Video{DurationSeconds: seconds}.FormatDuration()
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	mux.HandleFunc(training.PathParticipants, handleParticipantsStep)
	mux.HandleFunc(training.PathParticipants+"/add", handleParticipantAdd)
	mux.HandleFunc(training.PathParticipants+"/remove", handleParticipantRemove)
	mux.HandleFunc(training.PathVideos, handleVideosStep)
	mux.HandleFunc(training.PathVideos+"/add", handleVideoAdd)
	mux.HandleFunc(training.PathVideos+"/remove", handleVideoRemove)
	mux.HandleFunc(training.PathWatch, handleWatch)
	mux.HandleFunc(training.PathWatch+"/state", handleWatchState)
	mux.HandleFunc(training.PathWatch+"/queue", handleWatchQueue)
	mux.HandleFunc(training.PathWatch+"/select", handleWatchSelect)
	mux.HandleFunc(training.PathWatch+"/remove", handleWatchRemove)
	mux.HandleFunc(training.PathWatch+"/pause", handleWatchPause)
	mux.HandleFunc(training.PathWatch+"/ended", handleWatchEnded)
	mux.HandleFunc(training.PathWatch+"/error", handleWatchError)
	mux.HandleFunc(training.PathWatch+"/finish", handleWatchFinish)
	mux.HandleFunc(training.PathForm, handleFormStep)
}

// handleHome shows the recent workout journal.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	result, err := projections.QueryGetRecentWorkouts(r.Context(),
		projections.GetRecentWorkoutsQuery{},
		projections.GetRecentWorkoutsDeps{Journal: stores.JournalStore})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "home.html", map[string]any{
		"Workouts":  result.Entries,
		"StartURL":  training.StepURL(training.StepParticipants, nil, nil),
		"CSRFToken": csrf.Token(r),
	})
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, go straight to the dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.ClientLoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.ClientLoginDeps{
			Auth:       apiClient,
			Sessions:   stores.SessionStore,
			GenerateID: generateID,
			Now:        timeNow,
		}

		result, err := orchestrators.ExecuteClientLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		middleware.SetSessionCookie(w, result.SessionID)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		deps := orchestrators.ClientLoginDeps{Sessions: stores.SessionStore}
		if err := orchestrators.ExecuteLogout(r.Context(), sess.ID, deps); err != nil {
			slog.Warn("logout_failed", "error", err.Error())
		}
		playbackSessions.Drop(sess.ID)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
