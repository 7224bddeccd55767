package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ugoness/internal/adapters/storage/session"
)

// AuthAPI defines the credential check delegated to the UgoNess API.
// This service never stores or verifies passwords itself.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}

// SessionStore persists operator sessions keyed by cookie token.
type SessionStore interface {
	Save(ctx context.Context, s session.Session) error
	Delete(ctx context.Context, id string) error
}

// ClientLoginInput carries input for operator login.
type ClientLoginInput struct {
	Email    string
	Password string
}

// ClientLoginResult carries the new session's cookie token.
type ClientLoginResult struct {
	SessionID string
}

// ClientLoginDeps holds dependencies for ClientLogin.
type ClientLoginDeps struct {
	Auth       AuthAPI
	Sessions   SessionStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteClientLogin delegates the credential check to the API and, on
// success, stores the API token server-side in a session row. The token
// never reaches client-side storage; the browser only holds the opaque
// session cookie.
// PRE: Email and Password are non-empty
// POST: a session row exists referencing the API token
func ExecuteClientLogin(ctx context.Context, input ClientLoginInput, deps ClientLoginDeps) (ClientLoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return ClientLoginResult{}, errors.New("email and password are required")
	}

	token, err := deps.Auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		slog.Warn("client_login_failed", "email", input.Email, "error", err.Error())
		return ClientLoginResult{}, errors.New("login failed")
	}

	sess := session.Session{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		APIToken:  token,
		CreatedAt: deps.Now(),
	}
	if err := deps.Sessions.Save(ctx, sess); err != nil {
		return ClientLoginResult{}, err
	}

	slog.Info("client_login", "email", input.Email)
	return ClientLoginResult{SessionID: sess.ID}, nil
}

// ExecuteLogout removes the operator's session row. Absent sessions are a
// no-op so repeated logouts are harmless.
func ExecuteLogout(ctx context.Context, sessionID string, deps ClientLoginDeps) error {
	if sessionID == "" {
		return nil
	}
	return deps.Sessions.Delete(ctx, sessionID)
}
