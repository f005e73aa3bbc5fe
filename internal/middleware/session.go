package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const sessionName = "cinema_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionManager owns the browser session cookie. Every visitor gets a
// stable session id on first contact; the cart and booking-progress
// stores key their snapshots on it. The session also carries the remote
// API cookie captured at login, the guest token, and UI preferences.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a session manager backed by a signed cookie
// store.
func NewSessionManager(secret string) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// Middleware ensures the request carries a session id and places it in
// the request context.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := m.store.Get(r, sessionName)

		id, ok := session.Values["id"].(string)
		if !ok || id == "" {
			id = uuid.NewString()
			session.Values["id"] = id
			if err := session.Save(r, w); err != nil {
				http.Error(w, "failed to establish session", http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session id established by Middleware.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

func (m *SessionManager) get(r *http.Request) *sessions.Session {
	session, _ := m.store.Get(r, sessionName)
	return session
}

func (m *SessionManager) value(r *http.Request, key string) string {
	v, _ := m.get(r).Values[key].(string)
	return v
}

func (m *SessionManager) set(w http.ResponseWriter, r *http.Request, key, value string) error {
	session := m.get(r)
	session.Values[key] = value
	return session.Save(r, w)
}

// RemoteCookie returns the remote cinema API session cookie captured at
// login, empty for guests.
func (m *SessionManager) RemoteCookie(r *http.Request) string {
	return m.value(r, "remote_cookie")
}

// SetRemoteCookie stores the remote API cookie after a successful login.
func (m *SessionManager) SetRemoteCookie(w http.ResponseWriter, r *http.Request, cookie string) error {
	return m.set(w, r, "remote_cookie", cookie)
}

// Username returns the logged-in user's name, empty for guests.
func (m *SessionManager) Username(r *http.Request) string {
	return m.value(r, "username")
}

// SetUsername stores the logged-in user's display name.
func (m *SessionManager) SetUsername(w http.ResponseWriter, r *http.Request, name string) error {
	return m.set(w, r, "username", name)
}

// GuestToken returns the signed guest-session token, if any.
func (m *SessionManager) GuestToken(r *http.Request) string {
	return m.value(r, "guest_token")
}

// SetGuestToken stores the signed guest-session token.
func (m *SessionManager) SetGuestToken(w http.ResponseWriter, r *http.Request, token string) error {
	return m.set(w, r, "guest_token", token)
}

// Preference returns a per-session UI preference such as the chosen
// theater or theme.
func (m *SessionManager) Preference(r *http.Request, key string) string {
	return m.value(r, "pref_"+key)
}

// SetPreference stores a per-session UI preference.
func (m *SessionManager) SetPreference(w http.ResponseWriter, r *http.Request, key, value string) error {
	return m.set(w, r, "pref_"+key, value)
}

// ClearAuth drops the login state but keeps the session id, so the cart
// and draft survive a logout.
func (m *SessionManager) ClearAuth(w http.ResponseWriter, r *http.Request) error {
	session := m.get(r)
	delete(session.Values, "remote_cookie")
	delete(session.Values, "username")
	return session.Save(r, w)
}
