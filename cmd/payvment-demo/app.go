package main

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-payvment/auth"
	"github.com/jrsteele09/go-payvment/client"
	"github.com/jrsteele09/go-payvment/environment"
	"github.com/jrsteele09/go-payvment/statestore"
)

const sessionCookie = "demo_session"

// app holds one SDK session per browser session, all sharing one state
// store keyed per browser so concurrent logins cannot collide.
type app struct {
	cfg     environment.Config
	baseURL string
	store   *statestore.InMemory
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*client.Session
}

func newApp(cfg environment.Config, baseURL string, log zerolog.Logger) *app {
	return &app{
		cfg:      cfg,
		baseURL:  baseURL,
		store:    statestore.NewInMemory(),
		log:      log,
		sessions: make(map[string]*client.Session),
	}
}

func (a *app) browserSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: sid, Path: "/", HttpOnly: true})
	return sid
}

func (a *app) session(sid string) (*client.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	session, ok := a.sessions[sid]
	return session, ok
}

func (a *app) handleIndex(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintln(w, "payvment-demo: GET /login to authorize (add ?sandbox=1 for the sandbox), GET /stores once authenticated")
}

func (a *app) handleLogin(w http.ResponseWriter, r *http.Request) {
	sid := a.browserSession(w, r)

	session, err := client.New(a.cfg, client.SessionParams{
		RedirectURL: a.baseURL + "/oauth/callback",
		Sandbox:     r.URL.Query().Has("sandbox"),
	},
		client.WithStateStore(a.store),
		client.WithStateKey("state:"+sid),
		client.WithLogger(a.log),
	)
	if err != nil {
		a.log.Error().Err(err).Msg("session construction failed")
		http.Error(w, "configuration error", http.StatusInternalServerError)
		return
	}

	a.mu.Lock()
	a.sessions[sid] = session
	a.mu.Unlock()

	authorizeURL, err := session.BeginAuthorization()
	if err != nil {
		a.log.Error().Err(err).Msg("could not begin authorization")
		http.Error(w, "authorization error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

func (a *app) handleCallback(w http.ResponseWriter, r *http.Request) {
	sid := a.browserSession(w, r)
	session, ok := a.session(sid)
	if !ok {
		http.Error(w, "no authorization in progress", http.StatusBadRequest)
		return
	}

	params := client.ParamsFromValues(r.URL.Query())
	cred, err := session.CompleteAuthorizationWith(r.Context(), params.Code, params.State)
	switch {
	case errors.Is(err, auth.ErrStateMismatch):
		http.Error(w, "state mismatch, restart the flow at /login", http.StatusForbidden)
		return
	case errors.Is(err, auth.ErrMalformedTokenResponse):
		http.Error(w, "bad token response from the platform", http.StatusBadGateway)
		return
	case err != nil:
		a.log.Error().Err(err).Msg("token exchange failed")
		http.Error(w, "token exchange failed", http.StatusBadGateway)
		return
	}

	fmt.Fprintf(w, "authenticated as payvment user %d\n", cred.UserID)
}

func (a *app) handleStores(w http.ResponseWriter, r *http.Request) {
	sid := a.browserSession(w, r)
	session, ok := a.session(sid)
	if !ok || !session.IsAuthenticated() {
		http.Error(w, "authenticate at /login first", http.StatusUnauthorized)
		return
	}

	doc, err := session.Stores(r.Context(), nil, client.FormatXML)
	if err != nil {
		a.log.Error().Err(err).Msg("stores call failed")
		http.Error(w, "stores call failed", http.StatusBadGateway)
		return
	}

	fmt.Fprintf(w, "%d store(s)\n", len(doc.Root.Children))
}
