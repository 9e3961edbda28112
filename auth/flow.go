package auth

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-payvment/credentials"
	"github.com/jrsteele09/go-payvment/environment"
	"github.com/jrsteele09/go-payvment/transport"
	"github.com/jrsteele09/go-payvment/xmldoc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Status is the authorization flow state.
type Status string

const (
	StatusUnauthenticated  Status = "unauthenticated"
	StatusAwaitingCallback Status = "awaiting_callback"
	StatusAuthenticated    Status = "authenticated"
	StatusFailed           Status = "failed"
)

// Flow drives one authorization-code exchange against the platform:
// Unauthenticated -> AwaitingCallback -> Authenticated, with Failed
// reachable from either. Beginning authorization again restarts the flow
// from any state and overwrites the stored CSRF token.
type Flow struct {
	env         environment.Environment
	redirectURL string
	states      *StateManager
	transport   transport.Client
	parse       xmldoc.ParseFunc
	status      Status
	log         zerolog.Logger
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithParseFunc replaces the XML parse capability.
func WithParseFunc(parse xmldoc.ParseFunc) FlowOption {
	return func(f *Flow) {
		f.parse = parse
	}
}

// WithLogger sets the flow logger. The default discards everything.
func WithLogger(log zerolog.Logger) FlowOption {
	return func(f *Flow) {
		f.log = log
	}
}

// NewFlow creates a Flow for the resolved environment. redirectURL is the
// merchant application's callback target.
func NewFlow(env environment.Environment, redirectURL string, states *StateManager, tc transport.Client, options ...FlowOption) (*Flow, error) {
	if states == nil {
		return nil, errors.New("[NewFlow] state manager is required")
	}
	if tc == nil {
		return nil, errors.New("[NewFlow] transport is required")
	}
	if redirectURL == "" {
		return nil, errors.New("[NewFlow] redirect URL is required")
	}

	flow := &Flow{
		env:         env,
		redirectURL: redirectURL,
		states:      states,
		transport:   tc,
		parse:       xmldoc.Parse,
		status:      StatusUnauthenticated,
		log:         zerolog.Nop(),
	}
	for _, opt := range options {
		opt(flow)
	}
	return flow, nil
}

// Status returns the current flow state.
func (f *Flow) Status() Status {
	return f.status
}

// BeginAuthorization issues a fresh CSRF token and composes the URL that
// starts the OAuth dance. Whether the caller issues an HTTP redirect with
// it or hands it to the user is the caller's decision. Transitions the
// flow to AwaitingCallback.
func (f *Flow) BeginAuthorization() (string, error) {
	token, err := f.states.Issue()
	if err != nil {
		return "", errors.Wrap(err, "[Flow.BeginAuthorization] states.Issue")
	}

	authorizeURL := fmt.Sprintf("%s/oauth/authorize?client_id=%s&redirect_uri=%s&state=%s",
		f.env.BaseURL, f.env.ClientID, url.QueryEscape(f.redirectURL), token)
	if f.env.Sandbox {
		authorizeURL += "&sandbox=1"
	}

	f.status = StatusAwaitingCallback
	f.log.Debug().Bool("sandbox", f.env.Sandbox).Msg("authorization started")
	return authorizeURL, nil
}

// CompleteAuthorization processes an inbound OAuth callback: verifies the
// CSRF state, exchanges the code for a token, and returns the resulting
// credential. The stored CSRF token is invalidated after a successful
// match so it cannot validate a replayed callback.
func (f *Flow) CompleteAuthorization(ctx context.Context, code, state string) (credentials.Credential, error) {
	if f.status != StatusAwaitingCallback {
		return credentials.Credential{}, errors.Wrap(ErrNoPendingAuthorization, "[Flow.CompleteAuthorization]")
	}

	if !f.states.Verify(state) {
		f.status = StatusFailed
		return credentials.Credential{}, errors.Wrap(ErrStateMismatch, "[Flow.CompleteAuthorization]")
	}
	if err := f.states.Invalidate(); err != nil {
		f.log.Warn().Err(err).Msg("could not invalidate csrf state")
	}

	body, err := f.transport.Get(ctx, f.tokenURL(code))
	if err != nil {
		f.status = StatusFailed
		return credentials.Credential{}, errors.Wrap(err, "[Flow.CompleteAuthorization] transport.Get")
	}

	cred, err := parseTokenResponse(f.parse, body)
	if err != nil {
		f.status = StatusFailed
		return credentials.Credential{}, errors.Wrap(err, "[Flow.CompleteAuthorization]")
	}

	f.status = StatusAuthenticated
	f.log.Debug().Int64("user_id", cred.UserID).Msg("authorization completed")
	return cred, nil
}

// tokenURL composes the server-to-server token exchange URL. The client
// secret travels here and only here, never in the redirect URL.
func (f *Flow) tokenURL(code string) string {
	return fmt.Sprintf("%s/oauth/accesstoken?client_id=%s&client_secret=%s&code=%s",
		f.env.BaseURL, f.env.ClientID, f.env.ClientSecret, url.QueryEscape(code))
}

func parseTokenResponse(parse xmldoc.ParseFunc, body []byte) (credentials.Credential, error) {
	doc, err := parse(body)
	if err != nil {
		return credentials.Credential{}, errors.Wrap(ErrMalformedTokenResponse, err.Error())
	}

	userIDText, ok := doc.Text("payvment_userid")
	if !ok {
		return credentials.Credential{}, errors.Wrap(ErrMalformedTokenResponse, "payvment_userid absent")
	}
	token, ok := doc.Text("token")
	if !ok || token == "" {
		return credentials.Credential{}, errors.Wrap(ErrMalformedTokenResponse, "token absent")
	}

	userID, err := strconv.ParseInt(userIDText, 10, 64)
	if err != nil {
		return credentials.Credential{}, errors.Wrap(ErrMalformedTokenResponse, "payvment_userid not an integer")
	}

	return credentials.Credential{UserID: userID, AccessToken: token}, nil
}
