// Package client is the entry point of the Payvment SDK: a Session owns
// one resolved environment and at most one credential, drives the
// authorization flow, and exposes the platform's REST resources.
//
// Sessions are synchronous; each operation is build URL, blocking network
// call, parse. Separate Session instances are independent and safe to use
// from separate goroutines, provided each owns its own redirect target and
// state-store key.
package client

import (
	"context"

	"github.com/jrsteele09/go-payvment/auth"
	"github.com/jrsteele09/go-payvment/credentials"
	"github.com/jrsteele09/go-payvment/environment"
	"github.com/jrsteele09/go-payvment/statestore"
	"github.com/jrsteele09/go-payvment/transport"
	"github.com/jrsteele09/go-payvment/xmldoc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Session is a client instance bound to one environment and one merchant
// callback target.
type Session struct {
	env       environment.Environment
	params    SessionParams
	flow      *auth.Flow
	creds     credentials.Holder
	transport transport.Client
	parse     xmldoc.ParseFunc
	store     statestore.Store
	stateKey  string
	log       zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithTransport replaces the default HTTP transport.
func WithTransport(tc transport.Client) Option {
	return func(s *Session) {
		s.transport = tc
	}
}

// WithParseFunc replaces the default XML parse capability.
func WithParseFunc(parse xmldoc.ParseFunc) Option {
	return func(s *Session) {
		s.parse = parse
	}
}

// WithStateStore sets the session store holding CSRF state. Defaults to a
// process-local in-memory store; web applications should inject their HTTP
// session here.
func WithStateStore(store statestore.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithStateKey scopes the CSRF state slot, for stores shared between
// sessions.
func WithStateKey(key string) Option {
	return func(s *Session) {
		s.stateKey = key
	}
}

// WithLogger sets the session logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New creates a Session. The environment is resolved once, from
// params.Sandbox, and never changes for the lifetime of the session.
// Missing credentials in cfg fail here, not per request.
func New(cfg environment.Config, params SessionParams, options ...Option) (*Session, error) {
	env, err := environment.Resolve(params.Sandbox, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "[client.New]")
	}

	session := &Session{
		env:    env,
		params: params,
		parse:  xmldoc.Parse,
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(session)
	}

	if session.transport == nil {
		session.transport = transport.New(transport.WithLogger(session.log))
	}
	if session.store == nil {
		session.store = statestore.NewInMemory()
	}

	states, err := auth.NewStateManager(session.store, session.stateKey)
	if err != nil {
		return nil, errors.Wrap(err, "[client.New]")
	}

	flow, err := auth.NewFlow(env, params.RedirectURL, states, session.transport,
		auth.WithParseFunc(session.parse), auth.WithLogger(session.log))
	if err != nil {
		return nil, errors.Wrap(err, "[client.New]")
	}
	session.flow = flow

	return session, nil
}

// Environment returns the resolved environment.
func (s *Session) Environment() environment.Environment {
	return s.env
}

// Status returns the authorization flow state.
func (s *Session) Status() auth.Status {
	return s.flow.Status()
}

// BeginAuthorization issues a CSRF token and returns the URL that starts
// the OAuth dance at the platform.
func (s *Session) BeginAuthorization() (string, error) {
	return s.flow.BeginAuthorization()
}

// CompleteAuthorization processes the inbound callback carried in the
// session's constructor params.
func (s *Session) CompleteAuthorization(ctx context.Context) (credentials.Credential, error) {
	return s.CompleteAuthorizationWith(ctx, s.params.Code, s.params.State)
}

// CompleteAuthorizationWith verifies the callback state, exchanges the
// code for a token, and stores the resulting credential on the session.
func (s *Session) CompleteAuthorizationWith(ctx context.Context, code, state string) (credentials.Credential, error) {
	cred, err := s.flow.CompleteAuthorization(ctx, code, state)
	if err != nil {
		return credentials.Credential{}, err
	}
	s.creds.Set(cred)
	return cred, nil
}

// RestoreCredential installs a credential the host application persisted
// from an earlier exchange, skipping the authorization flow.
func (s *Session) RestoreCredential(cred credentials.Credential) {
	s.creds.Set(cred)
}

// IsAuthenticated reports whether a well-formed credential is present.
// A local check only: the platform offers no token introspection or expiry.
func (s *Session) IsAuthenticated() bool {
	return s.creds.IsAuthenticated()
}

// Credential returns the session's credential, and false when none is
// present.
func (s *Session) Credential() (credentials.Credential, bool) {
	return s.creds.Get()
}
