package auth_test

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/go-payvment/auth"
	"github.com/jrsteele09/go-payvment/environment"
	"github.com/jrsteele09/go-payvment/statestore"
	"github.com/jrsteele09/go-payvment/transport/transportfake"
	"github.com/stretchr/testify/require"
)

const testRedirectURL = "https://merchant.example.com/oauth/callback"

type flowFixture struct {
	store     *statestore.InMemory
	manager   *auth.StateManager
	transport *transportfake.FakeClient
	flow      *auth.Flow
}

func setupFlow(t *testing.T, sandbox bool) *flowFixture {
	t.Helper()

	cfg := environment.Config{
		ProductionClientID:     "prod-id",
		ProductionClientSecret: "prod-secret",
		SandboxClientID:        "sbx-id",
		SandboxClientSecret:    "sbx-secret",
	}
	env, err := environment.Resolve(sandbox, cfg)
	require.NoError(t, err)

	store := statestore.NewInMemory()
	manager, err := auth.NewStateManager(store, "")
	require.NoError(t, err)

	fake := transportfake.New()
	flow, err := auth.NewFlow(env, testRedirectURL, manager, fake)
	require.NoError(t, err)

	return &flowFixture{store: store, manager: manager, transport: fake, flow: flow}
}

func tokenResponse(userID, token string) []byte {
	return []byte(fmt.Sprintf("<response><payvment_userid>%s</payvment_userid><token>%s</token></response>", userID, token))
}

func TestBeginAuthorizationProduction(t *testing.T) {
	f := setupFlow(t, false)

	authorizeURL, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	require.Equal(t, auth.StatusAwaitingCallback, f.flow.Status())

	parsed, err := url.Parse(authorizeURL)
	require.NoError(t, err)
	require.Equal(t, "/oauth/authorize", parsed.Path)
	require.Equal(t, "api.payvment.com", parsed.Host)

	query := parsed.Query()
	require.Equal(t, "prod-id", query.Get("client_id"))
	require.Equal(t, testRedirectURL, query.Get("redirect_uri"))
	require.False(t, query.Has("sandbox"))

	// The embedded state is the token resident in the session store.
	stored, err := f.store.Get(auth.DefaultStateKey)
	require.NoError(t, err)
	require.Equal(t, stored, query.Get("state"))
	require.Contains(t, authorizeURL, "state="+stored)
}

func TestBeginAuthorizationSandboxMarker(t *testing.T) {
	f := setupFlow(t, true)

	authorizeURL, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(authorizeURL, "&sandbox=1"))
	require.Contains(t, authorizeURL, "https://api-sandbox.payvment.com/oauth/authorize?client_id=sbx-id&")
}

func TestBeginAuthorizationEncodesRedirectURL(t *testing.T) {
	f := setupFlow(t, false)

	authorizeURL, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	require.Contains(t, authorizeURL, "redirect_uri="+url.QueryEscape(testRedirectURL))
}

func TestCompleteAuthorization(t *testing.T) {
	f := setupFlow(t, false)
	f.transport.GetFunc = func(requestURL string) ([]byte, error) {
		return tokenResponse("1001", "access-token-1"), nil
	}

	authorizeURL, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	state := queryParam(t, authorizeURL, "state")

	cred, err := f.flow.CompleteAuthorization(context.Background(), "auth-code-1", state)
	require.NoError(t, err)
	require.Equal(t, int64(1001), cred.UserID)
	require.Equal(t, "access-token-1", cred.AccessToken)
	require.Equal(t, auth.StatusAuthenticated, f.flow.Status())

	// The exchange carries the client secret, server to server.
	call, ok := f.transport.LastCall()
	require.True(t, ok)
	require.Equal(t, "https://api.payvment.com/oauth/accesstoken?client_id=prod-id&client_secret=prod-secret&code=auth-code-1", call.URL)
}

func TestCompleteAuthorizationStateMismatch(t *testing.T) {
	f := setupFlow(t, false)

	_, err := f.flow.BeginAuthorization()
	require.NoError(t, err)

	_, err = f.flow.CompleteAuthorization(context.Background(), "auth-code-1", "forged-state")
	require.ErrorIs(t, err, auth.ErrStateMismatch)
	require.Equal(t, auth.StatusFailed, f.flow.Status())

	// No token exchange was attempted.
	require.Empty(t, f.transport.Calls)
}

func TestCompleteAuthorizationMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"missing token", []byte("<response><payvment_userid>1001</payvment_userid></response>")},
		{"missing userid", []byte("<response><token>abc</token></response>")},
		{"userid not an integer", []byte("<response><payvment_userid>abc</payvment_userid><token>tok</token></response>")},
		{"empty token", []byte("<response><payvment_userid>1001</payvment_userid><token></token></response>")},
		{"not xml", []byte("service unavailable")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupFlow(t, false)
			f.transport.GetFunc = func(string) ([]byte, error) { return tc.body, nil }

			authorizeURL, err := f.flow.BeginAuthorization()
			require.NoError(t, err)
			state := queryParam(t, authorizeURL, "state")

			_, err = f.flow.CompleteAuthorization(context.Background(), "auth-code-1", state)
			require.ErrorIs(t, err, auth.ErrMalformedTokenResponse)
			require.Equal(t, auth.StatusFailed, f.flow.Status())
		})
	}
}

func TestCompleteAuthorizationWithoutBegin(t *testing.T) {
	f := setupFlow(t, false)

	_, err := f.flow.CompleteAuthorization(context.Background(), "auth-code-1", "any-state")
	require.ErrorIs(t, err, auth.ErrNoPendingAuthorization)
}

func TestCompleteAuthorizationStateIsSingleUse(t *testing.T) {
	f := setupFlow(t, false)
	f.transport.GetFunc = func(string) ([]byte, error) {
		return tokenResponse("1001", "access-token-1"), nil
	}

	authorizeURL, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	state := queryParam(t, authorizeURL, "state")

	_, err = f.flow.CompleteAuthorization(context.Background(), "auth-code-1", state)
	require.NoError(t, err)

	// The matched token is gone from the store: a replayed callback
	// cannot validate again.
	require.False(t, f.manager.Verify(state))
	_, err = f.store.Get(auth.DefaultStateKey)
	require.ErrorIs(t, err, statestore.ErrNotFound)
}

func TestCompleteAuthorizationTransportFailure(t *testing.T) {
	f := setupFlow(t, false)
	f.transport.GetFunc = func(string) ([]byte, error) {
		return nil, fmt.Errorf("connection refused")
	}

	authorizeURL, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	state := queryParam(t, authorizeURL, "state")

	_, err = f.flow.CompleteAuthorization(context.Background(), "auth-code-1", state)
	require.Error(t, err)
	require.NotErrorIs(t, err, auth.ErrMalformedTokenResponse)
	require.Equal(t, auth.StatusFailed, f.flow.Status())
}

func TestBeginAuthorizationRestartsAfterFailure(t *testing.T) {
	f := setupFlow(t, false)
	f.transport.GetFunc = func(string) ([]byte, error) {
		return tokenResponse("1001", "access-token-1"), nil
	}

	_, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	_, err = f.flow.CompleteAuthorization(context.Background(), "code", "forged-state")
	require.ErrorIs(t, err, auth.ErrStateMismatch)

	authorizeURL, err := f.flow.BeginAuthorization()
	require.NoError(t, err)
	state := queryParam(t, authorizeURL, "state")

	cred, err := f.flow.CompleteAuthorization(context.Background(), "code", state)
	require.NoError(t, err)
	require.Equal(t, "access-token-1", cred.AccessToken)
}

func queryParam(t *testing.T, rawURL, name string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	return parsed.Query().Get(name)
}
