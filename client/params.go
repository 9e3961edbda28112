package client

import "net/url"

// Param is one query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Order is preserved in the
// built URL, so identical inputs always produce byte-identical URLs.
type Params []Param

// SessionParams is the constructor record for a Session: the merchant's
// callback target, the environment flag, and optionally the raw code and
// state of an inbound OAuth callback.
type SessionParams struct {
	// RedirectURL is where the platform sends the user after authorizing.
	RedirectURL string

	// Sandbox selects the sandbox environment for the whole session.
	Sandbox bool

	// Code and State carry an inbound callback's query parameters, for
	// sessions constructed while processing one.
	Code  string
	State string
}

// ParamsFromValues lifts an inbound OAuth callback's query parameters into
// a SessionParams. The sandbox flag is set by the parameter's presence,
// whatever its value. RedirectURL is left for the caller to fill in.
func ParamsFromValues(values url.Values) SessionParams {
	return SessionParams{
		Sandbox: values.Has("sandbox"),
		Code:    values.Get("code"),
		State:   values.Get("state"),
	}
}
