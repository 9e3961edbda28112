// Package credentials holds the (user id, access token) pair a completed
// OAuth exchange produces. The SDK only produces and consumes credentials
// in memory; persisting them between processes is the host application's
// responsibility.
package credentials

// Credential proves a completed token exchange with the platform.
type Credential struct {
	UserID      int64
	AccessToken string
}

// Valid reports whether both fields are well-formed: the access token must
// be non-empty. The platform never issues empty tokens, so an empty token
// can only mean the exchange never completed.
func (c Credential) Valid() bool {
	return c.AccessToken != ""
}

// Holder stores the credential for a session and reports authentication
// status. Empty until a token exchange succeeds; cleared only by discarding
// the session (the platform exposes no revoke operation).
type Holder struct {
	cred *Credential
}

// Set stores the credential.
func (h *Holder) Set(c Credential) {
	h.cred = &c
}

// Get returns the stored credential, and false when none is present.
func (h *Holder) Get() (Credential, bool) {
	if h.cred == nil {
		return Credential{}, false
	}
	return *h.cred, true
}

// IsAuthenticated is true iff a well-formed credential is present.
func (h *Holder) IsAuthenticated() bool {
	return h.cred != nil && h.cred.Valid()
}
