package credentials_test

import (
	"testing"

	"github.com/jrsteele09/go-payvment/credentials"
	"github.com/stretchr/testify/require"
)

func TestHolderEmpty(t *testing.T) {
	var holder credentials.Holder

	require.False(t, holder.IsAuthenticated())
	_, ok := holder.Get()
	require.False(t, ok)
}

func TestHolderSet(t *testing.T) {
	var holder credentials.Holder

	holder.Set(credentials.Credential{UserID: 42, AccessToken: "tok-1"})

	require.True(t, holder.IsAuthenticated())
	cred, ok := holder.Get()
	require.True(t, ok)
	require.Equal(t, int64(42), cred.UserID)
	require.Equal(t, "tok-1", cred.AccessToken)
}

func TestHolderEmptyTokenNotAuthenticated(t *testing.T) {
	var holder credentials.Holder

	holder.Set(credentials.Credential{UserID: 42})

	require.False(t, holder.IsAuthenticated())
}
