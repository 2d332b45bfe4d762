package adminclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreErrorClearsOnNextSuccess(t *testing.T) {
	store, _ := newFakeUserStore(t, RoleUser)
	ctx := context.Background()

	n := store.Get(ctx, "missing")
	assert.Equal(t, SeverityError, n.Severity)
	assert.Equal(t, "user not found", n.Detail)
	require.Error(t, store.Err())
	assert.False(t, store.Loading())

	n = store.Fetch(ctx)
	require.True(t, n.OK(), n.Detail)
	assert.NoError(t, store.Err())
	assert.False(t, store.Loading())
	assert.Len(t, store.Users(), 1)
}
