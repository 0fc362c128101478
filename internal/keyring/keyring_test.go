package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestKeyringRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	const id = "9b2f0c1e-0000-4000-8000-000000000001"

	assert.False(t, HasPassword(id))
	_, err := GetPassword(id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SavePassword(id, []byte("s3cret")))
	assert.True(t, HasPassword(id))

	got, err := GetPassword(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), got)

	require.NoError(t, DeletePassword(id))
	assert.False(t, HasPassword(id))
}

func TestDeleteMissingIsNoop(t *testing.T) {
	gokeyring.MockInit()
	assert.NoError(t, DeletePassword("missing"))
}
