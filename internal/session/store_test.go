package session

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore() (*Store, *MemoryTier, *MemoryTier) {
	durable, ephemeral := NewMemoryTier(), NewMemoryTier()
	return NewStore(durable, ephemeral), durable, ephemeral
}

func TestStore_LoginRemember(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()

	require.NoError(t, store.Login("T", true))

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "T", token)
	_, err := ephemeral.Load()
	assert.ErrorIs(t, err, ErrNoToken, "ephemeral tier must be empty")
	stored, _ := durable.Load()
	assert.Equal(t, "T", stored)
}

func TestStore_LoginEphemeralReplacesDurable(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()

	require.NoError(t, store.Login("T", true))
	require.NoError(t, store.Login("T2", false))

	_, err := durable.Load()
	assert.ErrorIs(t, err, ErrNoToken, "durable tier must be empty")
	stored, _ := ephemeral.Load()
	assert.Equal(t, "T2", stored)

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "T2", token)
}

func TestStore_Logout(t *testing.T) {
	cases := map[string]func(*Store){
		"nothing stored": func(*Store) {},
		"durable":        func(s *Store) { _ = s.Login("T", true) },
		"ephemeral":      func(s *Store) { _ = s.Login("T", false) },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			store, _, _ := newMemoryStore()
			setup(store)

			require.NoError(t, store.Logout())

			_, ok := store.Token()
			assert.False(t, ok)
			assert.False(t, store.IsAuthenticated())
		})
	}
}

func TestStore_TokenPrefersDurable(t *testing.T) {
	store, durable, ephemeral := newMemoryStore()
	// Only reachable when something outside the store wrote both tiers.
	require.NoError(t, durable.Save("D"))
	require.NoError(t, ephemeral.Save("E"))

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "D", token)
}

func TestStore_RejectsEmptyToken(t *testing.T) {
	store, _, _ := newMemoryStore()
	assert.Error(t, store.Login("", true))
	assert.False(t, store.IsAuthenticated())
}

type failingTier struct{ MemoryTier }

func (f *failingTier) Save(string) error { return errors.New("disk full") }

func TestStore_FailedSaveLeavesNoStaleCopy(t *testing.T) {
	durable := &failingTier{}
	ephemeral := NewMemoryTier()
	store := NewStore(durable, ephemeral)

	require.NoError(t, store.Login("OLD", false))
	err := store.Login("NEW", true)
	require.Error(t, err)

	_, ok := store.Token()
	assert.False(t, ok, "the previous token must not survive a failed switch of tiers")
}

func TestFileTier(t *testing.T) {
	fs := afero.NewMemMapFs()
	tier := NewFileTier(fs, "/home/u/.config/capsule/"+DurableKey)

	_, err := tier.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, tier.Save("abc"))
	token, err := tier.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	info, err := fs.Stat(tier.Path())
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	require.NoError(t, tier.Clear())
	require.NoError(t, tier.Clear(), "clearing twice is fine")
	exists, err := afero.Exists(fs, tier.Path())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileTiers_DistinctPaths(t *testing.T) {
	durable, ephemeral, err := FileTiers(afero.NewMemMapFs(), "/tmp/capsule-test")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/capsule-test/"+DurableKey, durable.Path())
	assert.NotEqual(t, durable.Path(), ephemeral.Path())
	assert.Contains(t, ephemeral.Path(), EphemeralKey)
}

func TestStore_WithFileTiers(t *testing.T) {
	fs := afero.NewMemMapFs()
	durable, ephemeral, err := FileTiers(fs, "/cfg")
	require.NoError(t, err)
	store := NewStore(durable, ephemeral)

	require.NoError(t, store.Login("T", false))

	// A second store over the same files sees the same session.
	other := NewStore(durable, ephemeral)
	token, ok := other.Token()
	assert.True(t, ok)
	assert.Equal(t, "T", token)

	require.NoError(t, other.Logout())
	assert.False(t, store.IsAuthenticated())
}
