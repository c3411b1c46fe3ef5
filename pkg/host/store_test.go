package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	t.Run("InitialState", func(t *testing.T) {
		assert.Empty(t, store.List())
		_, err := store.Get("h1")
		assert.ErrorIs(t, err, ErrHostNotFound)
	})

	t.Run("PutRejectsInvalid", func(t *testing.T) {
		assert.ErrorIs(t, store.Put(nil), ErrInvalidHost)
		assert.ErrorIs(t, store.Put(&Host{Address: "10.0.0.2"}), ErrInvalidHost)
	})

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, store.Put(&Host{ID: "h1", Name: "Desk", Address: "10.0.0.2", ServerType: ServerCompatible}))

		got, err := store.Get("h1")
		require.NoError(t, err)
		assert.Equal(t, "Desk", got.Name)
		assert.False(t, got.IsPaired())
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		got, err := store.Get("h1")
		require.NoError(t, err)
		got.Name = "mutated"

		again, _ := store.Get("h1")
		assert.Equal(t, "Desk", again.Name)
	})

	t.Run("SetPaired", func(t *testing.T) {
		certBytes := []byte("cert")
		require.NoError(t, store.SetPaired("h1", certBytes))
		certBytes[0] = 'X'

		got, _ := store.Get("h1")
		assert.True(t, got.IsPaired())
		assert.Equal(t, []byte("cert"), got.ServerCert)
		assert.False(t, got.PairedAt.IsZero())

		assert.ErrorIs(t, store.SetPaired("missing", nil), ErrHostNotFound)
	})

	t.Run("Unpair", func(t *testing.T) {
		require.NoError(t, store.Unpair("h1"))
		got, _ := store.Get("h1")
		assert.Equal(t, PairStateNotPaired, got.PairState)
		assert.Nil(t, got.ServerCert)
	})

	t.Run("ListSorted", func(t *testing.T) {
		require.NoError(t, store.Put(&Host{ID: "a0", Address: "10.0.0.3"}))
		hosts := store.List()
		require.Len(t, hosts, 2)
		assert.Equal(t, "a0", hosts[0].ID)
		assert.Equal(t, "h1", hosts[1].ID)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, store.Remove("a0"))
		assert.ErrorIs(t, store.Remove("a0"), ErrHostNotFound)
	})
}

func TestFileStorePersistsPairing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state", HostsFile)

	store := NewFileStore(path)
	require.NoError(t, store.Load()) // missing file is fine
	require.NoError(t, store.Put(&Host{ID: "h1", Address: "10.0.0.2", ServerType: ServerCompatible}))

	// SetPaired writes through without an explicit Save.
	require.NoError(t, store.SetPaired("h1", []byte("pem")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded := NewFileStore(path)
	require.NoError(t, reloaded.Load())
	got, err := reloaded.Get("h1")
	require.NoError(t, err)
	assert.True(t, got.IsPaired())
	assert.Equal(t, []byte("pem"), got.ServerCert)
	assert.Equal(t, ServerCompatible, got.ServerType)
}

func TestFileStoreRollsBackOnSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	// The parent of the hosts file is a regular file, so every Save fails.
	store := NewFileStore(filepath.Join(blocker, HostsFile))
	require.NoError(t, store.Put(&Host{ID: "h", Address: "10.0.0.3"}))

	t.Run("SetPaired", func(t *testing.T) {
		assert.Error(t, store.SetPaired("h", []byte("cert")))

		got, err := store.Get("h")
		require.NoError(t, err)
		assert.False(t, got.IsPaired())
		assert.Nil(t, got.ServerCert)
		assert.True(t, got.PairedAt.IsZero())
	})

	t.Run("Unpair", func(t *testing.T) {
		require.NoError(t, store.MemoryStore.SetPaired("h", []byte("cert")))

		assert.Error(t, store.Unpair("h"))

		got, err := store.Get("h")
		require.NoError(t, err)
		assert.True(t, got.IsPaired())
		assert.Equal(t, []byte("cert"), got.ServerCert)
	})

	t.Run("UnknownHost", func(t *testing.T) {
		assert.ErrorIs(t, store.SetPaired("missing", []byte("cert")), ErrHostNotFound)
	})
}

func TestFileStoreRejectsFutureVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), HostsFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0600))

	assert.Error(t, NewFileStore(path).Load())
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), HostsFile)
	store := NewFileStore(path)
	require.NoError(t, store.Put(&Host{ID: "h1", Address: "x"}))
	require.NoError(t, store.Save())

	require.NoError(t, store.Clear())
	assert.Empty(t, store.List())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	assert.NoError(t, store.Clear())
}

func TestSupportsOTP(t *testing.T) {
	tests := []struct {
		serverType ServerType
		want       bool
	}{
		{ServerUnknown, true},
		{ServerCompatible, true},
		{ServerVendor, false},
	}
	for _, tt := range tests {
		t.Run(tt.serverType.String(), func(t *testing.T) {
			h := &Host{ID: "h", ServerType: tt.serverType}
			assert.Equal(t, tt.want, h.SupportsOTP())
		})
	}
}

func TestParseServerType(t *testing.T) {
	assert.Equal(t, ServerVendor, ParseServerType("vendor"))
	assert.Equal(t, ServerCompatible, ParseServerType("COMPATIBLE"))
	assert.Equal(t, ServerUnknown, ParseServerType("other"))
}

func TestClone(t *testing.T) {
	var nilHost *Host
	assert.Nil(t, nilHost.Clone())

	h := &Host{ID: "h", ServerCert: []byte{1}}
	c := h.Clone()
	c.ServerCert[0] = 2
	assert.Equal(t, byte(1), h.ServerCert[0])
}
