package keyfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/auctionhouse/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentity(t *testing.T, username string) Identity {
	t.Helper()
	_, priv, err := cryptox.GenerateSigningKey()
	require.NoError(t, err)
	serverPub, _, err := cryptox.GenerateSigningKey()
	require.NoError(t, err)
	return Identity{Username: username, PrivateKey: priv, ServerKey: serverPub}
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")
	id := newIdentity(t, "alice")

	path, err := Save(dir, id, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, Path(dir, "alice"), path)
	assert.True(t, Exists(dir, "alice"))
	assert.False(t, Exists(dir, "bob"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), string(id.PrivateKey), "private key must not be stored in the clear")

	got, err := Load(dir, "alice", []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestLoad_WrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	_, err := Save(dir, newIdentity(t, "alice"), []byte("pw"))
	require.NoError(t, err)

	_, err = Load(dir, "alice", []byte("other"))
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir(), "alice", []byte("pw"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_Corrupted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir, "alice"), []byte("{not json"), 0o600))

	_, err := Load(dir, "alice", []byte("pw"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSave_RejectsBadIdentity(t *testing.T) {
	dir := t.TempDir()

	_, err := Save(dir, Identity{}, []byte("pw"))
	require.Error(t, err)

	id := newIdentity(t, "alice")
	id.ServerKey = id.ServerKey[:10]
	_, err = Save(dir, id, []byte("pw"))
	require.ErrorIs(t, err, cryptox.ErrMalformedKey)
}

func TestSave_Overwrites(t *testing.T) {
	dir := t.TempDir()
	first := newIdentity(t, "alice")
	second := newIdentity(t, "alice")

	_, err := Save(dir, first, []byte("pw"))
	require.NoError(t, err)
	_, err = Save(dir, second, []byte("pw2"))
	require.NoError(t, err)

	got, err := Load(dir, "alice", []byte("pw2"))
	require.NoError(t, err)
	assert.Equal(t, second.PrivateKey, got.PrivateKey)
}
