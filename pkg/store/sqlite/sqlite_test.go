package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

func openTestConn(t *testing.T) store.Conn {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "turndb")

	conn, err := NewBackend().Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.InitSchema(ctx))
	return conn
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "turndb")
	conn, err := NewBackend().Open(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.InitSchema(context.Background()))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_ParentIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewBackend().Open(context.Background(), filepath.Join(file, "turndb"))
	assert.Error(t, err)
}

func TestOpen_RejectsInMemory(t *testing.T) {
	for _, path := range []string{":memory:", "file::memory:?cache=shared", "file:turndb?mode=memory", ""} {
		_, err := NewBackend().Open(context.Background(), path)
		assert.ErrorIs(t, err, ErrInMemory, path)
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	conn := openTestConn(t)
	assert.NoError(t, conn.InitSchema(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)

	require.NoError(t, conn.UpsertUser(ctx, model.Credential{Realm: "north.gov", Name: "gorst", HMACKey: "aa"}))
	require.NoError(t, conn.UpsertUser(ctx, model.Credential{Realm: "north.gov", Name: "bayaz", HMACKey: "bb"}))
	require.NoError(t, conn.UpsertUser(ctx, model.Credential{Realm: "south.gov", Name: "ardee", HMACKey: "cc"}))
	require.NoError(t, conn.UpsertUser(ctx, model.Credential{Realm: "north.gov", Name: "gorst", HMACKey: "dd"}))

	key, err := conn.UserKey(ctx, "north.gov", "gorst")
	require.NoError(t, err)
	assert.Equal(t, "dd", key)

	_, err = conn.UserKey(ctx, "south.gov", "gorst")
	assert.ErrorIs(t, err, store.ErrNotFound)

	all, err := conn.Users(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []model.Credential{
		{Realm: "north.gov", Name: "bayaz"},
		{Realm: "north.gov", Name: "gorst"},
		{Realm: "south.gov", Name: "ardee"},
	}, all)

	north, err := conn.Users(ctx, "north.gov")
	require.NoError(t, err)
	assert.Len(t, north, 2)

	require.NoError(t, conn.DeleteUser(ctx, "north.gov", "gorst"))
	_, err = conn.UserKey(ctx, "north.gov", "gorst")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSecrets(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)

	for _, s := range []model.Secret{
		{Realm: "north.gov", Value: "s2"},
		{Realm: "north.gov", Value: "s1"},
		{Realm: "south.gov", Value: "s3"},
	} {
		require.NoError(t, conn.UpsertSecret(ctx, s))
	}
	require.NoError(t, conn.UpsertSecret(ctx, model.Secret{Realm: "north.gov", Value: "s1"}))

	values, err := conn.SecretsForRealm(ctx, "north.gov")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, values)

	all, err := conn.Secrets(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []model.Secret{
		{Realm: "north.gov", Value: "s1"},
		{Realm: "north.gov", Value: "s2"},
		{Realm: "south.gov", Value: "s3"},
	}, all)

	require.NoError(t, conn.DeleteSecret(ctx, "north.gov", "s1"))
	values, err = conn.SecretsForRealm(ctx, "north.gov")
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, values)

	require.NoError(t, conn.DeleteRealmSecrets(ctx, "north.gov"))
	values, err = conn.SecretsForRealm(ctx, "north.gov")
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = conn.SecretsForRealm(ctx, "south.gov")
	require.NoError(t, err)
	assert.Equal(t, []string{"s3"}, values)
}

func TestOriginsAndRealmOptions(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)

	require.NoError(t, conn.UpsertOrigin(ctx, model.OriginRealm{Origin: "https://b.example", Realm: "north.gov"}))
	require.NoError(t, conn.UpsertOrigin(ctx, model.OriginRealm{Origin: "https://a.example", Realm: "north.gov"}))
	require.NoError(t, conn.UpsertOrigin(ctx, model.OriginRealm{Origin: "https://a.example", Realm: "south.gov"}))

	origins, err := conn.Origins(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []model.OriginRealm{
		{Origin: "https://b.example", Realm: "north.gov"},
		{Origin: "https://a.example", Realm: "south.gov"},
	}, origins)

	require.NoError(t, conn.DeleteOrigin(ctx, "https://b.example"))
	origins, err = conn.Origins(ctx, "north.gov")
	require.NoError(t, err)
	assert.Empty(t, origins)

	require.NoError(t, conn.UpsertRealmOption(ctx, model.RealmOption{Realm: "north.gov", Opt: "user-quota", Value: "5"}))
	require.NoError(t, conn.UpsertRealmOption(ctx, model.RealmOption{Realm: "north.gov", Opt: "max-bps", Value: "1000"}))
	require.NoError(t, conn.UpsertRealmOption(ctx, model.RealmOption{Realm: "north.gov", Opt: "max-bps", Value: "2000"}))

	opts, err := conn.RealmOptions(ctx, "north.gov")
	require.NoError(t, err)
	assert.Equal(t, []model.RealmOption{
		{Realm: "north.gov", Opt: "max-bps", Value: "2000"},
		{Realm: "north.gov", Opt: "user-quota", Value: "5"},
	}, opts)
}

func TestIPRanges(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)

	allowed := model.IPRange{Kind: model.IPKindAllowed, Realm: "north.gov", Range: "10.0.0.0/8"}
	denied := model.IPRange{Kind: model.IPKindDenied, Realm: "north.gov", Range: "192.168.0.1"}
	require.NoError(t, conn.UpsertIPRange(ctx, allowed))
	require.NoError(t, conn.UpsertIPRange(ctx, allowed))
	require.NoError(t, conn.UpsertIPRange(ctx, denied))

	got, err := conn.IPRanges(ctx, model.IPKindAllowed, "")
	require.NoError(t, err)
	assert.Equal(t, []model.IPRange{allowed}, got)

	got, err = conn.IPRanges(ctx, model.IPKindDenied, "north.gov")
	require.NoError(t, err)
	assert.Equal(t, []model.IPRange{denied}, got)

	require.NoError(t, conn.DeleteIPRange(ctx, allowed))
	got, err = conn.IPRanges(ctx, model.IPKindAllowed, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = conn.IPRanges(ctx, model.IPKind(9), "")
	assert.Error(t, err)
}

func TestOAuthKeys(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)

	k2 := model.OAuthKey{KID: "k2", IKMKey: "aWtt", Timestamp: 10, Lifetime: 3600, AsRsAlg: "A256GCM", Realm: "north.gov"}
	k1 := model.OAuthKey{KID: "k1", IKMKey: "a2V5", AsRsAlg: "A128GCM"}
	require.NoError(t, conn.UpsertOAuthKey(ctx, k2))
	require.NoError(t, conn.UpsertOAuthKey(ctx, k1))

	got, err := conn.OAuthKey(ctx, "k2")
	require.NoError(t, err)
	assert.Equal(t, k2, *got)

	_, err = conn.OAuthKey(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	keys, err := conn.OAuthKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.OAuthKey{k1, k2}, keys)

	require.NoError(t, conn.DeleteOAuthKey(ctx, "k1"))
	keys, err = conn.OAuthKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.OAuthKey{k2}, keys)
}

func TestAdminUsers(t *testing.T) {
	ctx := context.Background()
	conn := openTestConn(t)

	require.NoError(t, conn.UpsertAdminUser(ctx, model.AdminUser{Name: "glokta", Realm: "north.gov", Password: "h1"}))
	require.NoError(t, conn.UpsertAdminUser(ctx, model.AdminUser{Name: "bayaz", Password: "h2"}))

	got, err := conn.AdminUser(ctx, "glokta")
	require.NoError(t, err)
	assert.Equal(t, model.AdminUser{Name: "glokta", Realm: "north.gov", Password: "h1"}, *got)

	_, err = conn.AdminUser(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	admins, err := conn.AdminUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.AdminUser{{Name: "bayaz"}, {Name: "glokta", Realm: "north.gov"}}, admins)

	require.NoError(t, conn.DeleteAdminUser(ctx, "bayaz"))
	admins, err = conn.AdminUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestSeparateHandlesShareFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "turndb")

	a, err := NewBackend().Open(ctx, path)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.InitSchema(ctx))

	b, err := NewBackend().Open(ctx, path)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.UpsertSecret(ctx, model.Secret{Realm: "north.gov", Value: "shared"}))
	values, err := b.SecretsForRealm(ctx, "north.gov")
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, values)
}
