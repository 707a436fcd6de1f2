package integration

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// TestBackendContract runs the same driver checks on every backend.
func TestBackendContract(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx := context.Background()
	tc, err := NewTestContext(ctx)
	require.NoError(t, err)
	defer tc.Close(ctx)

	for _, kind := range store.KindValues() {
		location, ok := tc.Locations[kind]
		if !ok {
			continue
		}
		t.Run(kind.String(), func(t *testing.T) {
			require.NoError(t, tc.Reset(ctx, kind))
			d, err := db.Open(db.Config{Kind: kind, Location: location, Hash: model.HashSHA1})
			require.NoError(t, err)
			d.SuppressSuccessLog()

			t.Run("ping", func(t *testing.T) {
				assert.NoError(t, d.Ping(ctx))
				assert.Equal(t, kind, d.Kind())
			})
			t.Run("users", func(t *testing.T) { testUsers(t, d) })
			t.Run("secrets", func(t *testing.T) { testSecrets(t, d) })
			t.Run("origins and options", func(t *testing.T) { testOriginsAndOptions(t, d) })
			t.Run("peer ranges", func(t *testing.T) { testPeerRanges(t, d) })
			t.Run("oauth keys", func(t *testing.T) { testOAuthKeys(t, d) })
			t.Run("admin users", func(t *testing.T) { testAdminUsers(t, d) })
			t.Run("concurrent workers", func(t *testing.T) { testConcurrentWorkers(t, d) })
		})
	}
}

func testUsers(t *testing.T, d *db.Driver) {
	ctx := context.Background()
	key := model.HashSHA1.DeriveKey("ninefingers", "north.gov", "youhavetoberealistic")

	require.NoError(t, d.SetUserKey(ctx, "north.gov", "ninefingers", key))
	require.NoError(t, d.SetUserKey(ctx, "north.gov", "dogman", model.HashSHA1.DeriveKey("dogman", "north.gov", "x")))
	require.NoError(t, d.SetUserKey(ctx, "union.gov", "glokta", model.HashSHA1.DeriveKey("glokta", "union.gov", "y")))

	got, err := d.GetUserKey(ctx, "north.gov", "ninefingers")
	require.NoError(t, err)
	assert.Equal(t, key, got)

	users := store.Collect[model.Credential]()
	n, err := d.ListUsers(ctx, "north.gov", users)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []model.Credential{{Realm: "north.gov", Name: "dogman"}, {Realm: "north.gov", Name: "ninefingers"}}, names(users.Items))

	all := store.Collect[model.Credential]()
	n, err = d.ListUsers(ctx, "", all)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "union.gov", all.Items[2].Realm)

	require.NoError(t, d.DeleteUser(ctx, "north.gov", "dogman"))
	_, err = d.GetUserKey(ctx, "north.gov", "dogman")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func names(creds []model.Credential) []model.Credential {
	out := make([]model.Credential, len(creds))
	for i, c := range creds {
		out[i] = model.Credential{Realm: c.Realm, Name: c.Name}
	}
	return out
}

func testSecrets(t *testing.T, d *db.Driver) {
	ctx := context.Background()

	require.NoError(t, d.SetSecret(ctx, "north.gov", "logen"))
	require.NoError(t, d.SetSecret(ctx, "north.gov", "bethod"))
	require.NoError(t, d.SetSecret(ctx, "north.gov", "logen"))
	require.NoError(t, d.SetSecret(ctx, "union.gov", "sult"))

	secrets, err := d.GetAuthSecrets(ctx, "north.gov")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"logen", "bethod"}, secrets)

	require.NoError(t, d.DeleteSecret(ctx, "north.gov", "bethod"))
	listed := store.Collect[model.Secret]()
	n, err := d.ListSecrets(ctx, "north.gov", listed)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []model.Secret{{Realm: "north.gov", Value: "logen"}}, listed.Items)

	require.NoError(t, d.DeleteSecret(ctx, "north.gov", ""))
	secrets, err = d.GetAuthSecrets(ctx, "north.gov")
	require.NoError(t, err)
	assert.Empty(t, secrets)

	secrets, err = d.GetAuthSecrets(ctx, "union.gov")
	require.NoError(t, err)
	assert.Equal(t, []string{"sult"}, secrets)
}

func testOriginsAndOptions(t *testing.T, d *db.Driver) {
	ctx := context.Background()

	require.NoError(t, d.AddOrigin(ctx, "https://carleon.example", "north.gov"))
	require.NoError(t, d.AddOrigin(ctx, "https://adua.example", "union.gov"))
	require.NoError(t, d.AddOrigin(ctx, "https://adua.example", "north.gov"))
	require.NoError(t, d.SetRealmOption(ctx, "north.gov", model.OptionMaxBps, 1000))
	require.NoError(t, d.SetRealmOption(ctx, "north.gov", model.OptionUserQuota, 4))
	require.NoError(t, d.SetRealmOption(ctx, "north.gov", model.OptionUserQuota, 5))
	assert.ErrorIs(t, d.SetRealmOption(ctx, "north.gov", model.OptionTotalQuota, 0), store.ErrInvalidValue)

	origins := store.Collect[model.OriginRealm]()
	n, err := d.ListOrigins(ctx, "north.gov", origins)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "https://adua.example", origins.Items[0].Origin)

	table := realm.NewTable(realm.Options{TotalQuota: 10})
	require.NoError(t, d.ReloadRealms(ctx, table))
	name, ok := table.RealmForOrigin("https://adua.example")
	require.True(t, ok)
	assert.Equal(t, "north.gov", name)
	north, ok := table.Lookup("north.gov")
	require.True(t, ok)
	assert.Equal(t, realm.Options{MaxBPS: 1000, TotalQuota: 10, UserQuota: 5}, north.Options())

	require.NoError(t, d.DeleteOrigin(ctx, "https://adua.example"))
	require.NoError(t, d.ReloadRealms(ctx, table))
	_, ok = table.RealmForOrigin("https://adua.example")
	assert.False(t, ok)
}

func testPeerRanges(t *testing.T, d *db.Driver) {
	ctx := context.Background()

	require.NoError(t, d.SetIPRange(ctx, model.IPKindDenied, "north.gov", "10.0.0.0/8"))
	require.NoError(t, d.SetIPRange(ctx, model.IPKindDenied, "north.gov", "10.0.0.0/8"))
	require.NoError(t, d.SetIPRange(ctx, model.IPKindDenied, "north.gov", " 172.16.0.1-172.16.0.9 "))
	require.NoError(t, d.SetIPRange(ctx, model.IPKindAllowed, "north.gov", "192.168.0.0/16"))
	assert.ErrorIs(t, d.SetIPRange(ctx, model.IPKindDenied, "north.gov", "carleon"), model.ErrInvalidIPRange)

	denied := store.Collect[model.IPRange]()
	n, err := d.ListIPRanges(ctx, model.IPKindDenied, "north.gov", denied)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "10.0.0.0/8", denied.Items[0].Range)
	assert.Equal(t, "172.16.0.1-172.16.0.9", denied.Items[1].Range)

	require.NoError(t, d.DeleteIPRange(ctx, model.IPKindDenied, "north.gov", "10.0.0.0/8"))
	allowed := store.Collect[model.IPRange]()
	n, err = d.ListIPRanges(ctx, model.IPKindAllowed, "", allowed)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testOAuthKeys(t *testing.T, d *db.Driver) {
	ctx := context.Background()
	key := model.OAuthKey{KID: "north-1", IKMKey: "aWtt", Timestamp: 10, Lifetime: 3600, AsRsAlg: "A256GCM", Realm: "north.gov"}

	require.NoError(t, d.SetOAuthKey(ctx, key))
	require.NoError(t, d.SetOAuthKey(ctx, model.OAuthKey{KID: "adua-1", IKMKey: "a2V5", AsRsAlg: "A128GCM"}))

	got, err := d.GetOAuthKey(ctx, "north-1")
	require.NoError(t, err)
	assert.Equal(t, key, *got)

	keys := store.Collect[model.OAuthKey]()
	n, err := d.ListOAuthKeys(ctx, keys)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "adua-1", keys.Items[0].KID)

	require.NoError(t, d.DeleteOAuthKey(ctx, "north-1"))
	_, err = d.GetOAuthKey(ctx, "north-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testAdminUsers(t *testing.T, d *db.Driver) {
	ctx := context.Background()

	require.NoError(t, d.SetAdminUser(ctx, model.AdminUser{Name: "bayaz", Password: "$2a$10$x"}))
	require.NoError(t, d.SetAdminUser(ctx, model.AdminUser{Name: "glokta", Realm: "union.gov", Password: "$2a$10$y"}))

	got, err := d.GetAdminUser(ctx, "glokta")
	require.NoError(t, err)
	assert.Equal(t, "union.gov", got.Realm)

	admins := store.Collect[model.AdminUser]()
	n, err := d.ListAdminUsers(ctx, admins)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "bayaz", admins.Items[0].Name)

	require.NoError(t, d.DeleteAdminUser(ctx, "bayaz"))
	_, err = d.GetAdminUser(ctx, "bayaz")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testConcurrentWorkers(t *testing.T, d *db.Driver) {
	ctx := context.Background()
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers*2)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := db.NewWorker()
			wctx := db.WithWorker(ctx, w)
			defer func() { _ = d.Disconnect(wctx) }()

			name := string(rune('a' + i))
			errs <- d.SetUserKey(wctx, "concurrent", name, model.HashSHA1.DeriveKey(name, "concurrent", "p"))
			_, err := d.ListUsers(wctx, "concurrent", store.Collect[model.Credential]())
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	users := store.Collect[model.Credential]()
	n, err := d.ListUsers(ctx, "concurrent", users)
	require.NoError(t, err)
	assert.Equal(t, workers, n)
}
