package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

func newTestDriver(t *testing.T) *db.Driver {
	t.Helper()
	d, err := db.Open(db.Config{
		Kind:     store.KindSqlite,
		Location: filepath.Join(t.TempDir(), "turndb"),
		Hash:     model.HashSHA1,
	})
	require.NoError(t, err)
	d.SuppressSuccessLog()
	return d
}

func TestUserKeys(t *testing.T) {
	ctx := context.Background()
	d := newTestDriver(t)

	require.NoError(t, addUser(ctx, d, model.HashSHA1, "north.gov", "ninefingers", "youhavetoberealistic"))

	key, err := storedKey(ctx, d, "north.gov", "ninefingers")
	require.NoError(t, err)
	assert.Equal(t, "bc807ee29df3c9ffa736523fb2c4e8ee", key)

	_, err = storedKey(ctx, d, "north.gov", "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetRealmOptions(t *testing.T) {
	ctx := context.Background()
	d := newTestDriver(t)

	assert.Error(t, setRealmOptions(ctx, d, "north.gov", nil))

	err := setRealmOptions(ctx, d, "north.gov", map[model.RealmOptionName]int64{
		model.OptionUserQuota: 4,
		model.OptionMaxBps:    1000,
	})
	require.NoError(t, err)

	err = setRealmOptions(ctx, d, "north.gov", map[model.RealmOptionName]int64{model.OptionTotalQuota: 0})
	assert.ErrorIs(t, err, store.ErrInvalidValue)

	options := store.Collect[model.RealmOption]()
	n, err := d.ListRealmOptions(ctx, "north.gov", options)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLoadRealms(t *testing.T) {
	ctx := context.Background()
	d := newTestDriver(t)

	require.NoError(t, d.AddOrigin(ctx, "https://carleon.example", "north.gov"))
	require.NoError(t, d.AddOrigin(ctx, "https://adua.example", "union.gov"))
	require.NoError(t, d.SetRealmOption(ctx, "north.gov", model.OptionMaxBps, 500))

	snapshot, err := loadRealms(ctx, d, realm.Options{UserQuota: 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]realm.Options{
		"north.gov": {MaxBPS: 500, UserQuota: 2},
		"union.gov": {UserQuota: 2},
	}, snapshot.Realms)

	var buf bytes.Buffer
	printRealms(&buf, snapshot)
	out := buf.String()
	assert.Contains(t, out, "https://adua.example ==>> union.gov")
	assert.Less(t, strings.Index(out, "north.gov"), strings.Index(out, "union.gov"))
}

func TestNewOAuthKey(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		before := time.Now().Unix()
		key, err := newOAuthKey("", "", 0, 0, "A256GCM", "")
		require.NoError(t, err)

		assert.Len(t, key.KID, 36)
		material, err := base64.StdEncoding.DecodeString(key.IKMKey)
		require.NoError(t, err)
		assert.Len(t, material, 32)
		assert.GreaterOrEqual(t, key.Timestamp, before)
	})

	t.Run("explicit", func(t *testing.T) {
		key, err := newOAuthKey("north-1", "aWtt", 10, 3600, "A128GCM", "north.gov")
		require.NoError(t, err)
		assert.Equal(t, model.OAuthKey{
			KID: "north-1", IKMKey: "aWtt", Timestamp: 10, Lifetime: 3600, AsRsAlg: "A128GCM", Realm: "north.gov",
		}, key)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := newOAuthKey("k", "not base64!", 0, 0, "A256GCM", "")
		assert.Error(t, err)
		_, err = newOAuthKey("k", "", 0, -1, "A256GCM", "")
		assert.Error(t, err)
		_, err = newOAuthKey("k", "", 0, 0, "HS256", "")
		assert.Error(t, err)
	})
}

func TestAdminPasswords(t *testing.T) {
	ctx := context.Background()
	d := newTestDriver(t)

	require.NoError(t, addAdmin(ctx, d, "glokta", "north.gov", "practicals"))

	stored, err := d.GetAdminUser(ctx, "glokta")
	require.NoError(t, err)
	assert.NotEqual(t, "practicals", stored.Password)

	realmName, err := checkAdmin(ctx, d, "glokta", "practicals")
	require.NoError(t, err)
	assert.Equal(t, "north.gov", realmName)

	_, err = checkAdmin(ctx, d, "glokta", "wrong")
	assert.ErrorIs(t, err, errBadPassword)

	_, err = checkAdmin(ctx, d, "bayaz", "magus")
	assert.ErrorIs(t, err, errBadPassword)
}

func TestPing(t *testing.T) {
	assert.NoError(t, ping(context.Background(), newTestDriver(t)))
}

func TestWaitForServer(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		addr := strings.TrimPrefix(srv.URL, "http://")
		assert.NoError(t, waitForServer(addr, 3, time.Millisecond))
	})

	t.Run("not ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		addr := strings.TrimPrefix(srv.URL, "http://")
		assert.Error(t, waitForServer(addr, 2, time.Millisecond))
	})

	t.Run("nothing listening", func(t *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := l.Addr().String()
		require.NoError(t, l.Close())

		assert.Error(t, waitForServer(addr, 2, time.Millisecond))
	})
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"server"}, {"wait"}, {"configuration", "show"}, {"db", "ping"},
		{"user", "add"}, {"user", "delete"}, {"user", "list"}, {"user", "key"},
		{"secret", "add"}, {"secret", "delete"}, {"secret", "list"},
		{"origin", "add"}, {"origin", "delete"}, {"origin", "list"},
		{"realm-option", "set"}, {"realm-option", "list"}, {"realm", "show"},
		{"peer-ip", "add"}, {"peer-ip", "delete"}, {"peer-ip", "list"},
		{"oauth-key", "add"}, {"oauth-key", "show"}, {"oauth-key", "delete"}, {"oauth-key", "list"},
		{"admin", "add"}, {"admin", "delete"}, {"admin", "list"}, {"admin", "check"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
