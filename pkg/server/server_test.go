package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/reload"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

func publish(table *realm.Table) {
	table.Get("north.gov")
	table.PublishOrigins(map[string]string{"https://a.example": "north.gov"})
}

func newTestServer(t *testing.T, driver *MockDriver, run bool) *Server {
	t.Helper()
	r := reload.New(driver, realm.NewTable(realm.Options{MaxBPS: 10}))
	if run {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = r.Run(ctx)
			close(done)
		}()
		t.Cleanup(func() {
			cancel()
			<-done
		})
	}
	return NewServer(driver, r, "127.0.0.1:0", io.Discard)
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestHandleStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		driver := &MockDriver{}
		driver.On("Ping").Return(nil)
		driver.On("Kind").Return(store.KindSqlite)
		s := newTestServer(t, driver, false)

		w := serve(s, "GET", "/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, StatusResponse{UserDBType: "sqlite", Healthy: true}, resp)
		driver.AssertExpectations(t)
	})

	t.Run("unavailable", func(t *testing.T) {
		driver := &MockDriver{}
		driver.On("Ping").Return(fmt.Errorf("%w: no such host", store.ErrUnavailable))
		driver.On("Kind").Return(store.KindUnknown)
		s := newTestServer(t, driver, false)

		w := serve(s, "GET", "/")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Healthy)
		assert.Equal(t, "unknown", resp.UserDBType)
		assert.Contains(t, resp.Error, "no such host")
	})
}

func TestHandleRealms(t *testing.T) {
	driver := &MockDriver{}
	driver.On("ReloadRealms").Return(publish, nil)
	s := newTestServer(t, driver, true)

	w := serve(s, "POST", "/reload")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(s, "GET", "/realms")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp RealmsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]realm.Options{"north.gov": {MaxBPS: 10}}, resp.Realms)
	assert.Equal(t, map[string]string{"https://a.example": "north.gov"}, resp.Origins)
	assert.Equal(t, "api", resp.Reload.LastReason)
}

func TestHandleOrigin(t *testing.T) {
	driver := &MockDriver{}
	driver.On("ReloadRealms").Return(publish, nil)
	s := newTestServer(t, driver, true)
	require.NoError(t, s.Reloader.Trigger(context.Background(), "test"))

	t.Run("known origin", func(t *testing.T) {
		w := serve(s, "GET", "/origins/https%3A%2F%2Fa.example")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"origin":"https://a.example","realm":"north.gov"}`, w.Body.String())
	})

	t.Run("unknown origin", func(t *testing.T) {
		w := serve(s, "GET", "/origins/https%3A%2F%2Fb.example")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"origin not found"}`, w.Body.String())
	})
}

func TestHandleRealmOptions(t *testing.T) {
	t.Run("lists stored options", func(t *testing.T) {
		driver := &MockDriver{}
		driver.On("ListRealmOptions", "north.gov").Return([]model.RealmOption{
			{Realm: "north.gov", Opt: "max-bps", Value: "1000"},
			{Realm: "north.gov", Opt: "user-quota", Value: "4"},
		}, nil)
		s := newTestServer(t, driver, false)

		w := serve(s, "GET", "/realms/north.gov/options")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"realm":"north.gov","options":{"max-bps":"1000","user-quota":"4"}}`, w.Body.String())
		driver.AssertExpectations(t)
	})

	t.Run("backend error", func(t *testing.T) {
		driver := &MockDriver{}
		driver.On("ListRealmOptions", mock.Anything).Return(nil, fmt.Errorf("%w: list realm options: boom", store.ErrBackend))
		s := newTestServer(t, driver, false)

		w := serve(s, "GET", "/realms/north.gov/options")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleReload(t *testing.T) {
	t.Run("success returns status", func(t *testing.T) {
		driver := &MockDriver{}
		driver.On("ReloadRealms").Return(nil, nil)
		s := newTestServer(t, driver, true)

		w := serve(s, "POST", "/reload")

		assert.Equal(t, http.StatusOK, w.Code)
		var status reload.Status
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "api", status.LastReason)
		assert.GreaterOrEqual(t, status.Count, 2)
	})

	t.Run("unavailable database", func(t *testing.T) {
		driver := &MockDriver{}
		driver.On("ReloadRealms").Return(nil, store.ErrUnavailable)
		s := newTestServer(t, driver, true)

		w := serve(s, "POST", "/reload")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("GET is not allowed", func(t *testing.T) {
		s := newTestServer(t, &MockDriver{}, false)
		w := serve(s, "GET", "/reload")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(store.ErrUnavailable))
	assert.Equal(t, http.StatusNotFound, statusFor(store.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(store.ErrBackend))
}
