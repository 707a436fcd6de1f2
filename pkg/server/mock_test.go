package server

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// MockDriver implements the store.Driver calls made by the server. Any
// other call panics on the nil embedded interface.
type MockDriver struct {
	store.Driver
	mock.Mock
}

func (m *MockDriver) Kind() store.Kind {
	args := m.Called()
	return args.Get(0).(store.Kind)
}

func (m *MockDriver) Ping(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDriver) ListRealmOptions(ctx context.Context, name string, sink store.Sink[model.RealmOption]) (int, error) {
	args := m.Called(name)
	rows, _ := args.Get(0).([]model.RealmOption)
	for i, o := range rows {
		if err := sink.Put(o); err != nil {
			return i, err
		}
	}
	return len(rows), args.Error(1)
}

func (m *MockDriver) ReloadRealms(ctx context.Context, table *realm.Table) error {
	args := m.Called()
	if fn, ok := args.Get(0).(func(*realm.Table)); ok {
		fn(table)
	}
	return args.Error(1)
}

func (m *MockDriver) Disconnect(ctx context.Context) error {
	return nil
}
