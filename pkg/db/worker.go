package db

import (
	"context"

	"github.com/doodlesbykumbi/relaydb/pkg/gate"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// Worker is the database state of one goroutine: its gate owner token and
// at most one open backend handle. A Worker must not be used by two
// goroutines at once.
type Worker struct {
	owner gate.Owner
	conn  store.Conn
}

func NewWorker() *Worker {
	return &Worker{owner: gate.NewOwner()}
}

func (w *Worker) Owner() gate.Owner {
	return w.owner
}

// Connected reports whether the worker holds an open handle.
func (w *Worker) Connected() bool {
	return w.conn != nil
}

type workerKey struct{}

// WithWorker returns a context carrying w.
func WithWorker(ctx context.Context, w *Worker) context.Context {
	return context.WithValue(ctx, workerKey{}, w)
}

// WorkerFrom returns the worker carried by ctx.
func WorkerFrom(ctx context.Context) (*Worker, bool) {
	w, ok := ctx.Value(workerKey{}).(*Worker)
	return w, ok && w != nil
}
