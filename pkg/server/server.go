package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/relaydb/pkg/log"
	"github.com/doodlesbykumbi/relaydb/pkg/reload"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

type Server struct {
	Driver   store.Driver
	Reloader *reload.Reloader
	Router   *mux.Router
	srv      *http.Server
}

func NewServer(driver store.Driver, reloader *reload.Reloader, addr string, access io.Writer) *Server {
	router := mux.NewRouter().UseEncodedPath()
	s := &Server{
		Driver:   driver,
		Reloader: reloader,
		Router:   router,
		srv: &http.Server{
			Handler:      handlers.LoggingHandler(access, router),
			Addr:         addr,
			WriteTimeout: 15 * time.Second,
			ReadTimeout:  15 * time.Second,
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/", s.handleStatus()).Methods("GET")
	s.Router.HandleFunc("/realms", s.handleRealms()).Methods("GET")
	s.Router.HandleFunc("/realms/{realm}/options", s.handleRealmOptions()).Methods("GET")
	s.Router.HandleFunc("/origins/{origin}", s.handleOrigin()).Methods("GET")
	s.Router.HandleFunc("/reload", s.handleReload()).Methods("POST")
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		log.Info().Str("address", s.srv.Addr).Msg("status server listening")
		errs <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
