package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/reload"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// StatusResponse is returned by GET /.
type StatusResponse struct {
	UserDBType string `json:"userdb_type"`
	Healthy    bool   `json:"healthy"`
	Error      string `json:"error,omitempty"`
}

// RealmsResponse is returned by GET /realms.
type RealmsResponse struct {
	realm.Snapshot
	Reload reload.Status `json:"reload"`
}

func (s *Server) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{Healthy: true}
		code := http.StatusOK
		if err := s.Driver.Ping(r.Context()); err != nil {
			resp.Healthy = false
			resp.Error = err.Error()
			code = http.StatusServiceUnavailable
		}
		// Kind is read after Ping so that a failed first open shows up.
		resp.UserDBType = s.Driver.Kind().String()
		respondWithJSON(w, code, resp)
	}
}

func (s *Server) handleRealms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, RealmsResponse{
			Snapshot: s.Reloader.Table().Snapshot(),
			Reload:   s.Reloader.Status(),
		})
	}
}

func (s *Server) handleRealmOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := url.PathUnescape(mux.Vars(r)["realm"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		collector := store.Collect[model.RealmOption]()
		if _, err := s.Driver.ListRealmOptions(r.Context(), name, collector); err != nil {
			respondWithError(w, statusFor(err), err.Error())
			return
		}

		options := make(map[string]string, len(collector.Items))
		for _, o := range collector.Items {
			options[o.Opt] = o.Value
		}
		respondWithJSON(w, http.StatusOK, map[string]any{"realm": name, "options": options})
	}
}

func (s *Server) handleOrigin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin, err := url.PathUnescape(mux.Vars(r)["origin"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		name, ok := s.Reloader.Table().RealmForOrigin(origin)
		if !ok {
			respondWithError(w, http.StatusNotFound, "origin not found")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"origin": origin, "realm": name})
	}
}

func (s *Server) handleReload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Reloader.Trigger(r.Context(), "api"); err != nil {
			respondWithError(w, statusFor(err), err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, s.Reloader.Status())
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
