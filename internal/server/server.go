// Package server exposes a bptree.Tree over a small JSON/HTTP API,
// instrumented with structured logging and Prometheus metrics.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/loam-db/bptree/internal/logger"
	"github.com/loam-db/bptree/internal/metrics"
	"github.com/loam-db/bptree/pkg/btree"
)

// Service wraps a string-keyed, string-valued tree with the handlers
// needed to put, get, delete and range-scan it over HTTP. Access to the
// tree is serialized with a mutex: the tree itself is single-threaded
// and assumes no concurrent callers.
type Service struct {
	mu   sync.Mutex
	tree *btree.Tree[string, string]

	log *logger.Logger
	met *metrics.Metrics
}

// NewService constructs a Service around a fresh tree of the given degree.
func NewService(degree int, log *logger.Logger, met *metrics.Metrics) (*Service, error) {
	tree, err := btree.New[string, string](degree)
	if err != nil {
		return nil, err
	}
	return &Service{
		tree: tree,
		log:  log.TreeLogger("default"),
		met:  met,
	}, nil
}

func (s *Service) instrument(op string, fn func()) {
	splitsBefore, mergesBefore, borrowsBefore := s.tree.StructuralCounts()

	start := time.Now()
	fn()
	duration := time.Since(start)

	splitsAfter, mergesAfter, borrowsAfter := s.tree.StructuralCounts()
	s.met.AddStructuralEvents(splitsAfter-splitsBefore, mergesAfter-mergesBefore, borrowsAfter-borrowsBefore)

	s.met.RecordOperation(op, "ok", duration)
	s.met.UpdateShape(s.tree.GetSize(), s.tree.GetHeight())
	s.log.LogMutation(op, "", duration, s.tree.GetSize(), nil)
}

// Routes registers the service's handlers on mux.
func (s *Service) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/kv/", s.handleKey)
	mux.HandleFunc("/range", s.handleRange)
	mux.HandleFunc("/keys", s.handleKeys)
	mux.HandleFunc("/stats", s.handleStats)
}

func (s *Service) handleKey(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/kv/")
	if key == "" {
		http.Error(w, "missing key", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		value, ok := s.tree.Get(key)
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"key": key, "value": value})

	case http.MethodPut:
		var body struct {
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.instrument("put", func() { s.tree.Put(key, body.Value) })
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		var removed bool
		s.instrument("remove", func() { removed = s.tree.Remove(key) })
		if !removed {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Service) handleRange(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	s.mu.Lock()
	defer s.mu.Unlock()

	var values []string
	var err error
	started := time.Now()
	values, err = s.tree.GetRange(start, end)
	s.met.RecordOperation("range", statusOf(err), time.Since(started))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, values)
}

func (s *Service) handleKeys(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.tree.Keys())
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]int{
		"size":   s.tree.GetSize(),
		"height": s.tree.GetHeight(),
		"degree": s.tree.GetMinimumDegree(),
	})
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
