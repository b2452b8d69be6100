// Package server exposes workspace operations over HTTP for external
// UI surfaces. It is a thin facade: every route maps onto one engine
// operation, and the engine's single-writer contract is upheld with a
// per-workspace mutex at this boundary.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/cache"
	apperrors "github.com/weftlabs/blockloom/pkg/errors"
	"github.com/weftlabs/blockloom/pkg/store"
	"github.com/weftlabs/blockloom/pkg/workspace"
)

// artifactTTL bounds how long rendered artifacts stay cached. Entries
// are content-addressed by graph signature, so the TTL only limits
// memory, not correctness.
const artifactTTL = time.Hour

// Server hosts live workspaces and their persistence.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	store  store.Store

	mu         sync.Mutex
	workspaces map[string]*wsEntry
}

// wsEntry serializes access to one workspace. The engine assumes a
// single writer; concurrent HTTP requests for the same workspace are
// funneled through this mutex.
type wsEntry struct {
	mu sync.Mutex
	ws *workspace.Workspace
}

// New creates a server. A nil cache disables artifact caching and a
// nil store disables persistence routes; the logger is required.
func New(logger *log.Logger, c cache.Cache, st store.Store) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{
		logger:     logger,
		cache:      c,
		store:      st,
		workspaces: make(map[string]*wsEntry),
	}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/workspaces", func(r chi.Router) {
		r.Post("/", s.handleCreateWorkspace)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWorkspace)
			r.Delete("/", s.handleDeleteWorkspace)

			r.Post("/blocks", s.handleAddBlock)
			r.Delete("/blocks/{blockID}", s.handleRemoveBlock)
			r.Post("/blocks/{blockID}/move", s.handleMoveBlock)
			r.Post("/blocks/{blockID}/properties", s.handleSetProperties)

			r.Post("/connect", s.handleConnect)
			r.Post("/disconnect", s.handleDisconnect)

			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)

			r.Post("/validate", s.handleValidate)
			r.Get("/graph.dot", s.handleRenderDOT)
			r.Get("/graph.svg", s.handleRenderSVG)

			if s.store != nil {
				r.Post("/save", s.handleSave)
			}
		})
	})

	if s.store != nil {
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{id}", s.handleGetDocument)
	}

	return r
}

// entry returns the workspace entry for id, or nil if unknown.
func (s *Server) entry(id string) *wsEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workspaces[id]
}

// withWorkspace looks up the workspace, locks it, runs fn, and unlocks.
// Writes a 404 when the workspace does not exist.
func (s *Server) withWorkspace(w http.ResponseWriter, id string, fn func(ws *workspace.Workspace)) {
	e := s.entry(id)
	if e == nil {
		s.writeError(w, http.StatusNotFound,
			apperrors.New(apperrors.ErrCodeWorkspaceNotFound, "workspace %s not found", id))
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.ws)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{
		"code":  string(apperrors.GetCode(err)),
		"error": apperrors.UserMessage(err),
	})
}

// newWorkspaceID generates an identifier for a hosted workspace.
func newWorkspaceID() string { return blockgraph.NewBlockID() }
