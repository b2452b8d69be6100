package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
	"github.com/weftlabs/blockloom/pkg/cache"
	"github.com/weftlabs/blockloom/pkg/challenge"
	apperrors "github.com/weftlabs/blockloom/pkg/errors"
	"github.com/weftlabs/blockloom/pkg/render"
	"github.com/weftlabs/blockloom/pkg/store"
	"github.com/weftlabs/blockloom/pkg/workspace"
)

// =============================================================================
// Workspace lifecycle
// =============================================================================

type createWorkspaceRequest struct {
	// DocumentID optionally restores a saved workspace from the store.
	DocumentID string `json:"document_id,omitempty"`
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req createWorkspaceRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest,
				apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
			return
		}
	}

	var ws *workspace.Workspace
	if req.DocumentID != "" {
		if s.store == nil {
			s.writeError(w, http.StatusBadRequest,
				apperrors.New(apperrors.ErrCodeUnsupported, "no store configured"))
			return
		}
		doc, err := s.store.Get(r.Context(), req.DocumentID)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound,
				apperrors.New(apperrors.ErrCodeNotFound, "document %s not found", req.DocumentID))
			return
		}
		if err != nil {
			s.writeError(w, http.StatusInternalServerError,
				apperrors.Wrap(apperrors.ErrCodeStorage, err, "load document"))
			return
		}
		ws, err = workspace.Load(doc.Graph)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError,
				apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "restore document %s", req.DocumentID))
			return
		}
	} else {
		ws = workspace.New()
	}

	id := newWorkspaceID()
	s.mu.Lock()
	s.workspaces[id] = &wsEntry{ws: ws}
	s.mu.Unlock()

	s.logger.Info("workspace created", "id", id, "restored", req.DocumentID != "")
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		s.writeJSON(w, http.StatusOK, ws.Record())
	})
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.workspaces[id]
	delete(s.workspaces, id)
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound,
			apperrors.New(apperrors.ErrCodeWorkspaceNotFound, "workspace %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Mutations
// =============================================================================

type addBlockRequest struct {
	Category string  `json:"category"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	var req addBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Category == "" {
		s.writeError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidBlock, "category is required"))
		return
	}
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		b := ws.NewBlock(blockgraph.Category(req.Category), blockgraph.Point{X: req.X, Y: req.Y})
		s.writeJSON(w, http.StatusCreated, map[string]string{"id": b.ID})
	})
}

func (s *Server) handleRemoveBlock(w http.ResponseWriter, r *http.Request) {
	blockID := chi.URLParam(r, "blockID")
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		if !ws.RemoveBlock(blockID) {
			s.writeError(w, http.StatusNotFound,
				apperrors.New(apperrors.ErrCodeNotFound, "block %s not found", blockID))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

type moveBlockRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleMoveBlock(w http.ResponseWriter, r *http.Request) {
	var req moveBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	blockID := chi.URLParam(r, "blockID")
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		if !ws.MoveBlock(blockID, blockgraph.Point{X: req.X, Y: req.Y}) {
			s.writeError(w, http.StatusNotFound,
				apperrors.New(apperrors.ErrCodeNotFound, "block %s not found", blockID))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) handleSetProperties(w http.ResponseWriter, r *http.Request) {
	var props map[string]any
	if err := json.NewDecoder(r.Body).Decode(&props); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	blockID := chi.URLParam(r, "blockID")
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		if !ws.SetProperties(blockID, props) {
			s.writeError(w, http.StatusNotFound,
				apperrors.New(apperrors.ErrCodeNotFound, "block %s not found", blockID))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

type connectRequest struct {
	FromBlock string `json:"from_block"`
	FromPort  string `json:"from_port"`
	ToBlock   string `json:"to_block"`
	ToPort    string `json:"to_port"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		ok := ws.Connect(req.FromBlock, req.FromPort, req.ToBlock, req.ToPort)
		s.writeJSON(w, http.StatusOK, map[string]bool{"connected": ok})
	})
}

type disconnectRequest struct {
	Block string `json:"block"`
	Port  string `json:"port"`
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	var req disconnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		ok := ws.Disconnect(req.Block, req.Port)
		s.writeJSON(w, http.StatusOK, map[string]bool{"disconnected": ok})
	})
}

// =============================================================================
// Undo / Redo
// =============================================================================

type historyResponse struct {
	Applied bool `json:"applied"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		applied := ws.Undo()
		s.writeJSON(w, http.StatusOK, historyResponse{
			Applied: applied, CanUndo: ws.CanUndo(), CanRedo: ws.CanRedo(),
		})
	})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		applied := ws.Redo()
		s.writeJSON(w, http.StatusOK, historyResponse{
			Applied: applied, CanUndo: ws.CanUndo(), CanRedo: ws.CanRedo(),
		})
	})
}

// =============================================================================
// Validation and rendering
// =============================================================================

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request"))
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	req, err := challenge.ParseRequirement(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidChallenge, err, "parse requirement"))
		return
	}
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		s.writeJSON(w, http.StatusOK, ws.Check(req))
	})
}

func (s *Server) handleRenderDOT(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		dot := render.ToDOT(ws.Graph(), render.Options{})
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
	})
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	s.withWorkspace(w, chi.URLParam(r, "id"), func(ws *workspace.Workspace) {
		key := cache.Key("svg", ws.Signature())
		if svg, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
			w.Header().Set("Content-Type", "image/svg+xml")
			_, _ = w.Write(svg)
			return
		}

		svg, err := render.RenderSVG(render.ToDOT(ws.Graph(), render.Options{}))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError,
				apperrors.Wrap(apperrors.ErrCodeInternal, err, "render svg"))
			return
		}
		if err := s.cache.Set(r.Context(), key, svg, artifactTTL); err != nil {
			s.logger.Warn("cache artifact", "err", err)
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	})
}

// =============================================================================
// Persistence
// =============================================================================

type saveRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	id := chi.URLParam(r, "id")
	s.withWorkspace(w, id, func(ws *workspace.Workspace) {
		doc := &store.Document{ID: id, Name: req.Name, Graph: ws.Record()}
		if err := s.store.Put(r.Context(), doc); err != nil {
			s.writeError(w, http.StatusInternalServerError,
				apperrors.Wrap(apperrors.ErrCodeStorage, err, "save workspace %s", id))
			return
		}
		s.logger.Info("workspace saved", "id", id, "name", req.Name)
		s.writeJSON(w, http.StatusOK, map[string]string{"document_id": id})
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStorage, err, "list documents"))
		return
	}
	s.writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound,
			apperrors.New(apperrors.ErrCodeNotFound, "document %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStorage, err, "get document %s", id))
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}
