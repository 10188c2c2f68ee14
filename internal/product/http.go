package product

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"IdentStore/internal/identity"
	"IdentStore/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) CreateHandler() http.HandlerFunc { return s.create }
func (s *Server) GetHandler() http.HandlerFunc    { return s.get }
func (s *Server) UpdateHandler() http.HandlerFunc { return s.update }
func (s *Server) DeleteHandler() http.HandlerFunc { return s.delete }

type createReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.OwnerFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusForbidden, "Please pass your identifier", nil)
		return
	}

	var req createReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p := Product{Name: req.Name, Description: req.Description}

	if err := s.Store.Create(r.Context(), owner, p); err != nil {
		if errors.Is(err, ErrExists) {
			kit.WriteError(w, r, http.StatusConflict, "product already exists", nil)
			return
		}
		s.serverError(w, r, "create product failed", owner, err)
		return
	}

	if s.Log != nil {
		s.Log.Info("product created", zap.String("owner", owner.String()))
	}

	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.OwnerFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusForbidden, "Please pass your identifier", nil)
		return
	}

	p, err := s.Store.Get(r.Context(), owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
			return
		}
		s.serverError(w, r, "get product failed", owner, err)
		return
	}

	kit.WriteJSON(w, http.StatusFound, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.OwnerFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusForbidden, "Please pass your identifier", nil)
		return
	}

	var req updateReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.Store.Update(r.Context(), owner, req.Name, req.Description); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
			return
		}
		s.serverError(w, r, "update product failed", owner, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.OwnerFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusForbidden, "Please pass your identifier", nil)
		return
	}

	if err := s.Store.Delete(r.Context(), owner); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "not found", nil)
			return
		}
		s.serverError(w, r, "delete product failed", owner, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, owner uuid.UUID, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err), zap.String("owner", owner.String()))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
