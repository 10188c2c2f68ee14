package identity

import (
	"net/http"

	"go.uber.org/zap"

	"IdentStore/pkg/kit"
)

type Server struct {
	Log      *zap.Logger
	Registry *Registry
}

func (s *Server) IssueHandler() http.HandlerFunc { return s.issue }
func (s *Server) SelfHandler() http.HandlerFunc  { return s.self }

// issue hands out a fresh identifier for the username query param.
// Issuance never fails and performs no validation on the username.
func (s *Server) issue(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	id := s.Registry.Issue(username)

	if s.Log != nil {
		s.Log.Info("identifier assigned",
			zap.String("username", username),
			zap.String("id", id.String()),
		)
	}

	kit.WriteJSON(w, http.StatusOK, id.String())
}

type identityResp struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// self returns the caller's own identity record.
func (s *Server) self(w http.ResponseWriter, r *http.Request) {
	owner, ok := OwnerFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusForbidden, msgMissing, nil)
		return
	}

	username, ok := s.Registry.Lookup(owner)
	if !ok {
		kit.WriteError(w, r, http.StatusForbidden, msgInvalid, nil)
		return
	}

	kit.WriteJSON(w, http.StatusFound, identityResp{
		ID:       owner.String(),
		Username: username,
	})
}
