package web

import (
	"net/http"
	"strings"

	"github.com/acamacho/dulceria/internal/server/services"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleAPILogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
	Bio             string `json:"bio"`
}

func (s *Server) handleAPIRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), services.RegisterRequest{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Bio:             req.Bio,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"username": user.Username,
		"email":    user.Email,
	})
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	Roles    string `json:"roles,omitempty"`
	Message  string `json:"message,omitempty"`
}

// handleAPIValidate inspects the presented bearer token without requiring an
// authenticated request: missing or invalid tokens yield a 401 with
// valid=false and a message. Roles echoes the token's comma-joined claim.
func (s *Server) handleAPIValidate(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		writeJSON(w, http.StatusUnauthorized, validateResponse{Valid: false, Message: "missing bearer token"})
		return
	}

	claims, err := s.tokens.Claims(header[len(bearerPrefix):])
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, validateResponse{Valid: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Valid:    true,
		Username: claims.Subject,
		Roles:    claims.Roles,
	})
}

func (s *Server) handleAPIMe(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFrom(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := s.users.Profile(r.Context(), principal.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username": user.Username,
		"email":    user.Email,
		"roles":    principal.Authorities,
	})
}
