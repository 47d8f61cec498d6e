package web

import (
	"net/http"

	"github.com/acamacho/dulceria/internal/server/models"
)

type productRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageKey    string  `json:"imageKey"`
	Description string  `json:"description"`
	Ingredients string  `json:"ingredients"`
}

func (s *Server) handleAdminProductCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.products.Create(r.Context(), &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		ImageKey:    req.ImageKey,
		Description: req.Description,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductView(p))
}

func (s *Server) handleAdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.products.Update(r.Context(), &models.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		ImageKey:    req.ImageKey,
		Description: req.Description,
		Ingredients: req.Ingredients,
	}); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type userView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Provider string `json:"provider,omitempty"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.RoleName,
		Provider: u.Provider.String,
	}
}

func (s *Server) handleAdminUserList(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]userView, 0, len(list))
	for _, u := range list {
		out = append(out, toUserView(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAdminUserGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(u))
}

func (s *Server) handleAdminUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.UpdateRole(r.Context(), id, req.Role); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminUserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminReviewDelete(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}
	if err := s.reviews.Delete(r.Context(), id, user.ID, true); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminImagePresign mints a fresh object key plus a presigned PUT URL
// the admin frontend uploads the image to directly.
func (s *Server) handleAdminImagePresign(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.images.GetPresignedPutURL(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "object storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"key":       key,
		"uploadUrl": url,
	})
}
