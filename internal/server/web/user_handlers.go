package web

import (
	"net/http"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/server/models"
)

// currentUser loads the account behind the request's principal. The policy
// guarantees a principal exists on the routes that call this; a missing
// account (deleted mid-session) comes back as ErrUnauthorized.
func (s *Server) currentUser(r *http.Request) (*models.User, error) {
	principal := PrincipalFrom(r.Context())
	if principal == nil {
		return nil, common.ErrUnauthorized
	}
	user, err := s.users.Profile(r.Context(), principal.Username)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

type profileView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
	Provider string `json:"provider,omitempty"`
}

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileView{
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Bio:      user.Bio,
		Role:     user.RoleName,
		Provider: user.Provider.String,
	})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
		Bio   string `json:"bio"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.UpdateProfile(r.Context(), user.ID, req.Email, req.Phone, req.Bio); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyReviews(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	list, err := s.reviews.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewViews(list))
}

func (s *Server) handleReviewCreate(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req struct {
		ProductID int64  `json:"productId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := s.reviews.Create(r.Context(), user.ID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	review.Username = user.Username
	writeJSON(w, http.StatusCreated, toReviewViews([]*models.Review{review})[0])
}

func (s *Server) handleReviewUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.reviews.Update(r.Context(), id, user.ID, req.Rating, req.Comment); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewDelete(w http.ResponseWriter, r *http.Request) {
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

	principal := PrincipalFrom(r.Context())
	if err := s.reviews.Delete(r.Context(), id, user.ID, principal.IsAdmin()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
