package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/acamacho/dulceria/internal/server/models"
)

type productView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageKey    string  `json:"imageKey"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Ingredients string  `json:"ingredients"`
}

func toProductView(p *models.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		ImageKey:    p.ImageKey,
		Description: p.Description,
		Rating:      p.Rating,
		Ingredients: p.Ingredients,
	}
}

func toProductViews(list []*models.Product) []productView {
	out := make([]productView, 0, len(list))
	for _, p := range list {
		out = append(out, toProductView(p))
	}
	return out
}

type reviewView struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toReviewViews(list []*models.Review) []reviewView {
	out := make([]reviewView, 0, len(list))
	for _, r := range list {
		out = append(out, reviewView{
			ID:        r.ID,
			ProductID: r.ProductID,
			Username:  r.Username,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductViews(list))
}

func (s *Server) handleProductSearch(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductViews(list))
}

func (s *Server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(p))
}

func (s *Server) handleProductReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	list, err := s.reviews.ListByProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewViews(list))
}
