package web

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/acamacho/dulceria/internal/logging"
	"github.com/acamacho/dulceria/internal/server/auth"
	sc "github.com/acamacho/dulceria/internal/server/config"
	"github.com/acamacho/dulceria/internal/server/repositories/repomanager"
	"github.com/acamacho/dulceria/internal/server/services"
)

// Server is the HTTP front of the application: routing, authentication
// middleware, and the handlers.
type Server struct {
	address     string
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	policy   *AccessPolicy
	tokens   *auth.TokenService
	sessions *SessionManager
	oauth    *OAuthFlow

	users      *services.UserService
	federation *services.FederationService
	products   *services.ProductService
	reviews    *services.ReviewService
	images     *services.ImageService
}

func NewServer(cfg *sc.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager,
	tokens *auth.TokenService, users *services.UserService, federation *services.FederationService,
	products *services.ProductService, reviews *services.ReviewService, images *services.ImageService) *Server {
	return &Server{
		address:     cfg.EndpointAddr,
		logger:      logger.With("module", "http_server"),
		db:          db,
		repomanager: m,
		policy:      NewAccessPolicy(),
		tokens:      tokens,
		sessions:    NewSessionManager(db, m, cfg.SessionValidityDuration),
		oauth:       NewOAuthFlow(cfg),
		users:       users,
		federation:  federation,
		products:    products,
		reviews:     reviews,
		images:      images,
	}
}

// Handler assembles the route table wrapped in the authentication and
// authorization middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages.
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /home", s.handleHome)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleFormLogin)
	mux.HandleFunc("GET /signup", s.handleSignupPage)
	mux.HandleFunc("POST /signup", s.handleFormSignup)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /access-denied", s.handleAccessDenied)
	mux.HandleFunc("GET /admin/home", s.handleAdminHome)
	mux.HandleFunc("GET /user/home", s.handleUserHome)
	mux.HandleFunc("GET /imagenes/{key...}", s.handleImageRedirect)

	// Federated login.
	mux.HandleFunc("GET /oauth2/login", s.handleOAuthLogin)
	mux.HandleFunc("GET /oauth2/callback", s.handleOAuthCallback)

	// Authentication API.
	mux.HandleFunc("POST /api/auth/login", s.handleAPILogin)
	mux.HandleFunc("POST /api/auth/register", s.handleAPIRegister)
	mux.HandleFunc("GET /api/auth/validate", s.handleAPIValidate)
	mux.HandleFunc("GET /api/auth/me", s.handleAPIMe)

	// Public catalog API.
	mux.HandleFunc("GET /api/products", s.handleProductList)
	mux.HandleFunc("GET /api/products/search", s.handleProductSearch)
	mux.HandleFunc("GET /api/products/{id}", s.handleProductGet)
	mux.HandleFunc("GET /api/products/{id}/reviews", s.handleProductReviews)

	// Authenticated user API.
	mux.HandleFunc("GET /api/user/profile", s.handleProfileGet)
	mux.HandleFunc("PUT /api/user/profile", s.handleProfileUpdate)
	mux.HandleFunc("PUT /api/user/password", s.handlePasswordChange)
	mux.HandleFunc("GET /api/user/reviews", s.handleMyReviews)
	mux.HandleFunc("POST /api/user/reviews", s.handleReviewCreate)
	mux.HandleFunc("PUT /api/user/reviews/{id}", s.handleReviewUpdate)
	mux.HandleFunc("DELETE /api/user/reviews/{id}", s.handleReviewDelete)

	// Admin API.
	mux.HandleFunc("POST /api/admin/products", s.handleAdminProductCreate)
	mux.HandleFunc("PUT /api/admin/products/{id}", s.handleAdminProductUpdate)
	mux.HandleFunc("DELETE /api/admin/products/{id}", s.handleAdminProductDelete)
	mux.HandleFunc("GET /api/admin/users", s.handleAdminUserList)
	mux.HandleFunc("GET /api/admin/users/{id}", s.handleAdminUserGet)
	mux.HandleFunc("PUT /api/admin/users/{id}/role", s.handleAdminUserRole)
	mux.HandleFunc("DELETE /api/admin/users/{id}", s.handleAdminUserDelete)
	mux.HandleFunc("DELETE /api/admin/reviews/{id}", s.handleAdminReviewDelete)
	mux.HandleFunc("POST /api/admin/images", s.handleAdminImagePresign)

	return s.authenticate(s.authorize(mux))
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
