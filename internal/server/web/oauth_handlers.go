package web

import (
	"net/http"
)

func (s *Server) handleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	if err := s.oauth.Begin(w, r); err != nil {
		http.Redirect(w, r, "/login?error=unauthorized", http.StatusFound)
	}
}

// handleOAuthCallback completes the provider round trip: the asserted
// identity is reconciled against local accounts and the browser gets a
// session for whichever account came back.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	identity, err := s.oauth.Callback(r)
	if err != nil {
		s.logger.Warn(r.Context(), "oauth callback rejected", "error", err.Error())
		http.Redirect(w, r, "/login?error=unauthorized", http.StatusFound)
		return
	}

	_, user, err := s.federation.Reconcile(r.Context(), identity)
	if err != nil {
		s.logger.Error(r.Context(), "identity reconciliation failed", "error", err.Error())
		http.Redirect(w, r, "/login?error=unauthorized", http.StatusFound)
		return
	}

	if err := s.sessions.Issue(r.Context(), w, user.ID); err != nil {
		http.Redirect(w, r, "/login?error=unauthorized", http.StatusFound)
		return
	}
	http.Redirect(w, r, roleHome(user), http.StatusFound)
}
