package web

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/acamacho/dulceria/internal/dbx"
	"github.com/acamacho/dulceria/internal/server/models"
	"github.com/acamacho/dulceria/internal/server/repositories/repomanager"
)

const sessionCookieName = "DULCERIA_SESSION"

// SessionManager issues and resolves browser sessions. Each account holds at
// most one live session: logging in from a second browser displaces the
// first, whose next request comes back unauthenticated.
type SessionManager struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validity    time.Duration
	now         func() time.Time
}

func NewSessionManager(db *sql.DB, m repomanager.RepositoryManager, validity time.Duration) *SessionManager {
	return &SessionManager{db: db, repomanager: m, validity: validity, now: time.Now}
}

// Issue creates a session for the account, displacing any previous one, and
// sets the session cookie on the response.
func (m *SessionManager) Issue(ctx context.Context, w http.ResponseWriter, userID int64) error {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return common.ErrInternal
	}

	expires := m.now().Add(m.validity)
	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return m.repomanager.Sessions(tx).Replace(ctx, userID, token, expires)
	})
	if err != nil {
		return common.ErrInternal
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.validity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve loads the account behind the request's session cookie. It returns
// (nil, nil) when there is no cookie or no live session, and ErrTokenExpired
// when the session exists but has lapsed.
func (m *SessionManager) Resolve(r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	session, err := m.repomanager.Sessions(m.db).Find(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, common.ErrInternal
	}
	if !m.now().Before(session.Expires) {
		_ = m.repomanager.Sessions(m.db).Delete(r.Context(), cookie.Value)
		return nil, common.ErrTokenExpired
	}

	user, err := m.repomanager.Users(m.db).FindByID(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

// Destroy deletes the request's session, if any, and clears the cookie.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		_ = m.repomanager.Sessions(m.db).Delete(r.Context(), cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
