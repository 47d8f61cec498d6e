// Package sessions declares the server-side session store used by the
// browser login paths (form and OAuth2).
package sessions

import (
	"context"
	"time"

	"github.com/acamacho/dulceria/internal/server/models"
)

// Repository manages browser sessions. The store enforces the
// one-live-session-per-account rule: Replace discards whatever session the
// account had before inserting the new one.
type Repository interface {
	// Replace deletes any existing sessions for userID and inserts a new
	// one with the given expiry instant. Run it inside a transaction to
	// make the swap atomic.
	Replace(ctx context.Context, userID int64, token string, expires time.Time) error

	// Find looks a session up by its opaque token, common.ErrNotFound when
	// absent (including when displaced by a newer login).
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete removes a session by token. Deleting a non-existent session
	// is not an error.
	Delete(ctx context.Context, token string) error
}
