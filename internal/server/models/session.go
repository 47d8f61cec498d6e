package models

import "time"

// Session is a server-side browser session (form or OAuth2 login).
// At most one session exists per account at any time.
type Session struct {
	Token   string
	UserID  int64
	Expires time.Time
}
