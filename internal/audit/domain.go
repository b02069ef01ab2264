// Package audit keeps an append-only trail of security-relevant
// events: logins, failed logins and role changes.
package audit

import "time"

// Event is one recorded occurrence.
type Event struct {
	ID        int64
	ActorID   int64
	Action    string
	Detail    string
	CreatedAt time.Time
}

// Actions recorded by the application.
const (
	ActionLogin       = "auth.login"
	ActionLoginFailed = "auth.login_failed"
	ActionRefresh     = "auth.refresh"
	ActionLogout      = "auth.logout"
	ActionRoleChange  = "users.role_change"
)
