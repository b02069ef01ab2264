package users

import (
	"errors"
	"time"

	"github.com/taskhive/taskhive/internal/access"
)

// ErrSelfPromotion rejects a role change where the acting principal is
// its own target. Checked before any role computation runs.
var ErrSelfPromotion = errors.New("Can't self promote!!!")

// User represents a user account for management.
type User struct {
	ID        int64
	Username  string
	Email     string
	Role      access.Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleChangeRequest describes a requested change to a target user's
// role: either an explicit new role, a promote/demote direction, or
// neither (a no-op).
type RoleChangeRequest struct {
	TargetID int64
	NewRole  *access.Role
	Change   access.RoleChange
}
