package auth

import (
	apperrors "hospital/internal/errors"
	"hospital/internal/model"
)

// IsAdmin reports whether id holds the admin role.
func IsAdmin(id Identity) bool {
	return id.Role == model.RoleAdmin
}

// IsSelfOrAdmin reports whether id may act on the user targetID.
func IsSelfOrAdmin(id Identity, targetID string) bool {
	return IsAdmin(id) || id.ID == targetID
}

// RequireAdmin returns ErrAdminRequired unless id is an admin.
func RequireAdmin(id Identity) error {
	if !IsAdmin(id) {
		return apperrors.ErrAdminRequired
	}
	return nil
}

// RequireSelfOrAdmin returns ErrForbidden unless id is targetID or an admin.
func RequireSelfOrAdmin(id Identity, targetID string) error {
	if !IsSelfOrAdmin(id, targetID) {
		return apperrors.ErrForbidden
	}
	return nil
}

// StripRole drops a requested role change unless id is an admin.
func StripRole(id Identity, role *string) *string {
	if IsAdmin(id) {
		return role
	}
	return nil
}
