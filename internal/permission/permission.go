// Package permission holds the pure access decision rules consulted before
// every mutating or object-scoped operation. Reads are never gated, so no
// function exists for them. A nil actor means the request is anonymous.
package permission

import (
	"reviewhub/internal/errors"
	"reviewhub/internal/model"
)

// RequireAdmin allows only authenticated admins. Used for user account
// management: listing, creating, updating and deleting any user.
func RequireAdmin(actor *model.User) error {
	if actor == nil {
		return errors.ErrAuthenticationRequired
	}
	if !actor.IsAdmin() {
		return errors.ErrForbidden
	}
	return nil
}

// RequireCatalogWrite allows only authenticated admins to mutate
// categories, genres and titles. Reads stay open to anyone.
func RequireCatalogWrite(actor *model.User) error {
	return RequireAdmin(actor)
}

// RequireAuthenticated allows any authenticated actor. Used for creating
// reviews and comments; per-object checks happen on update and delete.
func RequireAuthenticated(actor *model.User) error {
	if actor == nil {
		return errors.ErrAuthenticationRequired
	}
	return nil
}

// RequireContentOwner allows moderators, admins and the content author to
// mutate or delete a review or comment owned by authorID.
func RequireContentOwner(actor *model.User, authorID uint) error {
	if actor == nil {
		return errors.ErrAuthenticationRequired
	}
	if actor.IsModerator() || actor.IsAdmin() || actor.ID == authorID {
		return nil
	}
	return errors.ErrForbidden
}
