// Package access carries the caller's identity through the request path so
// that authorization decisions are made against an explicit actor instead of
// framework-injected state.
package access

import (
	"github.com/google/uuid"

	"memory-backend/internal/models"
)

// Actor identifies the caller of an operation. The zero value is an
// anonymous contributor.
type Actor struct {
	ID            uuid.UUID
	Username      string
	Authenticated bool
}

// Anonymous is the actor for requests that arrive without credentials.
func Anonymous() Actor {
	return Actor{}
}

// Owns reports whether the actor is the owner of the album. Anonymous
// actors never own anything.
func (a Actor) Owns(album models.Album) bool {
	return a.Authenticated && a.ID == album.OwnerID
}
