package access_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"memory-backend/internal/access"
	"memory-backend/internal/models"
)

func TestOwns(t *testing.T) {
	ownerID := uuid.New()
	album := models.Album{OwnerID: ownerID}

	owner := access.Actor{ID: ownerID, Username: "owner", Authenticated: true}
	assert.True(t, owner.Owns(album))

	other := access.Actor{ID: uuid.New(), Username: "other", Authenticated: true}
	assert.False(t, other.Owns(album))

	assert.False(t, access.Anonymous().Owns(album))

	// An unauthenticated actor with a matching id still does not own it.
	spoofed := access.Actor{ID: ownerID}
	assert.False(t, spoofed.Owns(album))
}
