package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-backend/internal/database"
	"memory-backend/internal/models"
)

func TestCreateAlbumAssignsSharelink(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/albums", map[string]interface{}{
		"title":       "Holiday",
		"description": "Summer 2026",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	sharelink, _ := body["sharelink"].(string)
	require.NotEmpty(t, sharelink)
	_, err := uuid.Parse(sharelink)
	assert.NoError(t, err)
	assert.Equal(t, "private", body["privacy"])
}

func TestCreateAlbumRequiresTitle(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "bob")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/albums", map[string]interface{}{
		"description": "no title",
	}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title", body["field"])
}

func TestShareEndpointReturnsSharelink(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "carol")
	albumID, sharelink := createAlbum(t, app, token, "Shared")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/albums/"+albumID+"/share", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sharelink, body["shareable_link"])
}

func TestUpdateAlbumKeepsSharelinkImmutable(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "dave")
	albumID, sharelink := createAlbum(t, app, token, "Before")

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/albums/"+albumID, map[string]interface{}{
		"title":     "After",
		"privacy":   "public",
		"sharelink": uuid.NewString(),
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "After", body["title"])
	assert.Equal(t, "public", body["privacy"])
	assert.Equal(t, sharelink, body["sharelink"], "sharelink is never reassigned")
}

func TestAlbumsScopedToOwner(t *testing.T) {
	app := setupApp(t)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")
	albumID, _ := createAlbum(t, app, aliceToken, "Alice's")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/albums", nil, bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["count"])

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		resp, _ := doJSON(t, app, method, "/api/v1/albums/"+albumID, map[string]interface{}{"title": "x"}, bobToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
	}
}

func TestDeleteAlbumRemovesDependents(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "erin")
	albumID, sharelink := createAlbum(t, app, token, "Doomed")

	submitUpload(t, app, sharelink, nil)
	seedPublishedMedia(t, albumID, models.MediaTypeImage, "seeded", "")

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/albums/"+albumID, nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var albums, pending, media int64
	database.DB.Model(&models.Album{}).Count(&albums)
	database.DB.Model(&models.PendingUpload{}).Count(&pending)
	database.DB.Model(&models.Media{}).Count(&media)
	assert.Zero(t, albums)
	assert.Zero(t, pending)
	assert.Zero(t, media)

	// The sharelink dies with the album.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/albums/"+sharelink+"/media", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
