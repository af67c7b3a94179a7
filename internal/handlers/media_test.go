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

func TestContributorUploadCreatesPendingRecord(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice")
	_, sharelink := createAlbum(t, app, token, "Sunsets")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/albums/"+sharelink+"/media", map[string]interface{}{
		"file_key":    "albums/x/pending/a.jpg",
		"file_size":   9 * 1024 * 1024,
		"media_type":  "image",
		"description": "sunset",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "sunset", data["description"])
	// The public view never carries moderation fields.
	_, present := data["approval_status"]
	assert.False(t, present)

	var pending models.PendingUpload
	require.NoError(t, database.DB.First(&pending).Error)
	assert.Equal(t, models.StatusPending, pending.ApprovalStatus)

	var notifCount int64
	database.DB.Model(&models.Notification{}).Count(&notifCount)
	assert.Zero(t, notifCount, "owner must not be notified before a decision")
}

func TestUploadRejectsUnsupportedMediaType(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "bob")
	_, sharelink := createAlbum(t, app, token, "Mix")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/albums/"+sharelink+"/media", map[string]interface{}{
		"file_key":   "albums/x/pending/a.ogg",
		"file_size":  1024,
		"media_type": "audio",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "media_type", body["field"])
	assert.Contains(t, body["error"], "audio")

	var count int64
	database.DB.Model(&models.PendingUpload{}).Count(&count)
	assert.Zero(t, count)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "carol")
	_, sharelink := createAlbum(t, app, token, "Big")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/albums/"+sharelink+"/media", map[string]interface{}{
		"file_key":   "albums/x/pending/huge.mp4",
		"file_size":  models.MaxFileSize + 1,
		"media_type": "video",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file_size", body["field"])

	var count int64
	database.DB.Model(&models.PendingUpload{}).Count(&count)
	assert.Zero(t, count, "nothing may be persisted on a validation failure")
}

func TestUploadIgnoresSuppliedApprovalStatus(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "dave")
	_, sharelink := createAlbum(t, app, token, "Sneaky")

	pendingID := submitUpload(t, app, sharelink, map[string]interface{}{
		"approval_status": "approved",
	})

	var pending models.PendingUpload
	require.NoError(t, database.DB.First(&pending, "id = ?", pendingID).Error)
	assert.Equal(t, models.StatusPending, pending.ApprovalStatus, "contributors cannot self-approve")

	var mediaCount int64
	database.DB.Model(&models.Media{}).Count(&mediaCount)
	assert.Zero(t, mediaCount)
}

func TestUnknownSharelinkIs404ForAllMethods(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "erin")
	createAlbum(t, app, token, "Real")

	for _, link := range []string{uuid.NewString(), "not-a-token"} {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/albums/"+link+"/media", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/albums/"+link+"/media", map[string]interface{}{
			"file_key":   "a.jpg",
			"file_size":  1,
			"media_type": "image",
		}, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/albums/"+link+"/media/"+uuid.NewString(), nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/albums/"+link+"/media/upload-url", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestListMediaHidesApprovalStatusFromAnonymous(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "frank")
	_, sharelink := createAlbum(t, app, token, "Gallery")

	pendingID := submitUpload(t, app, sharelink, nil)
	resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/approval-queue/"+pendingID, map[string]interface{}{
		"approval_status": "approved",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Anonymous read: approval_status absent from every item.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/albums/"+sharelink+"/media", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	item := data[0].(map[string]interface{})
	_, present := item["approval_status"]
	assert.False(t, present)

	// Owner read: approval_status visible.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/albums/"+sharelink+"/media", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].([]interface{})
	require.Len(t, data, 1)
	item = data[0].(map[string]interface{})
	assert.Equal(t, "approved", item["approval_status"])
}

func seedPublishedMedia(t *testing.T, albumID string, mediaType models.MediaType, description, tags string) {
	t.Helper()
	id, err := uuid.Parse(albumID)
	require.NoError(t, err)
	media := models.Media{
		AlbumID:        id,
		FileKey:        "albums/seed/" + uuid.NewString(),
		FileSize:       1024,
		MediaType:      mediaType,
		Description:    description,
		Tags:           tags,
		ApprovalStatus: models.StatusApproved,
	}
	require.NoError(t, database.DB.Create(&media).Error)
}

func TestListMediaFilters(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "grace")
	albumID, sharelink := createAlbum(t, app, token, "Filters")

	seedPublishedMedia(t, albumID, models.MediaTypeImage, "Sunset over the bay", "beach")
	seedPublishedMedia(t, albumID, models.MediaTypeVideo, "birthday party", "family,party")
	seedPublishedMedia(t, albumID, models.MediaTypeLink, "playlist", "music")

	listIDs := func(query string) []string {
		resp, body := doJSON(t, app, http.MethodGet, "/api/v1/albums/"+sharelink+"/media"+query, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].([]interface{})
		ids := make([]string, len(data))
		for i, raw := range data {
			ids[i] = raw.(map[string]interface{})["id"].(string)
		}
		return ids
	}

	assert.Len(t, listIDs(""), 3)

	// Case-insensitive substring over description+tags.
	assert.Len(t, listIDs("?search=SUNSET"), 1)
	assert.Len(t, listIDs("?search=party"), 1)
	assert.Len(t, listIDs("?search=nothing-matches"), 0)

	// Exact media type filter; "all" means no filter.
	assert.Len(t, listIDs("?type=video"), 1)
	assert.Len(t, listIDs("?type=all"), 3)

	// No-op filters return the same set as no filters at all.
	assert.ElementsMatch(t, listIDs(""), listIDs("?status=all&search="))
}

func TestDeleteMediaOwnerOnly(t *testing.T) {
	app := setupApp(t)
	ownerToken := registerAndLogin(t, app, "heidi")
	otherToken := registerAndLogin(t, app, "ivan")
	albumID, sharelink := createAlbum(t, app, ownerToken, "Mine")

	seedPublishedMedia(t, albumID, models.MediaTypeImage, "keeper", "")
	var media models.Media
	require.NoError(t, database.DB.First(&media).Error)

	// No token: 401 from the auth gate.
	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/albums/"+sharelink+"/media/"+media.ID.String(), nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated non-owner: 404, nothing leaked.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/albums/"+sharelink+"/media/"+media.ID.String(), nil, otherToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Owner: 204 and the row is gone.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/albums/"+sharelink+"/media/"+media.ID.String(), nil, ownerToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Media{}).Count(&count)
	assert.Zero(t, count)

	// Deleting again is a 404.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/albums/"+sharelink+"/media/"+media.ID.String(), nil, ownerToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
