package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"memory-backend/config"
	"memory-backend/internal/database"
	"memory-backend/internal/routes"
	"memory-backend/internal/services"
)

// setupApp wires the full route surface against a fresh in-memory database.
// Redis and S3 stay disconnected; the handlers treat that as degraded mode.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	database.RedisClient = nil
	database.S3Client = nil

	config.Cfg = &config.Config{
		AppName:          "memory-test",
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  "1h",
		JWTRefreshExpiry: "24h",
		S3BucketMedia:    "test-media",
		UploadRateLimit:  30,
	}
	services.InitNotificationService("")

	app := fiber.New()
	routes.SetupRoutes(app)
	return app
}

// doJSON performs a request with an optional JSON body and bearer token and
// decodes the response body into a generic map (nil for empty bodies).
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	if len(raw) == 0 {
		return resp, nil
	}
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp, decoded
}

// registerAndLogin creates an owner account and returns its access token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "Password1!",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"username": username,
		"password": "Password1!",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createAlbum creates an album for the token's owner and returns its id and
// sharelink token.
func createAlbum(t *testing.T, app *fiber.App, token, title string) (albumID, sharelink string) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/albums", map[string]interface{}{
		"title": title,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	albumID, _ = body["id"].(string)
	sharelink, _ = body["sharelink"].(string)
	require.NotEmpty(t, albumID)
	require.NotEmpty(t, sharelink)
	return albumID, sharelink
}

// submitUpload posts a contributor upload through the sharelink and returns
// the created pending upload's id.
func submitUpload(t *testing.T, app *fiber.App, sharelink string, fields map[string]interface{}) string {
	t.Helper()

	payload := map[string]interface{}{
		"file_key":    "albums/test/pending/file.jpg",
		"file_size":   int64(9 * 1024 * 1024),
		"media_type":  "image",
		"description": "sunset",
	}
	for k, v := range fields {
		payload[k] = v
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/albums/"+sharelink+"/media", payload, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data, _ := body["data"].(map[string]interface{})
	require.NotNil(t, data)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}
