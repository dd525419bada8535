package server

import (
	"net/http"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/users", map[string]any{
		"uid": "alice", "name": "Alice", "email": "Alice@Example.COM",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["uid"])
	assert.Equal(t, "alice@example.com", user["email"])

	t.Run("duplicate uid conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/users", map[string]any{
			"uid": "alice", "name": "Alice Again", "email": "other@example.com",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/users", map[string]any{
			"uid": "alice2", "name": "Alice Two", "email": "alice@example.com",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/users", map[string]any{
			"uid": "bob", "name": "Bob",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("short password rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/users", map[string]any{
			"uid": "bob", "name": "Bob", "email": "bob@example.com", "password": "12345",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	// the stored hash never round-trips to the client
	var stored models.User
	require.NoError(t, db.First(&stored, "uid = ?", "alice").Error)
	assert.Nil(t, user["password"])
}

func TestGetUsers(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	createTestUser(t, db, "alice", "Alice", "alice@example.com")
	createTestUser(t, db, "bob", "Bob", "bob@example.com")

	t.Run("single by uid", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/users?uid=alice", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Alice", body["user"].(map[string]any)["name"])
	})

	t.Run("unknown uid 404", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/users?uid=nobody", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("paginated list", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodGet, "/api/users", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["users"].([]any), 2)
	})
}

func TestUpdateAndDeleteUser(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	createTestUser(t, db, "alice", "Alice", "alice@example.com")

	resp, body := doJSON(t, app, http.MethodPut, "/api/users", map[string]any{
		"uid": "alice", "bio": "writes about compilers",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "writes about compilers", user["bio"])
	assert.Equal(t, "Alice", user["name"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/users?uid=alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users?uid=alice", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSyncVerification(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)
	createTestUser(t, db, "alice", "Alice", "alice@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/users/sync-verification", map[string]any{
		"uid": "alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["user"].(map[string]any)["isVerified"])

	var stored models.User
	require.NoError(t, db.First(&stored, "uid = ?", "alice").Error)
	assert.True(t, stored.IsVerified)
	assert.NotNil(t, stored.LastLoginAt)
}
