package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usertable-api/internal/testutil"
)

func TestUserController_GetUsersEmpty(t *testing.T) {
	s := newTestServer(t, "ctl_users_empty")

	w := s.do(http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUserController_GetUsersReflectsColumns(t *testing.T) {
	s := newTestServer(t, "ctl_users_rows")
	testutil.InsertUser(t, s.db, "Ada", "ada@example.com")
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/user/AddColumns", `["Age"]`).Code)

	w := s.do(http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	// Keys follow the table's column order.
	assert.Equal(t, `[{"Id":1,"Name":"Ada","Email":"ada@example.com","Age":null}]`, w.Body.String())
}

func TestHealthController(t *testing.T) {
	s := newTestServer(t, "ctl_health")

	w := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
