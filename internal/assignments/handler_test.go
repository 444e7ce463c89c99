package assignments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(now *time.Time) http.Handler {
	svc, _, _ := newTestService(now)
	r := chi.NewRouter()
	MountRoutes(r, NewHandler(nil, svc))
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerAssign(t *testing.T) {
	now := baseTime
	router := newTestRouter(&now)

	rec := doRequest(t, router, http.MethodPost, "/user-roles/users/7/roles",
		`{"roleName":"USER","assignedBy":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var row UserRoleAssignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, "USER", row.Role.Name)
}

func TestHandlerAssignActiveDuplicate(t *testing.T) {
	now := baseTime
	router := newTestRouter(&now)

	body := `{"roleName":"USER","assignedBy":1}`
	rec := doRequest(t, router, http.MethodPost, "/user-roles/users/7/roles", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/user-roles/users/7/roles", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerAssignUnknownRole(t *testing.T) {
	now := baseTime
	router := newTestRouter(&now)

	rec := doRequest(t, router, http.MethodPost, "/user-roles/users/7/roles",
		`{"roleName":"NOPE","assignedBy":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerAssignValidationFailure(t *testing.T) {
	now := baseTime
	router := newTestRouter(&now)

	rec := doRequest(t, router, http.MethodPost, "/user-roles/users/7/roles", `{"roleName":"USER"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCheck(t *testing.T) {
	now := baseTime
	router := newTestRouter(&now)

	rec := doRequest(t, router, http.MethodPost, "/user-roles/users/7/roles",
		`{"roleName":"MODERATOR","assignedBy":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/user-roles/users/7/permissions/updateUser/check", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var check PermissionCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	assert.True(t, check.HasPermission)

	rec = doRequest(t, router, http.MethodGet, "/user-roles/users/7/permissions/adminAccess/check", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	assert.False(t, check.HasPermission)
}

func TestHandlerRevokeIdempotent(t *testing.T) {
	now := baseTime
	router := newTestRouter(&now)

	rec := doRequest(t, router, http.MethodDelete, "/user-roles/users/7/roles/10", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/user-roles/users/7", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
