package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/teamboard/internal/common"
	"github.com/dmitrijs2005/teamboard/internal/dbx"
	"github.com/dmitrijs2005/teamboard/internal/logging"
	"github.com/dmitrijs2005/teamboard/internal/server/auth"
	"github.com/dmitrijs2005/teamboard/internal/server/config"
	"github.com/dmitrijs2005/teamboard/internal/server/models"
	"github.com/dmitrijs2005/teamboard/internal/server/repositories/statuses"
	"github.com/dmitrijs2005/teamboard/internal/server/repositories/users"
	"github.com/dmitrijs2005/teamboard/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fakeUsersRepo struct {
	users       []*models.User
	updateCalls int
}

func (r *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) List(_ context.Context, statusName string) ([]*models.User, error) {
	var result []*models.User
	for _, u := range r.users {
		if statusName != "" && resolveStatusName(u) != statusName {
			continue
		}
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeUsersRepo) UpdateStatus(_ context.Context, userID, statusID int64) (*models.User, error) {
	r.updateCalls++
	for _, u := range r.users {
		if u.ID == userID {
			u.StatusID = &statusID
			u.UpdatedAt = time.Now()
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	copied := *user
	copied.ID = int64(len(r.users) + 1)
	r.users = append(r.users, &copied)
	return &copied, nil
}

type fakeStatusesRepo struct {
	statuses []*models.Status
}

func (r *fakeStatusesRepo) List(_ context.Context) ([]*models.Status, error) {
	return r.statuses, nil
}

func (r *fakeStatusesRepo) GetByID(_ context.Context, id int64) (*models.Status, error) {
	for _, st := range r.statuses {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	users    *fakeUsersRepo
	statuses *fakeStatusesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.users }
func (m *fakeRepoManager) Statuses(dbx.DBTX) statuses.Repository       { return m.statuses }

func ptrInt64(v int64) *int64    { return &v }
func ptrString(v string) *string { return &v }

func seedManager(t *testing.T) *fakeRepoManager {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)

	return &fakeRepoManager{
		users: &fakeUsersRepo{
			users: []*models.User{
				{
					ID: 1, Username: "dave", PasswordHash: string(hash),
					FullName: "Dave D", Email: "dave@example.com",
					StatusID: ptrInt64(1), StatusName: ptrString("Working"),
					CreatedAt: now, UpdatedAt: now,
				},
				{
					ID: 2, Username: "erin", PasswordHash: string(hash),
					FullName: "Erin E", Email: "erin@example.com",
					StatusID: ptrInt64(3), StatusName: ptrString("On Vacation"),
					CreatedAt: now, UpdatedAt: now,
				},
				{
					ID: 3, Username: "frank", PasswordHash: string(hash),
					FullName: "Frank F", Email: "frank@example.com",
					CreatedAt: now, UpdatedAt: now,
				},
			},
		},
		statuses: &fakeStatusesRepo{
			statuses: []*models.Status{
				{ID: 1, Name: "Working", CreatedAt: now},
				{ID: 2, Name: "Working Remotely", CreatedAt: now},
				{ID: 3, Name: "On Vacation", CreatedAt: now},
				{ID: 4, Name: "Business Trip", CreatedAt: now},
			},
		},
	}
}

func newTestRouter(t *testing.T, m *fakeRepoManager, db *sql.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us := services.NewUserService(db, m, cfg)
	ss := services.NewStatusService(db, m)

	srv, err := NewHTTPServer(":0", logger, us, ss, db, testSecret, "test")
	require.NoError(t, err)

	return srv.newRouter()
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLoginSuccess(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "dave", "password": "password123"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful!", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "dave", user["username"])
	assert.Equal(t, "Dave D", user["fullName"])
	assert.Equal(t, "Working", user["currentStatus"])
	assert.NotContains(t, user, "createdAt")

	token, ok := body["token"].(string)
	require.True(t, ok)
	claims, err := auth.ParseToken(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "dave", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "dave", "password": "wrong"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid username or password", body["error"])
}

func TestLoginUnknownUser(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "ghost", "password": "password123"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid username or password", body["error"])
}

func TestLoginMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"no password", map[string]string{"username": "dave"}},
		{"no username", map[string]string{"password": "password123"}},
		{"empty body", map[string]string{}},
	}

	router := newTestRouter(t, seedManager(t), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/auth/login", "", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, "Username and password are required", body["error"])
		})
	}
}

func TestListStatuses(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodGet, "/api/statuses", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(4), body["total"])

	list, ok := body["statuses"].([]any)
	require.True(t, ok)
	require.Len(t, list, 4)
	first := list[0].(map[string]any)
	assert.Equal(t, "Working", first["name"])
}

func TestListUsersAll(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodGet, "/api/users", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["total"])

	list := body["users"].([]any)
	// a user with no explicit status resolves to the default label
	third := list[2].(map[string]any)
	assert.Equal(t, "frank", third["username"])
	assert.Equal(t, "Working", third["currentStatus"])
	assert.Nil(t, third["statusId"])
}

func TestListUsersFiltered(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodGet, "/api/users?status=On+Vacation", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])

	list := body["users"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "erin", list[0].(map[string]any)["username"])
}

func TestListUsersFilterIncludesDefaulted(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	// "Working" matches both the explicit status and the NULL fallback
	w := doRequest(router, http.MethodGet, "/api/users?status=Working", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["total"])
}

func TestMeNoToken(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodGet, "/api/users/me", "", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Access token required", body["error"])
	assert.Equal(t, "NO_TOKEN", body["code"])
}

func TestMeExpiredToken(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	token, err := auth.GenerateToken(1, "dave", []byte(testSecret), -time.Hour)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/users/me", token, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Token expired", body["error"])
	assert.Equal(t, "TOKEN_EXPIRED", body["code"])
}

func TestMeInvalidToken(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	token, err := auth.GenerateToken(1, "dave", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/users/me", token, nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid token", body["error"])
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestMeDeletedUser(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	token, err := auth.GenerateToken(99, "ghost", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/users/me", token, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User not found", body["error"])
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
}

func TestMeSuccess(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	token, err := auth.GenerateToken(2, "erin", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/users/me", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "erin", user["username"])
	assert.Equal(t, "On Vacation", user["currentStatus"])
	assert.Contains(t, user, "createdAt")
	assert.Contains(t, user, "updatedAt")
}

func TestUpdateMyStatusSuccess(t *testing.T) {
	m := seedManager(t)
	router := newTestRouter(t, m, nil)

	token, err := auth.GenerateToken(1, "dave", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	w := doRequest(router, http.MethodPut, "/api/users/me/status", token,
		map[string]int64{"statusId": 3})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, `Status updated to "On Vacation"`, body["message"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "On Vacation", user["currentStatus"])
	assert.Equal(t, float64(3), user["statusId"])
	assert.NotContains(t, user, "email")
	assert.Equal(t, 1, m.users.updateCalls)
}

func TestUpdateMyStatusInvalidStatus(t *testing.T) {
	m := seedManager(t)
	router := newTestRouter(t, m, nil)

	token, err := auth.GenerateToken(1, "dave", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	w := doRequest(router, http.MethodPut, "/api/users/me/status", token,
		map[string]int64{"statusId": 99})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid status ID", body["error"])
	assert.Equal(t, 0, m.users.updateCalls)
}

func TestUpdateMyStatusMissingID(t *testing.T) {
	m := seedManager(t)
	router := newTestRouter(t, m, nil)

	token, err := auth.GenerateToken(1, "dave", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	w := doRequest(router, http.MethodPut, "/api/users/me/status", token,
		map[string]string{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Status ID is required", body["error"])
	assert.Equal(t, 0, m.users.updateCalls)
}

func TestAdminUpdateStatus(t *testing.T) {
	m := seedManager(t)
	router := newTestRouter(t, m, nil)

	w := doRequest(router, http.MethodPut, "/api/users/2/status", "",
		map[string]int64{"statusId": 4})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, `Status updated to "Business Trip"`, body["message"])

	user := body["user"].(map[string]any)
	assert.Equal(t, float64(2), user["id"])
	assert.Equal(t, "Business Trip", user["currentStatus"])
	assert.NotContains(t, user, "fullName")
	assert.NotContains(t, user, "email")
}

func TestAdminUpdateStatusBadID(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodPut, "/api/users/abc/status", "",
		map[string]int64{"statusId": 1})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User ID must be a number", body["error"])
}

func TestAdminUpdateStatusUnknownUser(t *testing.T) {
	router := newTestRouter(t, seedManager(t), nil)

	w := doRequest(router, http.MethodPut, "/api/users/99/status", "",
		map[string]int64{"statusId": 1})

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User not found", body["error"])
}

func TestHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT NOW\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow(time.Now()))

	router := newTestRouter(t, seedManager(t), db)

	w := doRequest(router, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Server is running with database!", body["message"])
	assert.Equal(t, "Connected", body["database"])
	assert.Equal(t, "test", body["environment"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthDatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT NOW\(\)`).WillReturnError(fmt.Errorf("connection refused"))

	router := newTestRouter(t, seedManager(t), db)

	w := doRequest(router, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ERROR", body["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}
