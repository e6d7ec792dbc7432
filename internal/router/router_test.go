package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/document-management-api/internal/config"
	"github.com/yukikurage/document-management-api/internal/database"
	"github.com/yukikurage/document-management-api/internal/logging"
	"github.com/yukikurage/document-management-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	app *App
	db  *gorm.DB
	cfg *config.Config
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		DBDriver:           "sqlite",
		JWTSecret:          "router-test-secret",
		JWTExpiresIn:       time.Hour,
		UploadDir:          t.TempDir(),
		MaxUploadMB:        1,
		TrashRetentionDays: 30,
		OTelServiceName:    "document-management-api-test",
	}

	app, err := New(cfg, db, logging.Discard())
	require.NoError(t, err)

	s := &testServer{app: app, db: db, cfg: cfg}
	s.createUser(t, 7, "alice", "secret", "admin")
	s.createUser(t, 8, "bob", "secret", "USER")
	return s
}

func (s *testServer) createUser(t *testing.T, id uint64, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}).Error)
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (s *testServer) insertDocument(t *testing.T, id uint64, name string, folderID *uint64, path string) {
	t.Helper()
	require.NoError(t, s.db.Create(&models.Document{
		ID:               id,
		OriginalFileName: name,
		StoredFileName:   name,
		FilePath:         path,
		MimeType:         "text/plain",
		FolderID:         folderID,
		CreatedBy:        8,
	}).Error)
}

func TestLogin(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, float64(7), user["id"])
	assert.Equal(t, "ADMIN", user["role"])

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, decode(t, w)["ok"])

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ghost", "password": "secret"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(t, "bob", "secret")
	w = s.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "bob", data["username"])
}

func TestListDocumentsByFolder(t *testing.T) {
	s := setupTestServer(t)
	folderID := uint64(3)
	require.NoError(t, s.db.Create(&models.Folder{ID: folderID, Name: "Projects", CreatedBy: 8}).Error)
	s.insertDocument(t, 1, "in-folder.txt", &folderID, "a.txt")
	s.insertDocument(t, 2, "root.txt", nil, "b.txt")

	w := s.do(t, http.MethodGet, "/api/documents?folder_id=3&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
	assert.Equal(t, float64(1), body["total"])
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "in-folder.txt", items[0].(map[string]interface{})["original_file_name"])

	for _, query := range []string{"limit=0", "limit=101", "offset=-1", "limit=abc", "folder_id=x"} {
		w = s.do(t, http.MethodGet, "/api/documents?"+query, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestDeleteAndRestoreDocument(t *testing.T) {
	s := setupTestServer(t)
	s.insertDocument(t, 42, "contract.pdf", nil, "contract.pdf")
	token := s.login(t, "alice", "secret")

	w := s.do(t, http.MethodDelete, "/api/documents/42", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["deleted_by"])
	assert.NotNil(t, data["deleted_at"])

	w = s.do(t, http.MethodGet, "/api/trash", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	trash := decode(t, w)
	assert.Equal(t, float64(1), trash["total"])
	items := trash["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(42), items[0].(map[string]interface{})["id"])

	w = s.do(t, http.MethodGet, "/api/documents", "", nil)
	assert.Equal(t, float64(0), decode(t, w)["total"])

	w = s.do(t, http.MethodDelete, "/api/documents/42", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/documents/42/restore", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["data"].(map[string]interface{})["deleted_at"])

	w = s.do(t, http.MethodPost, "/api/documents/42/restore", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/documents/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/documents/42", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetUserActive(t *testing.T) {
	s := setupTestServer(t)
	admin := s.login(t, "alice", "secret")
	user := s.login(t, "bob", "secret")

	w := s.do(t, http.MethodPatch, "/api/users/7/active", admin, map[string]bool{"is_active": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var stored models.User
	require.NoError(t, s.db.First(&stored, 7).Error)
	assert.True(t, stored.IsActive)

	w = s.do(t, http.MethodPatch, "/api/users/8/active", user, map[string]bool{"is_active": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/users/8/active", admin, map[string]string{"is_active": "no"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/users/8/active", admin, map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["data"].(map[string]interface{})["is_active"])

	// deactivated accounts cannot log in
	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "secret"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/users/999/active", admin, map[string]bool{"is_active": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserAdministration(t *testing.T) {
	s := setupTestServer(t)
	admin := s.login(t, "alice", "secret")

	w := s.do(t, http.MethodPost, "/api/users", admin, map[string]string{"username": "carol", "password": "pass1234"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "USER", data["role"])
	assert.NotContains(t, data, "password_hash")

	w = s.do(t, http.MethodPost, "/api/users", admin, map[string]string{"username": "carol", "password": "pass1234"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/users", admin, map[string]string{"username": "x", "password": "p"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotNil(t, decode(t, w)["details"])

	w = s.do(t, http.MethodGet, "/api/users?q=car", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"].([]interface{}), 1)
}

func TestTaxonomySettings(t *testing.T) {
	s := setupTestServer(t)
	admin := s.login(t, "alice", "secret")
	user := s.login(t, "bob", "secret")

	w := s.do(t, http.MethodPost, "/api/settings/document-types", admin, map[string]string{"name": "Manual"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, created["is_active"])

	w = s.do(t, http.MethodPost, "/api/settings/document-types", admin, map[string]string{"name": "Manual"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", decode(t, w)["code"])

	// the job type table is independent
	w = s.do(t, http.MethodPost, "/api/settings/it-job-types", admin, map[string]string{"name": "Manual"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/settings/document-types", user, map[string]string{"name": "Other"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/settings/document-types/1", admin, map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/document-types", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])

	w = s.do(t, http.MethodGet, "/api/settings/document-types?include_inactive=true", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)

	w = s.do(t, http.MethodPatch, "/api/settings/document-types/1", admin, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/settings/document-types/1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/api/settings/document-types/1", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadAndDownload(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "bob", "secret")
	admin := s.login(t, "alice", "secret")

	w := s.do(t, http.MethodPost, "/api/folders", token, map[string]string{"name": "Projects"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	folderID := decode(t, w)["data"].(map[string]interface{})["id"].(float64)

	w = s.do(t, http.MethodPost, "/api/settings/document-types", admin, map[string]string{"name": "Manual"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPost, "/api/settings/it-job-types", admin, map[string]string{"name": "Network"})
	require.Equal(t, http.StatusCreated, w.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "report final.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello upload"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("folder_id", jsonNumber(folderID)))
	require.NoError(t, mw.WriteField("document_type_id", "1"))
	require.NoError(t, mw.WriteField("it_job_type_id", "1"))
	require.NoError(t, mw.WriteField("title", "Final report"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	s.app.Engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	doc := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "report final.txt", doc["original_file_name"])
	assert.Equal(t, "Final report", doc["title"])
	assert.Equal(t, float64(8), doc["created_by"])
	assert.Equal(t, float64(len("hello upload")), doc["file_size"])

	w = s.do(t, http.MethodGet, "/api/documents/"+jsonNumber(doc["id"].(float64))+"/download", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello upload", w.Body.String())
	assert.Equal(t, "attachment; filename*=UTF-8''report%20final.txt", w.Header().Get("Content-Disposition"))

	w = s.do(t, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["documentCount"])
	assert.Equal(t, float64(1), summary["fileCount"])
}

func TestUploadRequiresFields(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "bob", "secret")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("folder_id", "1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.app.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, w)["code"])
}

func TestDownloadRejectsTraversal(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "bob", "secret")
	s.insertDocument(t, 5, "passwd", nil, "../../../etc/passwd")
	s.insertDocument(t, 6, "gone.txt", nil, "gone.txt")

	w := s.do(t, http.MethodGet, "/api/documents/5/download", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["ok"])

	w = s.do(t, http.MethodGet, "/api/documents/6/download", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/documents/999/download", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrashPurgeIsAdminOnly(t *testing.T) {
	s := setupTestServer(t)
	admin := s.login(t, "alice", "secret")
	user := s.login(t, "bob", "secret")

	old := time.Now().Add(-40 * 24 * time.Hour)
	require.NoError(t, s.db.Create(&models.Document{
		OriginalFileName: "old.txt",
		StoredFileName:   "old.txt",
		FilePath:         "old.txt",
		MimeType:         "text/plain",
		CreatedBy:        8,
		DeletedAt:        &old,
	}).Error)

	w := s.do(t, http.MethodPost, "/api/trash/purge", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/trash/purge", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), result["deleted_rows"])
	assert.Equal(t, float64(1), result["files_missing"])
}

func TestUnknownRoutes(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "NOT_FOUND", body["code"])

	w = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func jsonNumber(v float64) string {
	raw, _ := json.Marshal(uint64(v))
	return string(raw)
}
