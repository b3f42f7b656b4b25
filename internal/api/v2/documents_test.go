package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Udyana30/rsup-ppk-sub000/internal/auth"
	"github.com/Udyana30/rsup-ppk-sub000/internal/server"
	"github.com/Udyana30/rsup-ppk-sub000/internal/versioning"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
)

func newTestServer(t *testing.T) (server.Server, uint) {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.ModelsToAutoMigrate()...))

	user := &models.User{Email: "sari@example.test", Name: "Sari", Role: models.UserRoleAdmin}
	require.NoError(t, user.Create(db))
	group := &models.StaffGroup{Name: "Bedah"}
	require.NoError(t, group.Create(db))
	docType := &models.DocumentType{Name: "PPK"}
	require.NoError(t, docType.Create(db))

	log := hclog.NewNullLogger()
	return server.Server{
		DB:         db,
		Versioning: versioning.NewEngine(db, nil, log),
		Logger:     log,
	}, user.ID
}

// doRequest issues a request with the acting user already resolved, the
// way the auth middleware would hand it to the handler.
func doRequest(h http.Handler, userID uint, method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	r = r.WithContext(auth.WithUserID(r.Context(), userID))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func createViaAPI(t *testing.T, srv server.Server, userID uint) models.Document {
	t.Helper()
	w := doRequest(DocumentsHandler(srv), userID, "POST", "/api/v2/documents", `{
		"title": "Tatalaksana Apendisitis",
		"description": "content A",
		"staffGroupId": 1,
		"documentTypeId": 1,
		"fileUrl": "https://files.test/a.pdf",
		"fileObjectId": "obj-a"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var doc models.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

func TestDocumentsHandler(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		srv, userID := newTestServer(t)
		doc := createViaAPI(t, srv, userID)
		assert.Equal(t, "1", doc.Version)

		w := doRequest(DocumentsHandler(srv), userID, "GET", "/api/v2/documents", "")
		require.Equal(t, http.StatusOK, w.Code)

		var docs []models.Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, doc.ID, docs[0].ID)
	})

	t.Run("create without a file is unprocessable", func(t *testing.T) {
		srv, userID := newTestServer(t)
		w := doRequest(DocumentsHandler(srv), userID, "POST", "/api/v2/documents", `{
			"title": "No file",
			"staffGroupId": 1,
			"documentTypeId": 1
		}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		srv, _ := newTestServer(t)
		r := httptest.NewRequest("GET", "/api/v2/documents", nil)
		w := httptest.NewRecorder()
		DocumentsHandler(srv).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDocumentHandler(t *testing.T) {
	t.Run("publish, history, restore", func(t *testing.T) {
		srv, userID := newTestServer(t)
		doc := createViaAPI(t, srv, userID)
		h := DocumentHandler(srv)

		// Publish version 2.
		w := doRequest(h, userID, "POST",
			fmt.Sprintf("/api/v2/documents/%d/versions", doc.ID), `{
			"title": "Tatalaksana Apendisitis (rev)",
			"description": "content B",
			"fileUrl": "https://files.test/b.pdf",
			"note": "annual review"
		}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var updated models.Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "2", updated.Version)

		// History shows both versions and the trail.
		w = doRequest(h, userID, "GET",
			fmt.Sprintf("/api/v2/documents/%d/history", doc.ID), "")
		require.Equal(t, http.StatusOK, w.Code)

		var history versioning.History
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
		require.Len(t, history.Versions, 2)
		assert.Equal(t, "2", history.Versions[0].Version)
		assert.Equal(t, versioning.HistoryStatusActive, history.Versions[0].Status)
		assert.Equal(t, "1", history.Versions[1].Version)
		require.NotEmpty(t, history.Logs)

		// Restore version 1.
		require.NotNil(t, history.Versions[1].VersionID)
		w = doRequest(h, userID, "POST",
			fmt.Sprintf("/api/v2/documents/%d/versions/%d/restore",
				doc.ID, *history.Versions[1].VersionID), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var restored models.Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restored))
		assert.Equal(t, "1", restored.Version)
		assert.Equal(t, "content A", restored.Description)
	})

	t.Run("metadata patch does not bump the version", func(t *testing.T) {
		srv, userID := newTestServer(t)
		doc := createViaAPI(t, srv, userID)

		w := doRequest(DocumentHandler(srv), userID, "PATCH",
			fmt.Sprintf("/api/v2/documents/%d", doc.ID),
			`{"title": "Renamed", "active": false}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated models.Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Renamed", updated.Title)
		assert.False(t, updated.Active)
		assert.Equal(t, "1", updated.Version)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		srv, userID := newTestServer(t)
		w := doRequest(DocumentHandler(srv), userID, "GET", "/api/v2/documents/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVersionsHandler(t *testing.T) {
	srv, userID := newTestServer(t)
	doc := createViaAPI(t, srv, userID)

	w := doRequest(DocumentHandler(srv), userID, "POST",
		fmt.Sprintf("/api/v2/documents/%d/versions", doc.ID),
		`{"title": "rev 2"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	versions, err := models.GetVersionsByDocumentID(srv.DB, doc.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)

	t.Run("deletes the archived version and logs it", func(t *testing.T) {
		w := doRequest(VersionsHandler(srv), userID, "DELETE",
			fmt.Sprintf("/api/v2/versions/%d", versions[0].ID), "")
		require.Equal(t, http.StatusNoContent, w.Code)

		remaining, err := models.GetVersionsByDocumentID(srv.DB, doc.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		logs, err := models.GetActivityLogsByDocumentID(srv.DB, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ActivityActionDeleteVersion, logs[0].Action)
	})

	t.Run("second delete is not found", func(t *testing.T) {
		w := doRequest(VersionsHandler(srv), userID, "DELETE",
			fmt.Sprintf("/api/v2/versions/%d", versions[0].ID), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
