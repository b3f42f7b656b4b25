package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"

	"github.com/Udyana30/rsup-ppk-sub000/internal/auth"
	"github.com/Udyana30/rsup-ppk-sub000/internal/server"
	"github.com/Udyana30/rsup-ppk-sub000/internal/versioning"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/storage"
)

// VersionPostRequest is the body for publishing a new version of a
// document. FileURL may be empty to keep the current file.
type VersionPostRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	FileURL      string     `json:"fileUrl,omitempty"`
	FileObjectID string     `json:"fileObjectId,omitempty"`
	ValidatedAt  *time.Time `json:"validatedAt,omitempty"`
	Note         string     `json:"note,omitempty"`
}

// handlePublish publishes a new version of the document.
func handlePublish(
	srv server.Server,
	w http.ResponseWriter,
	r *http.Request,
	errResp errorResponder,
	docID, userID uint,
) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req VersionPostRequest
	if err := decodeRequest(r, &req); err != nil {
		srv.Logger.Error("error decoding version request", "error", err)
		http.Error(w, fmt.Sprintf("Bad request: %q", err), http.StatusBadRequest)
		return
	}

	in := versioning.PublishInput{
		Title:       req.Title,
		Description: req.Description,
		ValidatedAt: req.ValidatedAt,
		Note:        req.Note,
	}
	if req.FileURL != "" {
		in.File = &storage.FileRef{
			URL:      req.FileURL,
			ObjectID: req.FileObjectID,
		}
	}

	doc, err := srv.Versioning.PublishNewVersion(r.Context(), docID, userID, in)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Document not found", http.StatusNotFound)
		case errors.Is(err, versioning.ErrVersionConflict):
			http.Error(w, "Document was modified concurrently, retry the update",
				http.StatusConflict)
		default:
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusUnprocessableEntity)
				return
			}
			errResp(http.StatusInternalServerError,
				"Error publishing new version", "error publishing new version", err)
		}
		return
	}

	if err := respondJSON(w, http.StatusCreated, doc); err != nil {
		srv.Logger.Error("error encoding version response", "error", err)
	}
}

// handleRestore promotes an archived version back to current.
func handleRestore(
	srv server.Server,
	w http.ResponseWriter,
	r *http.Request,
	errResp errorResponder,
	docID, versionID, userID uint,
) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	doc, err := srv.Versioning.RestoreVersion(r.Context(), docID, versionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Document or version not found", http.StatusNotFound)
		case errors.Is(err, versioning.ErrVersionConflict):
			http.Error(w, "Document was modified concurrently, retry the restore",
				http.StatusConflict)
		default:
			errResp(http.StatusInternalServerError,
				"Error restoring version", "error restoring version", err)
		}
		return
	}

	if err := respondJSON(w, http.StatusOK, doc); err != nil {
		srv.Logger.Error("error encoding restore response", "error", err)
	}
}

// handleHistory returns the merged version view and activity trail.
func handleHistory(
	srv server.Server,
	w http.ResponseWriter,
	r *http.Request,
	errResp errorResponder,
	docID uint,
) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	history, err := srv.Versioning.GetHistory(r.Context(), docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		errResp(http.StatusInternalServerError,
			"Error getting document history", "error getting document history", err)
		return
	}

	if err := respondJSON(w, http.StatusOK, history); err != nil {
		srv.Logger.Error("error encoding history response", "error", err)
	}
}

// VersionsHandler handles archived versions as a top-level resource:
//
//	DELETE /api/v2/versions/{versionID}
//
// Only archived snapshots live under this path; the live version is not a
// versions row at all, so it can never be deleted from here.
func VersionsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errResp := newErrorResponder(srv, w, r)

		userID, ok := auth.GetUserID(r.Context())
		if !ok {
			errResp(http.StatusUnauthorized,
				"No authorization information for request",
				"no user ID found in request context", nil)
			return
		}

		segments := parsePathSegments(r.URL.Path, "versions")
		if len(segments) != 1 {
			http.Error(w, "Version ID not found in URL path", http.StatusBadRequest)
			return
		}
		versionID, err := parseID(segments[0])
		if err != nil {
			http.Error(w, "Invalid version ID", http.StatusBadRequest)
			return
		}

		if r.Method != "DELETE" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		deleted, err := srv.Versioning.DeleteArchivedVersion(r.Context(), versionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Version not found", http.StatusNotFound)
				return
			}
			errResp(http.StatusInternalServerError,
				"Error deleting version", "error deleting version", err)
			return
		}

		// The engine's deletion contract does not log; the API keeps the
		// audit trail complete.
		log := &models.ActivityLog{
			DocumentID: deleted.DocumentID,
			Action:     models.ActivityActionDeleteVersion,
			Description: fmt.Sprintf("deleted archived version %s",
				deleted.Version),
			ActorID: userID,
		}
		if err := log.Create(srv.DB); err != nil {
			srv.Logger.Error("error logging version deletion",
				"document_id", deleted.DocumentID,
				"error", err,
			)
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
