package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"

	"github.com/Udyana30/rsup-ppk-sub000/internal/auth"
	"github.com/Udyana30/rsup-ppk-sub000/internal/server"
	"github.com/Udyana30/rsup-ppk-sub000/internal/versioning"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/storage"
)

// DocumentPostRequest is the body for creating a document. The file must
// already be uploaded; the request carries only its reference.
type DocumentPostRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	StaffGroupID   uint       `json:"staffGroupId"`
	DocumentTypeID uint       `json:"documentTypeId"`
	FileURL        string     `json:"fileUrl"`
	FileObjectID   string     `json:"fileObjectId,omitempty"`
	ValidatedAt    *time.Time `json:"validatedAt,omitempty"`
}

// DocumentPatchRequest contains the subset of document fields that may be
// updated in place. A metadata edit never creates an archived version and
// never changes the version label.
type DocumentPatchRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	StaffGroupID   *uint      `json:"staffGroupId,omitempty"`
	DocumentTypeID *uint      `json:"documentTypeId,omitempty"`
	Active         *bool      `json:"active,omitempty"`
	ValidatedAt    *time.Time `json:"validatedAt,omitempty"`
	FileURL        *string    `json:"fileUrl,omitempty"`
	FileObjectID   *string    `json:"fileObjectId,omitempty"`
}

// DocumentsHandler handles the documents collection: list and create.
func DocumentsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errResp := newErrorResponder(srv, w, r)

		userID, ok := auth.GetUserID(r.Context())
		if !ok {
			errResp(http.StatusUnauthorized,
				"No authorization information for request",
				"no user ID found in request context", nil)
			return
		}

		switch r.Method {
		case "GET":
			filter := models.DocumentFilter{}
			q := r.URL.Query()
			if v := q.Get("staffGroup"); v != "" {
				id, err := strconv.ParseUint(v, 10, 64)
				if err != nil {
					http.Error(w, "Invalid staffGroup parameter", http.StatusBadRequest)
					return
				}
				filter.StaffGroupID = uint(id)
			}
			if v := q.Get("documentType"); v != "" {
				id, err := strconv.ParseUint(v, 10, 64)
				if err != nil {
					http.Error(w, "Invalid documentType parameter", http.StatusBadRequest)
					return
				}
				filter.DocumentTypeID = uint(id)
			}
			filter.ActiveOnly = q.Get("active") == "true"

			docs, err := models.ListDocuments(srv.DB, filter)
			if err != nil {
				errResp(http.StatusInternalServerError,
					"Error listing documents", "error listing documents", err)
				return
			}
			if err := respondJSON(w, http.StatusOK, docs); err != nil {
				srv.Logger.Error("error encoding documents response", "error", err)
			}

		case "POST":
			var req DocumentPostRequest
			if err := decodeRequest(r, &req); err != nil {
				srv.Logger.Error("error decoding document request", "error", err)
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}

			doc, err := srv.Versioning.CreateDocument(r.Context(), userID,
				versioning.CreateInput{
					Title:          req.Title,
					Description:    req.Description,
					StaffGroupID:   req.StaffGroupID,
					DocumentTypeID: req.DocumentTypeID,
					File: storage.FileRef{
						URL:      req.FileURL,
						ObjectID: req.FileObjectID,
					},
					ValidatedAt: req.ValidatedAt,
				})
			if err != nil {
				var verrs validation.Errors
				if errors.As(err, &verrs) {
					http.Error(w, fmt.Sprintf("Bad request: %q", err),
						http.StatusUnprocessableEntity)
					return
				}
				errResp(http.StatusInternalServerError,
					"Error creating document", "error creating document", err)
				return
			}

			if err := respondJSON(w, http.StatusCreated, doc); err != nil {
				srv.Logger.Error("error encoding document response", "error", err)
			}

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

// DocumentHandler handles a single document and its subresources:
//
//	GET    /api/v2/documents/{id}
//	PATCH  /api/v2/documents/{id}
//	DELETE /api/v2/documents/{id}
//	GET    /api/v2/documents/{id}/history
//	POST   /api/v2/documents/{id}/versions
//	POST   /api/v2/documents/{id}/versions/{versionID}/restore
func DocumentHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errResp := newErrorResponder(srv, w, r)

		userID, ok := auth.GetUserID(r.Context())
		if !ok {
			errResp(http.StatusUnauthorized,
				"No authorization information for request",
				"no user ID found in request context", nil)
			return
		}

		segments := parsePathSegments(r.URL.Path, "documents")
		if len(segments) == 0 {
			http.Error(w, "Document ID not found in URL path", http.StatusBadRequest)
			return
		}
		docID, err := parseID(segments[0])
		if err != nil {
			http.Error(w, "Invalid document ID", http.StatusBadRequest)
			return
		}

		switch {
		case len(segments) == 1:
			handleDocument(srv, w, r, errResp, docID, userID)

		case len(segments) == 2 && segments[1] == "history":
			handleHistory(srv, w, r, errResp, docID)

		case len(segments) == 2 && segments[1] == "versions":
			handlePublish(srv, w, r, errResp, docID, userID)

		case len(segments) == 4 && segments[1] == "versions" && segments[3] == "restore":
			versionID, err := parseID(segments[2])
			if err != nil {
				http.Error(w, "Invalid version ID", http.StatusBadRequest)
				return
			}
			handleRestore(srv, w, r, errResp, docID, versionID, userID)

		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})
}

func handleDocument(
	srv server.Server,
	w http.ResponseWriter,
	r *http.Request,
	errResp errorResponder,
	docID, userID uint,
) {
	switch r.Method {
	case "GET":
		var doc models.Document
		if err := doc.Get(srv.DB, docID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Document not found", http.StatusNotFound)
				return
			}
			errResp(http.StatusInternalServerError,
				"Error getting document", "error getting document", err)
			return
		}
		if err := respondJSON(w, http.StatusOK, doc); err != nil {
			srv.Logger.Error("error encoding document response", "error", err)
		}

	case "PATCH":
		var req DocumentPatchRequest
		if err := decodeRequest(r, &req); err != nil {
			srv.Logger.Error("error decoding document patch request", "error", err)
			http.Error(w, fmt.Sprintf("Bad request: %q", err),
				http.StatusBadRequest)
			return
		}

		update := versioning.MetadataUpdate{
			Title:          req.Title,
			Description:    req.Description,
			StaffGroupID:   req.StaffGroupID,
			DocumentTypeID: req.DocumentTypeID,
			Active:         req.Active,
			ValidatedAt:    req.ValidatedAt,
		}
		if req.FileURL != nil {
			update.File = &storage.FileRef{URL: *req.FileURL}
			if req.FileObjectID != nil {
				update.File.ObjectID = *req.FileObjectID
			}
		}

		doc, err := srv.Versioning.UpdateMetadata(r.Context(), docID, userID, update)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Document not found", http.StatusNotFound)
				return
			}
			errResp(http.StatusInternalServerError,
				"Error updating document", "error updating document", err)
			return
		}
		if err := respondJSON(w, http.StatusOK, doc); err != nil {
			srv.Logger.Error("error encoding document response", "error", err)
		}

	case "DELETE":
		if err := srv.Versioning.DeleteDocument(r.Context(), docID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, "Document not found", http.StatusNotFound)
				return
			}
			errResp(http.StatusInternalServerError,
				"Error deleting document", "error deleting document", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// errorResponder logs an internal error and writes the user-facing message.
type errorResponder func(httpCode int, userErrMsg, logErrMsg string, err error)

func newErrorResponder(
	srv server.Server, w http.ResponseWriter, r *http.Request,
) errorResponder {
	return func(httpCode int, userErrMsg, logErrMsg string, err error) {
		srv.Logger.Error(logErrMsg,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		http.Error(w, userErrMsg, httpCode)
	}
}
