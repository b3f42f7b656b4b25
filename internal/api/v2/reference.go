package api

import (
	"fmt"
	"net/http"

	"github.com/Udyana30/rsup-ppk-sub000/internal/auth"
	"github.com/Udyana30/rsup-ppk-sub000/internal/server"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
)

type ReferencePostRequest struct {
	Name string `json:"name"`
}

// StaffGroupsHandler lists and creates medical staff groups.
func StaffGroupsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errResp := newErrorResponder(srv, w, r)

		if _, ok := auth.GetUserID(r.Context()); !ok {
			errResp(http.StatusUnauthorized,
				"No authorization information for request",
				"no user ID found in request context", nil)
			return
		}

		switch r.Method {
		case "GET":
			groups, err := models.ListStaffGroups(srv.DB)
			if err != nil {
				errResp(http.StatusInternalServerError,
					"Error listing staff groups", "error listing staff groups", err)
				return
			}
			if err := respondJSON(w, http.StatusOK, groups); err != nil {
				srv.Logger.Error("error encoding staff groups response", "error", err)
			}

		case "POST":
			var req ReferencePostRequest
			if err := decodeRequest(r, &req); err != nil {
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			group := &models.StaffGroup{Name: req.Name}
			if err := group.Create(srv.DB); err != nil {
				errResp(http.StatusUnprocessableEntity,
					"Error creating staff group", "error creating staff group", err)
				return
			}
			if err := respondJSON(w, http.StatusCreated, group); err != nil {
				srv.Logger.Error("error encoding staff group response", "error", err)
			}

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

// DocumentTypesHandler lists and creates document types.
func DocumentTypesHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errResp := newErrorResponder(srv, w, r)

		if _, ok := auth.GetUserID(r.Context()); !ok {
			errResp(http.StatusUnauthorized,
				"No authorization information for request",
				"no user ID found in request context", nil)
			return
		}

		switch r.Method {
		case "GET":
			types, err := models.ListDocumentTypes(srv.DB)
			if err != nil {
				errResp(http.StatusInternalServerError,
					"Error listing document types", "error listing document types", err)
				return
			}
			if err := respondJSON(w, http.StatusOK, types); err != nil {
				srv.Logger.Error("error encoding document types response", "error", err)
			}

		case "POST":
			var req ReferencePostRequest
			if err := decodeRequest(r, &req); err != nil {
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			docType := &models.DocumentType{Name: req.Name}
			if err := docType.Create(srv.DB); err != nil {
				errResp(http.StatusUnprocessableEntity,
					"Error creating document type", "error creating document type", err)
				return
			}
			if err := respondJSON(w, http.StatusCreated, docType); err != nil {
				srv.Logger.Error("error encoding document type response", "error", err)
			}

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}
