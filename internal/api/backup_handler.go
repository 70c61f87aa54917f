package api

import (
	"net/http"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/backup"
)

// BackupHandler handles backup export and import HTTP requests.
type BackupHandler struct {
	backups backup.Service
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backups backup.Service) *BackupHandler {
	return &BackupHandler{backups: backups}
}

// Export handles GET /api/backup/export requests.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.backups.Export(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="wardrobe-backup.json"`)
	shared.RespondWithJSON(w, r, http.StatusOK, doc)
}

// Import handles POST /api/backup/import requests. The import result is
// always a 200 with {success, message}; a rejected document is not an
// HTTP error, it is a structured outcome the client shows the user.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var doc backup.Document
	if err := shared.DecodeJSON(r, &doc); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid backup document")
		return
	}

	result := h.backups.Import(r.Context(), &doc)
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
