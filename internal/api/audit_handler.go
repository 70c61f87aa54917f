package api

import (
	"net/http"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// AuditHandler exposes the audit trail for inspection.
type AuditHandler struct {
	audit service.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/audit requests.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.audit.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
