// api/audit.go
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/fairplay-verify/replayverifier/db"
)

/* =========================
   RESPONSE TYPES
========================= */

// AuditLogResponse is the JSON body of a recent-verifications query.
type AuditLogResponse struct {
	Success bool              `json:"success"`
	Records []*db.AuditRecord `json:"records"`
}

/* =========================
   HTTP ENDPOINTS
========================= */

// HandleGetAuditLog handles GET /api/audit — the most recently
// persisted verification runs, newest first.
// Query params: limit (optional, default 20)
func HandleGetAuditLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 20
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx := context.Background()
	records, err := db.GetRecentAuditRecords(ctx, limit)
	if err != nil {
		log.Printf("❌ Failed to get audit log: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to retrieve audit log")
		return
	}

	response := AuditLogResponse{Success: true, Records: records}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(response)

	log.Printf("📋 Retrieved audit log with %d entries", len(records))
}
