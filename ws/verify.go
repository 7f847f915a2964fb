package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/fairplay-verify/replayverifier/internal/jsonio"
	"github.com/fairplay-verify/replayverifier/replay"
)

// HandleVerifySession verifies a session record posted as the request
// body and responds with the full replay.Result as JSON.
func HandleVerifySession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		json.NewEncoder(w).Encode(map[string]string{"error": "method not allowed, use POST"})
		return
	}

	in, err := jsonio.Decode(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	result := replay.VerifySession(in)
	log.Printf("✅ Verified session - valid: %v, ticks: %d", result.Valid, result.TicksProcessed)

	json.NewEncoder(w).Encode(result)
}
