// Package ws serves session verification over HTTP and a websocket
// connection. The websocket handler sends a replay's per-tick price
// series followed by the final VerificationResult.
package ws

import (
	"bytes"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/fairplay-verify/replayverifier/internal/jsonio"
	"github.com/fairplay-verify/replayverifier/replay"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var clientCount int64

// tickProgress is sent once per processed tick, after the replay has
// finished. replay.Result carries no per-tick capital, so Data.Capital
// is never set and is always sent as 0.
type tickProgress struct {
	Type string `json:"type"`
	Data struct {
		Tick    int     `json:"tick"`
		Price   float64 `json:"price"`
		Capital float64 `json:"capital"`
	} `json:"data"`
}

// HandleReplayStream upgrades the connection, reads one session record
// as the first text message, and runs replay.VerifySession to
// completion. It then sends one tickProgress message per entry of the
// result's PriceHistory, finishing with the full VerificationResult.
func HandleReplayStream(w http.ResponseWriter, r *http.Request) {
	log.Println("📥 WebSocket connection attempt from:", r.RemoteAddr)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("❌ WebSocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	atomic.AddInt64(&clientCount, 1)
	log.Printf("✅ Client connected! Total clients: %d\n", atomic.LoadInt64(&clientCount))
	defer func() {
		atomic.AddInt64(&clientCount, -1)
		log.Printf("👋 Client disconnected. Total clients: %d\n", atomic.LoadInt64(&clientCount))
	}()

	_, payload, err := conn.ReadMessage()
	if err != nil {
		log.Println("❌ Failed to read session record:", err)
		return
	}

	in, err := jsonio.Decode(bytes.NewReader(payload))
	if err != nil {
		conn.WriteJSON(map[string]interface{}{"type": "error", "error": err.Error()})
		return
	}

	result := replay.VerifySession(in)

	for i, price := range result.PriceHistory {
		msg := tickProgress{Type: "tick"}
		msg.Data.Tick = i
		msg.Data.Price = price
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}

	conn.WriteJSON(map[string]interface{}{
		"type":   "done",
		"result": result,
	})
}
