// Command serve runs the verifier as an HTTP + WebSocket service: a
// JSON POST endpoint for one-shot verification, a streaming endpoint
// for tick-by-tick progress, a health check, and an audit log query.
package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/fairplay-verify/replayverifier/api"
	"github.com/fairplay-verify/replayverifier/db"
	"github.com/fairplay-verify/replayverifier/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables")
	} else {
		log.Println("✅ Loaded environment variables from .env")
	}

	if err := db.InitPostgres(); err != nil {
		log.Printf("⚠️  Warning: PostgreSQL initialization failed: %v", err)
		log.Println("   Audit logging will be disabled")
	}
	defer db.ClosePostgres()

	if err := db.InitRedis(); err != nil {
		log.Printf("⚠️  Warning: Redis initialization failed: %v", err)
		log.Println("   Replay result caching will be disabled")
	}
	defer db.CloseRedis()

	http.HandleFunc("/ws", ws.HandleReplayStream)
	http.HandleFunc("/api/verify", ws.HandleVerifySession)
	http.HandleFunc("/api/health", api.HandleHealthCheck)
	http.HandleFunc("/api/audit", api.HandleGetAuditLog)

	addr := "0.0.0.0:8080"
	log.Printf("🚀 Server starting on %s", addr)
	log.Println("")
	log.Println("📡 WebSocket endpoint:")
	log.Println("   ws://localhost:8080/ws - streams tick-by-tick replay progress")
	log.Println("")
	log.Println("🔌 API endpoints:")
	log.Println("   POST /api/verify - verify a session record, returns VerificationResult")
	log.Println("   GET  /api/health - health check (Redis + PostgreSQL)")
	log.Println("   GET  /api/audit  - recent verification runs")
	log.Println("")

	if err := http.ListenAndServe(addr, corsMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatal("❌ Server error:", err)
	}
}

// corsMiddleware adds CORS headers so a browser-based frontend can call
// these endpoints directly.
func corsMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}
