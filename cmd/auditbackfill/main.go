// Command auditbackfill replays every session JSON file in a directory
// and persists each verdict into the audit_log table. It exists for
// operators bringing an existing archive of session records under
// audit after the fact — normal verification runs through cmd/verify
// and audit writes happen inline.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/fairplay-verify/replayverifier/db"
	"github.com/fairplay-verify/replayverifier/internal/jsonio"
	"github.com/fairplay-verify/replayverifier/replay"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found, continuing with process environment")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: auditbackfill <directory of session JSON files>")
	}
	dir := os.Args[1]

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if err := db.InitPostgres(); err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}
	defer db.ClosePostgres()

	ctx := context.Background()
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("failed to read directory %s: %v", dir, err)
	}

	var backfilled, failed int
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Printf("⚠️  skipping %s: %v", entry.Name(), err)
			failed++
			continue
		}

		in, err := jsonio.Decode(f)
		f.Close()
		if err != nil {
			log.Printf("⚠️  skipping %s: %v", entry.Name(), err)
			failed++
			continue
		}

		result := replay.VerifySession(in)
		digest, err := db.InputDigest(in)
		if err != nil {
			log.Printf("⚠️  failed to digest %s: %v", entry.Name(), err)
			failed++
			continue
		}

		if err := db.StoreAuditRecord(ctx, digest, result); err != nil {
			log.Printf("⚠️  failed to store audit record for %s: %v", entry.Name(), err)
			failed++
			continue
		}

		backfilled++
	}

	log.Printf("✅ backfilled %d session(s), %d failed", backfilled, failed)
}
