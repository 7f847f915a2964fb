package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fairplay-verify/replayverifier/config"
	"github.com/fairplay-verify/replayverifier/replay"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPool is the global PostgreSQL connection pool used by the
// audit sink.
var PostgresPool *pgxpool.Pool

// AuditRecord is one persisted verification run: the digest that
// identifies the input, the verdict, and when it was recorded.
type AuditRecord struct {
	Digest    string        `json:"digest"`
	Valid     bool          `json:"valid"`
	Result    replay.Result `json:"result"`
	CreatedAt time.Time     `json:"createdAt"`
}

// InitPostgres initializes the PostgreSQL connection pool from
// DATABASE_URL.
func InitPostgres() error {
	log.Println("🔌 Connecting to PostgreSQL...")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(config.AuditMaxOpenConns)
	poolConfig.MinConns = int32(config.AuditMaxIdleConns)
	poolConfig.MaxConnLifetime = config.AuditConnMaxLifetime

	PostgresPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := PostgresPool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ PostgreSQL connected successfully")

	if err := InitSchema(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// ClosePostgres closes the PostgreSQL connection pool.
func ClosePostgres() {
	if PostgresPool != nil {
		log.Println("🔌 Closing PostgreSQL connection...")
		PostgresPool.Close()
	}
}

// InitSchema creates the audit_log table if it doesn't already exist.
func InitSchema(ctx context.Context) error {
	log.Println("📋 Initializing database schema...")

	schema := `
	CREATE TABLE IF NOT EXISTS audit_log (
		id SERIAL PRIMARY KEY,
		digest TEXT NOT NULL,
		valid BOOLEAN NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_audit_log_digest ON audit_log(digest);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created_at ON audit_log(created_at DESC);
	`

	if _, err := PostgresPool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create audit_log table: %w", err)
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}

// StoreAuditRecord persists one verification run.
func StoreAuditRecord(ctx context.Context, digest string, result replay.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal replay result: %w", err)
	}

	query := `
	INSERT INTO audit_log (digest, valid, result)
	VALUES ($1, $2, $3)
	`
	if _, err := PostgresPool.Exec(ctx, query, digest, result.Valid, resultJSON); err != nil {
		return fmt.Errorf("failed to store audit record: %w", err)
	}

	log.Printf("✅ Stored audit record - digest: %s, valid: %v", digest[:12], result.Valid)
	return nil
}

// GetRecentAuditRecords retrieves the most recent audit records, newest
// first.
func GetRecentAuditRecords(ctx context.Context, limit int) ([]*AuditRecord, error) {
	query := `
	SELECT digest, valid, result, created_at
	FROM audit_log
	ORDER BY created_at DESC
	LIMIT $1
	`
	rows, err := PostgresPool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var records []*AuditRecord
	for rows.Next() {
		var rec AuditRecord
		var resultJSON []byte
		if err := rows.Scan(&rec.Digest, &rec.Valid, &resultJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit result: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// HealthCheckPostgres performs a PostgreSQL health check.
func HealthCheckPostgres(ctx context.Context) error {
	if PostgresPool == nil {
		return fmt.Errorf("postgres pool not initialized")
	}
	return PostgresPool.Ping(ctx)
}
