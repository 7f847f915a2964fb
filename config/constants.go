// Package config holds the protocol's global constants. These are pinned
// by the protocol, not tunable at runtime — expose them as immutable
// package-level values, never as config-file overrides.
package config

import "time"

/* =========================
   HOUSE EDGE & FUNDING
========================= */

const (
	SpreadRate = 0.005

	FundingRatePerHour = 0.10
	TicksPerHour        = 36000
	FundingRatePerTick  = FundingRatePerHour / TicksPerHour

	TicksPerSecond = 10

	SimpleTurboCostRate = 0.01

	ShieldFlatRate     = 0.0066
	ShieldTicksPerBuy  = 10

	TurboLossPremium = 0.02

	OptionEdgeRate = 0.02

	// Turbo points: the fraction of a transaction's house edge, and of a
	// realized loss, credited back to the player as turbo points.
	EdgeEarnRate = 0.20
	LossEarnRate = 0.02
)

/* =========================
   POSTGRES AUDIT SINK
========================= */
// Connection pool settings for the optional audit sink (package db). Not
// part of the protocol — only the verifier process's own persistence.

const (
	AuditMaxOpenConns    = 10
	AuditMaxIdleConns    = 2
	AuditConnMaxLifetime = 5 * time.Minute
)

/* =========================
   REPLAY CACHE (REDIS)
========================= */
// TTL for the optional memoized-replay cache (package db). A cache miss
// always falls back to a full replay — the TTL only bounds how long a
// verified result is trusted to still reflect the same input.

const (
	ReplayCacheTTL = 24 * time.Hour
)

/* =========================
   LIVE SERVE (WEBSOCKET)
========================= */

const (
	ServeReadDeadline  = 60 * time.Second
	ServeWriteDeadline = 10 * time.Second
	ServeReadBufferSize  = 1024
	ServeWriteBufferSize = 1024
	ServeMaxMessageSize  = 512 * 1024
)

/* =========================
   STATE COMPARISON TOLERANCE
========================= */

const StateComparisonTolerance = 1e-4
