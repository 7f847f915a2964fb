package db

import (
	"context"
	"testing"

	"github.com/fairplay-verify/replayverifier/game"
	"github.com/fairplay-verify/replayverifier/replay"
)

func TestInputDigestIsStableAndValueSensitive(t *testing.T) {
	base := replay.Input{
		HouseSeed:       777,
		HouseCommitHash: "abc",
		Config:          game.SessionConfig{},
	}

	d1, err := InputDigest(base)
	if err != nil {
		t.Fatalf("InputDigest failed: %v", err)
	}
	d2, err := InputDigest(base)
	if err != nil {
		t.Fatalf("InputDigest failed: %v", err)
	}
	if d1 != d2 {
		t.Errorf("expected identical inputs to produce identical digests, got %s vs %s", d1, d2)
	}

	changed := base
	changed.HouseSeed = 778
	d3, err := InputDigest(changed)
	if err != nil {
		t.Fatalf("InputDigest failed: %v", err)
	}
	if d1 == d3 {
		t.Error("expected a changed HouseSeed to change the digest")
	}
}

func TestNilRedisClientIsAlwaysMissAndNoopStore(t *testing.T) {
	RedisClient = nil
	ctx := context.Background()

	cached, err := GetCachedResult(ctx, "anydigest")
	if err != nil {
		t.Fatalf("expected nil error with nil client, got %v", err)
	}
	if cached != nil {
		t.Error("expected nil result with nil client")
	}

	if err := StoreCachedResult(ctx, "anydigest", replay.Result{}); err != nil {
		t.Errorf("expected StoreCachedResult to no-op with nil client, got %v", err)
	}
}
