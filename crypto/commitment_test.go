package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"testing"
)

func TestHashSeedMatchesRawSHA256(t *testing.T) {
	for _, seed := range []uint32{0, 1, 42, 2863311530, 4294967295} {
		want := sha256.Sum256([]byte(strconv.FormatUint(uint64(seed), 10)))
		got := HashSeed(seed)
		if got != hex.EncodeToString(want[:]) {
			t.Errorf("HashSeed(%d) = %s, want %s", seed, got, hex.EncodeToString(want[:]))
		}
		if len(got) != 64 {
			t.Errorf("HashSeed(%d) length = %d, want 64", seed, len(got))
		}
	}
}

func TestVerifyCommitmentRoundTrip(t *testing.T) {
	seed := uint32(2863311530)
	hash := HashSeed(seed)
	if !VerifyCommitment(seed, hash) {
		t.Fatal("VerifyCommitment should succeed against the seed's own hash")
	}
	if VerifyCommitment(seed, "definitely_wrong_hash") {
		t.Fatal("VerifyCommitment should fail against a mismatched hash")
	}
}

func TestCombineSeeds(t *testing.T) {
	cases := []struct {
		a, b, want uint32
	}{
		{0xAAAAAAAA, 0x55555555, 0xFFFFFFFF},
		{100, 100, 0},
		{0, 12345, 12345},
	}
	for _, c := range cases {
		if got := CombineSeeds(c.a, c.b); got != c.want {
			t.Errorf("CombineSeeds(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCombineSeedsInvolutive(t *testing.T) {
	a, b := uint32(11111), uint32(22222)
	combined := CombineSeeds(a, b)
	if back := CombineSeeds(combined, b); back != a {
		t.Errorf("CombineSeeds(CombineSeeds(a,b),b) = %d, want %d", back, a)
	}
}

func TestDeriveSubSeedIsPureAndDeterministic(t *testing.T) {
	master := uint32(12345)
	labels := []string{"sign", "magnitude", "volatility", "momentum", "turbo"}
	seen := map[uint32]string{}
	for _, label := range labels {
		a := DeriveSubSeed(master, label)
		b := DeriveSubSeed(master, label)
		if a != b {
			t.Fatalf("DeriveSubSeed(%d, %q) not deterministic: %d != %d", master, label, a, b)
		}
		if prior, ok := seen[a]; ok {
			t.Fatalf("DeriveSubSeed(%d, %q) collided with label %q — streams must be independent", master, label, prior)
		}
		seen[a] = label
	}
}

func TestDeriveSubSeedKnownValue(t *testing.T) {
	// hash = master; for each byte c of "" (empty label) the loop body
	// never executes, so DeriveSubSeed(master, "") must equal master
	// reinterpreted through the int32 round trip (a no-op for any value
	// that already fits in 32 bits).
	if got := DeriveSubSeed(12345, ""); got != 12345 {
		t.Errorf("DeriveSubSeed(12345, \"\") = %d, want 12345", got)
	}
}
