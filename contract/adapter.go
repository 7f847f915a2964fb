// Package contract defines the settlement boundary: the interface a
// real on-chain integration would satisfy to record a verification
// verdict, plus the wire type that digest is carried in. Settlement
// contracts are external collaborators — contract only, no
// implementation lives here beyond a no-op. No command or test in this
// repository calls into this package.
package contract

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// CommitmentDigest is the on-chain-addressable identity of one verified
// session: the house commitment hash, held as a 32-byte hash, alongside
// the seed actually used to replay it as a separate field. go-ethereum's
// common.Hash is reused here purely as a
// fixed-width byte-array wire type — no RPC client, ABI binding, or
// transaction signing from go-ethereum is used anywhere in this package
// (see DESIGN.md for why the rest of go-ethereum has no home here).
type CommitmentDigest struct {
	Hash common.Hash
	Seed uint32
}

// NewCommitmentDigest packs a commit hash string and the seed that
// produced it into a CommitmentDigest.
func NewCommitmentDigest(houseCommitHash string, seed uint32) CommitmentDigest {
	return CommitmentDigest{
		Hash: common.HexToHash(houseCommitHash),
		Seed: seed,
	}
}

// SettlementAdapter is what a real on-chain settlement integration would
// implement: given a verified session's digest and verdict, record it
// wherever the settlement layer lives. Neither the core, the replay
// orchestrator, nor any command calls it.
type SettlementAdapter interface {
	SubmitVerifiedResult(ctx context.Context, digest CommitmentDigest, valid bool) error
}

// NoopAdapter discards every submission. It is the only concrete
// SettlementAdapter this repository provides — an actual chain
// integration is out of scope.
type NoopAdapter struct{}

// SubmitVerifiedResult does nothing and never fails.
func (NoopAdapter) SubmitVerifiedResult(ctx context.Context, digest CommitmentDigest, valid bool) error {
	return nil
}
