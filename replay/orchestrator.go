// Package replay implements the verification orchestrator: it selects a
// seed, replays a session's action log against a fresh game engine, and
// compares the result against an optional claimed final state. It is the
// only package that ties the commitment verifier and the game engine
// together into the single VerificationResult a caller actually wants.
package replay

import (
	"fmt"
	"math"
	"sort"

	"github.com/fairplay-verify/replayverifier/config"
	"github.com/fairplay-verify/replayverifier/crypto"
	"github.com/fairplay-verify/replayverifier/game"
)

// Input is the fully-parsed, validated session record a caller hands to
// VerifySession. Building one from untrusted JSON is the jsonio package's
// job — by the time it reaches here, malformed-input errors have already
// been ruled out.
type Input struct {
	HouseSeed        uint32
	HouseCommitHash  string
	PlayerSeed       *uint32
	PlayerCommitHash string
	CombinedSeed     *uint32

	Config    game.SessionConfig
	ActionLog []game.LoggedAction

	ExpectedFinalState *game.GameState
}

// Result is the complete, self-describing verdict: the core's output
// contract.
type Result struct {
	Valid bool `json:"valid"`

	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	HouseCommitmentValid  bool `json:"houseCommitmentValid"`
	PlayerCommitmentValid bool `json:"playerCommitmentValid"`
	SeedCombinationValid  bool `json:"seedCombinationValid"`

	ReplayedState game.GameState `json:"replayedState"`

	TicksProcessed  int `json:"ticksProcessed"`
	ActionsExecuted int `json:"actionsExecuted"`

	StateMatch       *bool    `json:"stateMatch,omitempty"`
	StateDifferences []string `json:"stateDifferences,omitempty"`

	// PriceHistory is the replayed current_price sampled once per
	// processed tick, in order. It exists for the report renderer's
	// candle view (internal/report, state.BuildCandles) — the core
	// comparison logic above never reads it.
	PriceHistory []float64 `json:"priceHistory,omitempty"`
}

// VerifySession is the single entry point of the core. It never panics
// and never returns a Go error: every failure mode is accumulated into
// Result.Errors/Warnings instead, and the verdict is the boolean AND of
// every check.
func VerifySession(in Input) Result {
	commitCheck := crypto.VerifyCommitments(in.HouseSeed, in.HouseCommitHash, in.PlayerSeed, in.PlayerCommitHash, in.CombinedSeed)

	result := Result{
		HouseCommitmentValid:  commitCheck.HouseValid,
		PlayerCommitmentValid: commitCheck.PlayerValid,
		SeedCombinationValid:  commitCheck.SeedCombination,
		Errors:                append([]string{}, commitCheck.Errors...),
	}

	seed := in.HouseSeed
	if in.CombinedSeed != nil {
		seed = *in.CombinedSeed
	}

	cfg := in.Config
	cfg.Seed = &seed
	engine := game.NewGameEngine(cfg)

	actions := make([]game.LoggedAction, len(in.ActionLog))
	copy(actions, in.ActionLog)
	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].TickNumber != actions[j].TickNumber {
			return actions[i].TickNumber < actions[j].TickNumber
		}
		return actions[i].Timestamp < actions[j].Timestamp
	})

	maxTick := defaultMaxTick(in.ExpectedFinalState, actions)
	lastActionTick := -1
	if len(actions) > 0 {
		lastActionTick = actions[len(actions)-1].TickNumber
	}

	actionsExecuted := 0
	nextActionIdx := 0
	ticksProcessed := 0
	priceHistory := make([]float64, 0, maxTick+1)

	for t := 0; t < maxTick; t++ {
		for nextActionIdx < len(actions) && actions[nextActionIdx].TickNumber == t {
			applied := engine.ExecuteAction(actions[nextActionIdx].Action)
			if applied {
				actionsExecuted++
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"action %q at tick %d had no effect — possibly invalid",
					actions[nextActionIdx].Action.Type, t))
			}
			nextActionIdx++
		}

		engine.ProcessTick()
		ticksProcessed++
		priceHistory = append(priceHistory, engine.State().CurrentPrice)

		if in.ExpectedFinalState == nil && nextActionIdx >= len(actions) && t >= lastActionTick+10 {
			break
		}
	}

	final := engine.State()
	result.ReplayedState = final
	result.TicksProcessed = ticksProcessed
	result.ActionsExecuted = actionsExecuted
	result.PriceHistory = priceHistory

	if in.ExpectedFinalState != nil {
		match, diffs := compareStates(final, *in.ExpectedFinalState)
		result.StateMatch = &match
		result.StateDifferences = diffs
		result.Errors = append(result.Errors, diffs...)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// defaultMaxTick picks the replay horizon: the expected final state's
// tick count when one is given, else 100 ticks past the last logged
// action (or 1000 ticks if the log is empty).
func defaultMaxTick(expected *game.GameState, actions []game.LoggedAction) int {
	if expected != nil {
		return expected.TickCount
	}
	if len(actions) == 0 {
		return 1000
	}
	maxActionTick := 0
	for _, a := range actions {
		if a.TickNumber > maxActionTick {
			maxActionTick = a.TickNumber
		}
	}
	return maxActionTick + 100
}

// compareStates checks capital, tick count, total profit, and total
// losses against an absolute tolerance.
func compareStates(got, want game.GameState) (bool, []string) {
	var diffs []string

	if !within(got.Capital, want.Capital, config.StateComparisonTolerance) {
		diffs = append(diffs, fmt.Sprintf("capital mismatch: got %v, want %v", got.Capital, want.Capital))
	}
	if want.TickCount != 0 && got.TickCount != want.TickCount {
		diffs = append(diffs, fmt.Sprintf("tick count mismatch: got %d, want %d", got.TickCount, want.TickCount))
	}
	if !within(got.TotalProfit, want.TotalProfit, config.StateComparisonTolerance) {
		diffs = append(diffs, fmt.Sprintf("total profit mismatch: got %v, want %v", got.TotalProfit, want.TotalProfit))
	}
	if !within(got.TotalLosses, want.TotalLosses, config.StateComparisonTolerance) {
		diffs = append(diffs, fmt.Sprintf("total losses mismatch: got %v, want %v", got.TotalLosses, want.TotalLosses))
	}

	return len(diffs) == 0, diffs
}

func within(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
