// Package jsonio decodes the session-record JSON schema into a
// replay.Input. This is a boundary package: it is the only place
// untrusted input is accepted, and the only place a malformed-input
// error is fatal rather than accumulated.
package jsonio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fairplay-verify/replayverifier/game"
	"github.com/fairplay-verify/replayverifier/replay"
)

// MalformedInputError reports a structural problem with a session record
// — the one error class that aborts before the core ever runs.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed session record: %s", e.Reason)
}

type sessionConfigDTO struct {
	InitialCapital       float64 `json:"initialCapital"`
	InitialPrice         float64 `json:"initialPrice"`
	InitialHouseBankroll float64 `json:"initialHouseBankroll"`
	TickRateMs           int     `json:"tickRateMs"`
}

type actionDTO struct {
	Type string `json:"type"`

	Direction   string  `json:"direction,omitempty"`
	SizePercent float64 `json:"sizePercent,omitempty"`
	Leverage    float64 `json:"leverage,omitempty"`

	OptionDirection string  `json:"optionDirection,omitempty"`
	Premium         float64 `json:"premium,omitempty"`
	Multiplier      int     `json:"multiplier,omitempty"`
	DurationSeconds int     `json:"durationSeconds,omitempty"`

	TargetLeverage float64 `json:"targetLeverage,omitempty"`

	AdditionalPercent float64 `json:"additionalPercent,omitempty"`
}

type loggedActionDTO struct {
	TickNumber int       `json:"tickNumber"`
	Action     actionDTO `json:"action"`
	Timestamp  int64     `json:"timestamp"`
}

type finalStateDTO struct {
	Capital     float64 `json:"capital"`
	TickCount   int     `json:"tickCount"`
	TotalProfit float64 `json:"totalProfit"`
	TotalLosses float64 `json:"totalLosses"`
}

type sessionRecordDTO struct {
	HouseSeed        uint32             `json:"houseSeed"`
	HouseCommitHash  string             `json:"houseCommitHash"`
	PlayerSeed       *uint32            `json:"playerSeed,omitempty"`
	PlayerCommitHash string             `json:"playerCommitHash,omitempty"`
	CombinedSeed     *uint32            `json:"combinedSeed,omitempty"`
	Config           sessionConfigDTO   `json:"config"`
	ActionLog        []loggedActionDTO  `json:"actionLog"`
	ExpectedFinalState *finalStateDTO   `json:"expectedFinalState,omitempty"`
}

// Decode reads one session record from r and converts it to a
// replay.Input. Every structural problem — bad JSON, a missing
// houseCommitHash, an unrecognized action type — is reported as a
// *MalformedInputError rather than a bare encoding/json error, so
// callers can distinguish "this input can't even be evaluated" from
// any verdict the core itself might reach.
func Decode(r io.Reader) (replay.Input, error) {
	var dto sessionRecordDTO
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		return replay.Input{}, &MalformedInputError{Reason: err.Error()}
	}

	if len(dto.HouseCommitHash) != 64 {
		return replay.Input{}, &MalformedInputError{Reason: "houseCommitHash must be 64 hex characters"}
	}

	actions := make([]game.LoggedAction, 0, len(dto.ActionLog))
	for i, a := range dto.ActionLog {
		action, err := toAction(a.Action)
		if err != nil {
			return replay.Input{}, &MalformedInputError{Reason: fmt.Sprintf("actionLog[%d]: %v", i, err)}
		}
		actions = append(actions, game.LoggedAction{
			TickNumber: a.TickNumber,
			Action:     action,
			Timestamp:  a.Timestamp,
		})
	}

	in := replay.Input{
		HouseSeed:        dto.HouseSeed,
		HouseCommitHash:  dto.HouseCommitHash,
		PlayerSeed:       dto.PlayerSeed,
		PlayerCommitHash: dto.PlayerCommitHash,
		CombinedSeed:     dto.CombinedSeed,
		Config: game.SessionConfig{
			InitialCapital:       dto.Config.InitialCapital,
			InitialPrice:         dto.Config.InitialPrice,
			InitialHouseBankroll: dto.Config.InitialHouseBankroll,
			TickRateMs:           dto.Config.TickRateMs,
		},
		ActionLog: actions,
	}

	if dto.ExpectedFinalState != nil {
		in.ExpectedFinalState = &game.GameState{
			Capital:     dto.ExpectedFinalState.Capital,
			TickCount:   dto.ExpectedFinalState.TickCount,
			TotalProfit: dto.ExpectedFinalState.TotalProfit,
			TotalLosses: dto.ExpectedFinalState.TotalLosses,
		}
	}

	return in, nil
}

func toAction(a actionDTO) (game.Action, error) {
	switch game.ActionType(a.Type) {
	case game.ActionOpenPosition:
		dir, err := toDirection(a.Direction)
		if err != nil {
			return game.Action{}, err
		}
		return game.Action{Type: game.ActionOpenPosition, Direction: dir, SizePercent: a.SizePercent, Leverage: a.Leverage}, nil
	case game.ActionClosePosition:
		return game.Action{Type: game.ActionClosePosition}, nil
	case game.ActionBuyShield:
		return game.Action{Type: game.ActionBuyShield}, nil
	case game.ActionBuyOption:
		dir, err := toOptionDirection(a.OptionDirection)
		if err != nil {
			return game.Action{}, err
		}
		return game.Action{
			Type:            game.ActionBuyOption,
			OptionDirection: dir,
			Premium:         a.Premium,
			Multiplier:      a.Multiplier,
			DurationSeconds: a.DurationSeconds,
		}, nil
	case game.ActionTriggerSimpleTurbo:
		return game.Action{Type: game.ActionTriggerSimpleTurbo}, nil
	case game.ActionRelever:
		return game.Action{Type: game.ActionRelever, TargetLeverage: a.TargetLeverage}, nil
	case game.ActionAddEquity:
		return game.Action{Type: game.ActionAddEquity, AdditionalPercent: a.AdditionalPercent}, nil
	default:
		return game.Action{}, fmt.Errorf("unrecognized action type %q", a.Type)
	}
}

func toDirection(s string) (game.Direction, error) {
	switch game.Direction(s) {
	case game.Long, game.Short:
		return game.Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q", s)
	}
}

func toOptionDirection(s string) (game.OptionDirection, error) {
	switch game.OptionDirection(s) {
	case game.Call, game.Put:
		return game.OptionDirection(s), nil
	default:
		return "", fmt.Errorf("invalid option direction %q", s)
	}
}
