// Package report renders a replay.Result for a human or for another
// program. This is a boundary package — it never alters the verdict,
// only formats it.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fairplay-verify/replayverifier/replay"
	"github.com/fairplay-verify/replayverifier/state"
)

// candleTickSpan is how many replayed ticks aggregate into one candle
// in the text report's price summary.
const candleTickSpan = 50

// RenderJSON writes result to w as indented JSON, field names matching
// the §6 output schema exactly.
func RenderJSON(w io.Writer, result replay.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// RenderText writes a multi-line human-readable summary, in the
// teacher's leaderboard-endpoint style: a status emoji banner, then a
// flat list of the fields that matter to a human reading a verdict.
func RenderText(w io.Writer, result replay.Result) error {
	var b strings.Builder

	if result.Valid {
		b.WriteString("✅ Session verified: replay matches the claimed outcome.\n")
	} else {
		b.WriteString("❌ Session FAILED verification.\n")
	}

	fmt.Fprintf(&b, "\nCommitment checks:\n")
	fmt.Fprintf(&b, "  house seed:      %s\n", statusMark(result.HouseCommitmentValid))
	fmt.Fprintf(&b, "  player seed:     %s\n", statusMark(result.PlayerCommitmentValid))
	fmt.Fprintf(&b, "  seed combination: %s\n", statusMark(result.SeedCombinationValid))

	fmt.Fprintf(&b, "\nReplay:\n")
	fmt.Fprintf(&b, "  ticks processed:   %d\n", result.TicksProcessed)
	fmt.Fprintf(&b, "  actions executed:  %d\n", result.ActionsExecuted)
	fmt.Fprintf(&b, "  final capital:     %.4f\n", result.ReplayedState.Capital)
	fmt.Fprintf(&b, "  final price:       %.4f\n", result.ReplayedState.CurrentPrice)

	if result.StateMatch != nil {
		fmt.Fprintf(&b, "  claimed state match: %s\n", statusMark(*result.StateMatch))
	}

	if len(result.PriceHistory) > 0 {
		candles := state.BuildCandles(result.PriceHistory, candleTickSpan)
		fmt.Fprintf(&b, "\nPrice (%d candles of %d ticks each):\n", len(candles), candleTickSpan)
		for _, c := range candles {
			close := c.Open
			if c.Close != nil {
				close = *c.Close
			}
			fmt.Fprintf(&b, "  tick %-6d open %.4f  high %.4f  low %.4f  close %.4f\n",
				c.StartTick, c.Open, c.Max, c.Min, close)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\n⚠️  Warnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "\n🚫 Errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func statusMark(ok bool) string {
	if ok {
		return "✅ ok"
	}
	return "❌ failed"
}
