// Package state aggregates a replayed session's per-tick prices into
// candles for the report renderer. It owns no mutable server-wide
// state — unlike the live-multiplayer room/chat/bettor state this
// package's predecessor tracked, a single verification run is
// synchronous and single-session, so there is nothing here to share
// across requests.
package state

// CandleGroup is one OHLC-style price candle built from a run of
// consecutive tick prices.
type CandleGroup struct {
	Open       float64   `json:"open"`
	Close      *float64  `json:"close,omitempty"`
	Max        float64   `json:"max"`
	Min        float64   `json:"min"`
	ValueList  []float64 `json:"valueList"`
	StartTick  int       `json:"startTick"`
	TickSpan   int       `json:"tickSpan"`
	IsComplete bool      `json:"isComplete"`
}

// DeepCopy returns an independent copy of c, safe to hand to a caller
// that must not observe further mutation.
func (c *CandleGroup) DeepCopy() *CandleGroup {
	out := &CandleGroup{
		Open:       c.Open,
		Max:        c.Max,
		Min:        c.Min,
		StartTick:  c.StartTick,
		TickSpan:   c.TickSpan,
		IsComplete: c.IsComplete,
	}
	if c.Close != nil {
		v := *c.Close
		out.Close = &v
	}
	if c.ValueList != nil {
		out.ValueList = make([]float64, len(c.ValueList))
		copy(out.ValueList, c.ValueList)
	}
	return out
}

// BuildCandles groups a replayed session's per-tick price series into
// fixed-width candles, ticksPerCandle ticks wide. Every candle's Close
// is set to its last sample. The final candle is marked complete only
// if it received exactly ticksPerCandle samples — a short trailing
// candle (the replay ended mid-candle) has IsComplete false.
func BuildCandles(prices []float64, ticksPerCandle int) []*CandleGroup {
	if ticksPerCandle <= 0 {
		ticksPerCandle = 1
	}

	var candles []*CandleGroup
	for i := 0; i < len(prices); i += ticksPerCandle {
		end := i + ticksPerCandle
		if end > len(prices) {
			end = len(prices)
		}
		window := prices[i:end]

		candle := &CandleGroup{
			Open:      window[0],
			Max:       window[0],
			Min:       window[0],
			ValueList: append([]float64{}, window...),
			StartTick: i,
			TickSpan:  len(window),
		}
		for _, p := range window {
			if p > candle.Max {
				candle.Max = p
			}
			if p < candle.Min {
				candle.Min = p
			}
		}
		last := window[len(window)-1]
		candle.Close = &last
		candle.IsComplete = len(window) == ticksPerCandle

		candles = append(candles, candle)
	}
	return candles
}
