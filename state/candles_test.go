package state

import "testing"

func TestBuildCandlesGroupsFixedWidthWindows(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5, 6, 7}
	candles := BuildCandles(prices, 3)

	if len(candles) != 3 {
		t.Fatalf("expected 3 candles, got %d", len(candles))
	}

	first := candles[0]
	if first.Open != 1 || first.Max != 3 || first.Min != 1 {
		t.Errorf("unexpected first candle: %+v", first)
	}
	if first.Close == nil || *first.Close != 3 {
		t.Errorf("expected first candle close 3, got %v", first.Close)
	}
	if !first.IsComplete {
		t.Error("expected first candle to be complete")
	}

	last := candles[2]
	if last.StartTick != 6 || last.TickSpan != 1 {
		t.Errorf("expected trailing partial candle at tick 6 spanning 1 tick, got %+v", last)
	}
	if last.IsComplete {
		t.Error("expected trailing short candle to be marked incomplete")
	}
}

func TestBuildCandlesEmptyInput(t *testing.T) {
	if candles := BuildCandles(nil, 5); len(candles) != 0 {
		t.Errorf("expected no candles for empty input, got %d", len(candles))
	}
}

func TestCandleGroupDeepCopyIsIndependent(t *testing.T) {
	close := 3.0
	original := &CandleGroup{
		Open:      1,
		Close:     &close,
		Max:       3,
		Min:       1,
		ValueList: []float64{1, 2, 3},
		StartTick: 0,
		TickSpan:  3,
	}

	clone := original.DeepCopy()
	clone.ValueList[0] = 99
	*clone.Close = 42

	if original.ValueList[0] == 99 {
		t.Error("mutating the clone's ValueList mutated the original")
	}
	if *original.Close == 42 {
		t.Error("mutating the clone's Close mutated the original")
	}
}
