package game

import "testing"

func TestLeveragedPnLLong(t *testing.T) {
	pnl := LeveragedPnL(100, 110, Long, 1000, 10)
	want := 1000.0 * 0.10 * 10
	if pnl != want {
		t.Errorf("got %v, want %v", pnl, want)
	}
}

func TestLeveragedPnLShort(t *testing.T) {
	pnl := LeveragedPnL(100, 90, Short, 1000, 10)
	want := 1000.0 * 0.10 * 10
	if pnl != want {
		t.Errorf("got %v, want %v", pnl, want)
	}
}

func TestEquityAndLiquidation(t *testing.T) {
	eq := Equity(1000, -1000, 50)
	if !IsLiquidated(eq) {
		t.Errorf("equity %v should be liquidated", eq)
	}
	eq2 := Equity(1000, -500, 50)
	if IsLiquidated(eq2) {
		t.Errorf("equity %v should not be liquidated", eq2)
	}
}

func TestDynamicLiquidationPriceMatchesPnLZeroEquity(t *testing.T) {
	entry := 100.0
	size := 1000.0
	leverage := 10.0
	funding := 20.0

	for _, dir := range []Direction{Long, Short} {
		liqPrice := DynamicLiquidationPrice(entry, size, leverage, dir, funding)
		pnl := LeveragedPnL(entry, liqPrice, dir, size, leverage)
		eq := Equity(size, pnl, funding)
		if eq < -1e-6 || eq > 1e-6 {
			t.Errorf("%s: equity at computed liquidation price = %v, want ~0", dir, eq)
		}
	}
}

func TestBreakevenPriceZeroesOutFunding(t *testing.T) {
	entry := 100.0
	size := 1000.0
	leverage := 10.0
	funding := 20.0

	for _, dir := range []Direction{Long, Short} {
		be := BreakevenPrice(entry, size, leverage, dir, funding)
		pnl := LeveragedPnL(entry, be, dir, size, leverage)
		diff := pnl - funding
		if diff < -1e-6 || diff > 1e-6 {
			t.Errorf("%s: pnl-funding at breakeven = %v, want ~0", dir, diff)
		}
	}
}

func TestEffectiveLeverageZeroEquity(t *testing.T) {
	if lev := EffectiveLeverage(1000, 10, 0); lev != 0 {
		t.Errorf("expected 0 for non-positive equity, got %v", lev)
	}
}
