package game

import (
	"math"

	"github.com/fairplay-verify/replayverifier/config"
	"github.com/fairplay-verify/replayverifier/crypto"
)

// GameEngine owns a GameState and the LayeredPriceEngine that drives it.
// It is the sole mutator of both — every State call returns an
// independent copy, never a reference into the engine's own fields.
type GameEngine struct {
	state       GameState
	priceEngine *LayeredPriceEngine
}

// NewGameEngine builds a fresh engine from a session config. If cfg.Seed
// is nil an implementation-defined seed is drawn — for verification a
// seed is always supplied by the caller, so this path only matters for
// demo/fixture generation.
func NewGameEngine(cfg SessionConfig) *GameEngine {
	var seed uint32
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else if sampled, _, err := crypto.GenerateSampleSeed(); err == nil {
		seed = sampled
	} else {
		seed = 1
	}

	return &GameEngine{
		priceEngine: NewLayeredPriceEngine(seed, DefaultLayerConfig()),
		state: GameState{
			Capital:       cfg.InitialCapital,
			CurrentPrice:  cfg.InitialPrice,
			HouseBankroll: cfg.InitialHouseBankroll,
			LayeredState:  NewLayeredEngineState(cfg.InitialPrice),
			Options:       []Option{},
		},
	}
}

// State returns a deep copy of the engine's current state.
func (e *GameEngine) State() GameState {
	s := e.state
	if e.state.Position != nil {
		p := *e.state.Position
		s.Position = &p
	}
	if e.state.SimpleTurbo != nil {
		st := *e.state.SimpleTurbo
		s.SimpleTurbo = &st
	}
	s.Options = make([]Option, len(e.state.Options))
	copy(s.Options, e.state.Options)
	return s
}

// ProcessTick advances the engine by exactly one tick, in a fixed order.
func (e *GameEngine) ProcessTick() {
	s := &e.state

	// 1. Increment tick count.
	s.TickCount++

	// 2. Advance the price engine.
	wasTurboActive := s.LayeredState.TurboActive
	s.LayeredState = e.priceEngine.NextTick(s.LayeredState)
	newPrice := s.LayeredState.Price
	s.CurrentPrice = newPrice

	// 3. Mirror turbo state; clear SimpleTurbo once it has just ended.
	if s.SimpleTurbo != nil {
		s.SimpleTurbo.Active = s.LayeredState.TurboActive
		s.SimpleTurbo.TicksRemaining = s.LayeredState.TurboTicksRemaining
		if wasTurboActive && !s.LayeredState.TurboActive {
			s.SimpleTurbo = nil
		}
	}

	// 4. No position => no shield.
	if s.Position == nil {
		s.ShieldTicksRemaining = 0
	}

	// 5. Liquidation check, then funding accrual if the position survives.
	if s.Position != nil {
		pos := s.Position
		pnl := LeveragedPnL(pos.EntryPrice, newPrice, pos.Direction, pos.Size, pos.Leverage)
		equity := Equity(pos.Size, pnl, pos.CumulativeFunding)

		if IsLiquidated(equity) {
			if s.ShieldTicksRemaining > 0 {
				s.ShieldTicksRemaining--
			} else {
				s.HouseBankroll += pos.Size
				s.TotalLosses += pos.TotalCapitalInvested
				s.LiquidationCount++
				s.Position = nil
				s.ShieldTicksRemaining = 0
			}
		} else {
			fundingCost := pos.Size * pos.Leverage * config.FundingRatePerTick
			pos.CumulativeFunding += fundingCost
			pos.TotalFundingPaid += fundingCost
			s.TurboPoints += config.EdgeEarnRate * fundingCost
		}
	}

	// 6. Expire options.
	var optionsReturn float64
	var newLossesThisTick float64
	surviving := s.Options[:0:0]
	for _, opt := range s.Options {
		opt.TicksRemaining--
		if opt.TicksRemaining <= 0 {
			if IsInTheMoney(opt.Direction, opt.StrikePrice, newPrice) {
				payout := opt.Premium * float64(opt.Multiplier)
				optionsReturn += payout
				s.HouseBankroll -= payout - opt.Premium
			} else {
				s.HouseBankroll += opt.Premium
				s.TotalLosses += opt.Premium
				newLossesThisTick += opt.Premium
			}
			continue
		}
		surviving = append(surviving, opt)
	}
	s.Options = surviving

	// 7. Final bookkeeping.
	s.TurboPoints += newLossesThisTick * config.TurboLossPremium
	s.Capital = math.Max(0, s.Capital+optionsReturn)
}

// ExecuteAction dispatches on the action's tag and applies it, in place.
// It returns whether the action had any observable
// effect — silent no-ops return false, which the replay orchestrator
// surfaces as a warning.
func (e *GameEngine) ExecuteAction(a Action) bool {
	switch a.Type {
	case ActionOpenPosition:
		return e.openPosition(a)
	case ActionClosePosition:
		return e.closePosition()
	case ActionBuyShield:
		return e.buyShield()
	case ActionBuyOption:
		return e.buyOption(a)
	case ActionTriggerSimpleTurbo:
		return e.triggerSimpleTurbo()
	case ActionRelever:
		return e.relever(a)
	case ActionAddEquity:
		return e.addEquity(a)
	default:
		return false
	}
}

func (e *GameEngine) openPosition(a Action) bool {
	s := &e.state
	if s.Position != nil {
		return false
	}
	requestedBudget := math.Min(s.Capital*a.SizePercent, s.Capital)
	if requestedBudget <= 0 {
		return false
	}

	spreadMultiplier := 1 + a.Leverage*config.SpreadRate
	size := requestedBudget / spreadMultiplier
	notional := size * a.Leverage
	spreadCost := notional * config.SpreadRate
	totalCost := size + spreadCost

	s.Capital -= totalCost
	s.HouseBankroll += spreadCost
	s.TotalVolumeTraded += notional
	s.TradeCount++
	s.TurboPoints += config.EdgeEarnRate * spreadCost

	s.Position = &Position{
		Direction:            a.Direction,
		EntryPrice:           s.CurrentPrice,
		Size:                 size,
		Leverage:             a.Leverage,
		CumulativeFunding:    0,
		CapitalAllocated:     size,
		TotalCapitalInvested: size,
		AccumulatedPnL:       0,
		OriginalEntryPrice:   s.CurrentPrice,
		TotalFundingPaid:     0,
		OpenTick:             s.TickCount,
	}
	return true
}

func (e *GameEngine) closePosition() bool {
	s := &e.state
	if s.Position == nil {
		return false
	}
	pos := s.Position

	pnl := LeveragedPnL(pos.EntryPrice, s.CurrentPrice, pos.Direction, pos.Size, pos.Leverage)
	funding := pos.CumulativeFunding

	s.HouseBankroll += funding - pnl
	returned := pos.Size + pnl - funding
	truePnL := math.Max(0, returned) - pos.TotalCapitalInvested
	newLosses := 0.0
	if truePnL < 0 {
		newLosses = -truePnL
	}

	s.Capital += math.Max(0, returned)
	s.TotalProfit += pnl - funding
	s.TotalLosses += newLosses
	s.TurboPoints += newLosses * config.TurboLossPremium

	s.Position = nil
	s.ShieldTicksRemaining = 0
	return true
}

func (e *GameEngine) buyShield() bool {
	s := &e.state
	if s.Position == nil {
		return false
	}
	notional := s.Position.Size * s.Position.Leverage
	cost := notional * config.ShieldFlatRate
	if s.TurboPoints < cost {
		return false
	}
	s.TurboPoints -= cost
	s.ShieldTicksRemaining += config.ShieldTicksPerBuy
	return true
}

func (e *GameEngine) buyOption(a Action) bool {
	s := &e.state
	if a.Premium > s.Capital {
		return false
	}

	strike := StrikePrice(s.CurrentPrice, a.OptionDirection, a.Multiplier, a.DurationSeconds)
	edge := a.Premium * config.OptionEdgeRate
	s.TurboPoints += config.EdgeEarnRate * edge

	s.Capital -= a.Premium
	s.TotalVolumeTraded += a.Premium

	totalTicks := a.DurationSeconds * config.TicksPerSecond
	s.Options = append(s.Options, Option{
		Direction:      a.OptionDirection,
		StrikePrice:    strike,
		PurchasePrice:  s.CurrentPrice,
		Premium:        a.Premium,
		Multiplier:     a.Multiplier,
		TicksRemaining: totalTicks,
		TotalTicks:     totalTicks,
	})
	return true
}

func (e *GameEngine) triggerSimpleTurbo() bool {
	s := &e.state
	if s.Position == nil {
		return false
	}
	if s.SimpleTurbo != nil && s.SimpleTurbo.Active {
		return false
	}
	notional := s.Position.Size * s.Position.Leverage
	cost := notional * config.SimpleTurboCostRate
	if s.TurboPoints < cost {
		return false
	}

	s.LayeredState = e.priceEngine.StartTurbo(s.LayeredState)
	s.SimpleTurbo = &SimpleTurbo{
		Active:         true,
		TicksRemaining: s.LayeredState.TurboTicksRemaining,
		Direction:      s.LayeredState.TurboDirection,
		StartPrice:     s.CurrentPrice,
	}
	s.TurboPoints -= cost
	return true
}

func (e *GameEngine) relever(a Action) bool {
	s := &e.state
	if s.Position == nil {
		return false
	}
	pos := s.Position

	pnl := LeveragedPnL(pos.EntryPrice, s.CurrentPrice, pos.Direction, pos.Size, pos.Leverage)
	funding := pos.CumulativeFunding
	equity := Equity(pos.Size, pnl, funding)
	if equity <= 0 {
		return false
	}

	newNotional := equity * a.TargetLeverage
	spreadCost := newNotional * config.SpreadRate
	newSize := equity - spreadCost
	if newSize <= 0 {
		return false
	}

	lockedInPnL := pnl - funding - spreadCost
	s.HouseBankroll += spreadCost + funding - pnl
	s.TotalVolumeTraded += newNotional
	s.TurboPoints += config.EdgeEarnRate * spreadCost

	pos.EntryPrice = s.CurrentPrice
	pos.Size = newSize
	pos.Leverage = a.TargetLeverage
	pos.CumulativeFunding = 0
	pos.CapitalAllocated = newSize
	pos.AccumulatedPnL += lockedInPnL
	pos.TotalFundingPaid += funding
	return true
}

func (e *GameEngine) addEquity(a Action) bool {
	s := &e.state
	if s.Position == nil {
		return false
	}
	pos := s.Position

	additionalCapital := s.Capital * a.AdditionalPercent
	pnl := LeveragedPnL(pos.EntryPrice, s.CurrentPrice, pos.Direction, pos.Size, pos.Leverage)
	funding := pos.CumulativeFunding
	currentEquity := Equity(pos.Size, pnl, funding)
	if currentEquity <= 0 || additionalCapital <= 0 {
		return false
	}

	units := (pos.Size * pos.Leverage) / pos.EntryPrice
	newEquity := currentEquity + additionalCapital
	newLeverage := math.Max(1, units*s.CurrentPrice/newEquity)

	s.HouseBankroll += funding - pnl
	s.Capital = math.Max(0, s.Capital-additionalCapital)

	pos.Size = newEquity
	pos.Leverage = newLeverage
	pos.CumulativeFunding = 0
	pos.TotalCapitalInvested += additionalCapital
	pos.AccumulatedPnL += pnl - funding
	pos.TotalFundingPaid += funding
	return true
}
