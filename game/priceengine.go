package game

import (
	"math"

	"github.com/fairplay-verify/replayverifier/crypto"
)

// LayeredEngineState is the entire RNG-derived state of price generation.
// It is a plain value — copying it is always safe — but advancing it
// requires the engine's live PRNG streams, which is why NextTick lives on
// *LayeredPriceEngine rather than on the state itself.
type LayeredEngineState struct {
	Price               float64 `json:"price"`
	Tick                int     `json:"tick"`
	MeanPrice           float64 `json:"meanPrice"`
	Momentum            float64 `json:"momentum"`
	LastSign            int     `json:"lastSign"` // -1, 0, or +1
	InVolatilitySpike   bool    `json:"inVolatilitySpike"`
	TurboActive         bool    `json:"turboActive"`
	TurboTicksRemaining int     `json:"turboTicksRemaining"`
	TurboDirection      int     `json:"turboDirection"` // +1 or -1
}

// NewLayeredEngineState seeds the engine state from an initial price. Mean
// price starts equal to price; everything else starts at zero/false.
func NewLayeredEngineState(initialPrice float64) LayeredEngineState {
	return LayeredEngineState{
		Price:     initialPrice,
		MeanPrice: initialPrice,
	}
}

// LayeredPriceEngine owns five independently seeded PRNG streams — sign,
// magnitude, volatility, momentum, turbo — plus the immutable layer config.
// The four price-layer streams are advanced only by NextTick's normal
// path; the turbo stream is advanced only by StartTurbo. This decoupling
// is mandatory: it keeps a player's choice to trigger turbo from ever
// perturbing the background price stream, which would otherwise leak
// information about player actions into "independent" price draws.
type LayeredPriceEngine struct {
	config LayerConfig

	signRNG       *PRNG
	magnitudeRNG  *PRNG
	volatilityRNG *PRNG
	momentumRNG   *PRNG
	turboRNG      *PRNG
}

// NewLayeredPriceEngine derives the five sub-seeds from master and builds
// one PRNG per stream. Sub-seed derivation is pure, so two engines built
// from the same master and config always draw identical streams.
func NewLayeredPriceEngine(master uint32, config LayerConfig) *LayeredPriceEngine {
	return &LayeredPriceEngine{
		config:        config,
		signRNG:       NewPRNG(crypto.DeriveSubSeed(master, "sign")),
		magnitudeRNG:  NewPRNG(crypto.DeriveSubSeed(master, "magnitude")),
		volatilityRNG: NewPRNG(crypto.DeriveSubSeed(master, "volatility")),
		momentumRNG:   NewPRNG(crypto.DeriveSubSeed(master, "momentum")),
		turboRNG:      NewPRNG(crypto.DeriveSubSeed(master, "turbo")),
	}
}

// NextTick advances state by exactly one tick, in a fixed order and draw
// sequence. Reordering any step, or changing which branch draws from
// which stream, breaks replay determinism.
func (e *LayeredPriceEngine) NextTick(state LayeredEngineState) LayeredEngineState {
	if state.TurboActive && state.TurboTicksRemaining > 0 {
		return e.turboTick(state)
	}
	return e.normalTick(state)
}

func (e *LayeredPriceEngine) turboTick(state LayeredEngineState) LayeredEngineState {
	var perTickMultiplier float64
	if state.TurboDirection >= 0 {
		perTickMultiplier = math.Pow(1.10, 1.0/10.0)
	} else {
		perTickMultiplier = math.Pow(0.90, 1.0/10.0)
	}

	next := state
	next.Price = state.Price * perTickMultiplier
	next.TurboTicksRemaining = state.TurboTicksRemaining - 1
	next.TurboActive = next.TurboTicksRemaining > 0
	return next
}

func (e *LayeredPriceEngine) normalTick(state LayeredEngineState) LayeredEngineState {
	cfg := e.config

	signRoll := e.signRNG.Next()
	sign := -1
	if signRoll < cfg.SignBias {
		sign = 1
	}

	baseMagnitude := e.magnitudeRNG.Range(cfg.BaseMagnitudeMin, cfg.BaseMagnitudeMax)

	inSpike := state.InVolatilitySpike
	if !inSpike {
		if e.volatilityRNG.Chance(cfg.SpikeProbability) {
			inSpike = true
		}
	}
	var volatilityMultiplier float64
	if inSpike {
		volatilityMultiplier = e.volatilityRNG.Range(cfg.SpikeMin, cfg.SpikeMax)
		inSpike = false
	} else {
		volatilityMultiplier = cfg.VolatilityBase
	}

	momentumNoise := (e.momentumRNG.Next() - 0.5) * 0.1
	newMomentum := state.Momentum*cfg.MomentumDecay + float64(state.LastSign)*cfg.MomentumStrength + momentumNoise
	momentumContribution := newMomentum * baseMagnitude

	deviation := (state.Price - state.MeanPrice) / state.MeanPrice
	reversionContribution := -deviation * cfg.ReversionStrength * baseMagnitude

	signedMove := float64(sign) * baseMagnitude * volatilityMultiplier

	totalDelta := signedMove + momentumContribution + reversionContribution + cfg.DriftCorrection

	newPrice := math.Max(0.01, state.Price*(1+totalDelta))

	meanAlpha := 1.0 / cfg.ReversionHalfLife
	newMean := state.MeanPrice*(1-meanAlpha) + newPrice*meanAlpha

	return LayeredEngineState{
		Price:               newPrice,
		Tick:                state.Tick + 1,
		MeanPrice:           newMean,
		Momentum:            newMomentum,
		LastSign:            sign,
		InVolatilitySpike:   false,
		TurboActive:         state.TurboActive,
		TurboTicksRemaining: state.TurboTicksRemaining,
		TurboDirection:      state.TurboDirection,
	}
}

// StartTurbo draws the turbo direction from the turbo stream and returns a
// new state with turbo armed for the next 10 ticks. The price itself is
// unchanged until NextTick is next called.
func (e *LayeredPriceEngine) StartTurbo(state LayeredEngineState) LayeredEngineState {
	direction := -1
	if e.turboRNG.Next() < 0.5 {
		direction = 1
	}

	next := state
	next.TurboActive = true
	next.TurboTicksRemaining = 10
	next.TurboDirection = direction
	return next
}
