package game

// Direction is a position's side.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// OptionDirection is an option's side.
type OptionDirection string

const (
	Call OptionDirection = "call"
	Put  OptionDirection = "put"
)

// SessionConfig seeds a fresh game engine. TickRateMs is stored but unused
// by replay semantics — funding accrues per tick, not per wall-clock
// interval — and must be accepted without altering any computed value.
// Decision: kept only so a caller can round-trip a session record that
// carries it; replay never reads it.
type SessionConfig struct {
	InitialCapital        float64
	InitialPrice          float64
	InitialHouseBankroll  float64
	TickRateMs            int
	Seed                  *uint32
}

// Position is a trader's single open leveraged position. At most one may
// exist at a time.
type Position struct {
	Direction            Direction `json:"direction"`
	EntryPrice           float64   `json:"entryPrice"`
	Size                 float64   `json:"size"` // equity collateral, strictly positive while held
	Leverage             float64   `json:"leverage"`
	CumulativeFunding    float64   `json:"cumulativeFunding"`
	CapitalAllocated     float64   `json:"capitalAllocated"`
	TotalCapitalInvested float64   `json:"totalCapitalInvested"`
	AccumulatedPnL       float64   `json:"accumulatedPnl"`
	OriginalEntryPrice   float64   `json:"originalEntryPrice"`
	TotalFundingPaid     float64   `json:"totalFundingPaid"`
	OpenTick             int       `json:"openTick"`
}

// Option is a single binary call/put. Decremented once per tick by the
// engine; destroyed (paid out or lost) when TicksRemaining reaches zero.
type Option struct {
	Direction      OptionDirection `json:"direction"`
	StrikePrice    float64         `json:"strikePrice"`
	PurchasePrice  float64         `json:"purchasePrice"`
	Premium        float64         `json:"premium"`
	Multiplier     int             `json:"multiplier"`
	TicksRemaining int             `json:"ticksRemaining"`
	TotalTicks     int             `json:"totalTicks"`
}

// SimpleTurbo mirrors the price engine's turbo state into the game state,
// so GameState alone is enough to know whether turbo is running without
// reaching into LayeredEngineState.
type SimpleTurbo struct {
	Active         bool    `json:"active"`
	TicksRemaining int     `json:"ticksRemaining"`
	Direction      int     `json:"direction"` // +1 or -1
	StartPrice     float64 `json:"startPrice"`
}

// GameState is the game engine's entire owned state. Callers only ever see
// copies (GameEngine.State returns one) — the engine is the sole mutator.
type GameState struct {
	Capital              float64            `json:"capital"`
	CurrentPrice         float64            `json:"currentPrice"`
	Position             *Position          `json:"position,omitempty"` // nil when no position is open
	Options              []Option           `json:"options"`            // insertion order preserved
	SimpleTurbo          *SimpleTurbo       `json:"simpleTurbo,omitempty"`
	TurboPoints          float64            `json:"turboPoints"`
	HouseBankroll        float64            `json:"houseBankroll"`
	ShieldTicksRemaining int                `json:"shieldTicksRemaining"`
	LayeredState         LayeredEngineState `json:"layeredState"`
	TickCount            int                `json:"tickCount"`
	TotalProfit          float64            `json:"totalProfit"`
	TotalLosses          float64            `json:"totalLosses"`
	TotalVolumeTraded    float64            `json:"totalVolumeTraded"`
	LiquidationCount     int                `json:"liquidationCount"`
	TradeCount           int                `json:"tradeCount"`
}

// ActionType discriminates the Action tagged union. Go has no native sum
// type, so the union is modelled as one struct carrying every variant's
// fields, discriminated by Type — the engine dispatches on Type and reads
// only the fields that variant defines.
type ActionType string

const (
	ActionOpenPosition      ActionType = "open_position"
	ActionClosePosition     ActionType = "close_position"
	ActionBuyShield         ActionType = "buy_shield"
	ActionBuyOption         ActionType = "buy_option"
	ActionTriggerSimpleTurbo ActionType = "trigger_simple_turbo"
	ActionRelever           ActionType = "relever"
	ActionAddEquity         ActionType = "add_equity"
)

// Action is one player-issued instruction. Fields irrelevant to Type are
// left zero.
type Action struct {
	Type ActionType

	// open_position
	Direction   Direction
	SizePercent float64
	Leverage    float64

	// buy_option
	OptionDirection OptionDirection
	Premium         float64
	Multiplier      int
	DurationSeconds int

	// relever
	TargetLeverage float64

	// add_equity
	AdditionalPercent float64
}

// LoggedAction is one entry of an action log: an action paired with the
// tick it fires on and the wall-clock timestamp used to break ties when
// two actions share a tick. The replay orchestrator sorts stably by
// (tickNumber, timestamp).
type LoggedAction struct {
	TickNumber int
	Action     Action
	Timestamp  int64
}

// ActionOutcome records whether an action changed state. The replay
// orchestrator does not use it: its "had no effect" warning reads the
// bool that GameEngine.ExecuteAction returns.
type ActionOutcome struct {
	Applied bool
}
