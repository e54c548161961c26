package signals

import (
	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/internal/scoring"
)

// SignalType indicates the direction of a signal.
type SignalType string

const (
	TypeBullish SignalType = "bullish"
	TypeBearish SignalType = "bearish"
	TypeWarning SignalType = "warning"
)

// SignalCategory groups signals by the data that produced them.
type SignalCategory string

const (
	CategoryFundamental SignalCategory = "fundamental"
	CategoryInsider     SignalCategory = "insider"
	CategoryTechnical   SignalCategory = "technical"
)

// Signal is one derived, human-readable observation about a ticker.
// Signals are created only by rule evaluation and never mutated.
type Signal struct {
	Type     SignalType             `json:"type"`
	Category SignalCategory         `json:"category"`
	Message  string                 `json:"message"`
	Priority int                    `json:"priority"` // higher = more important
	Data     map[string]interface{} `json:"data,omitempty"`
}

// RuleContext is the read-only aggregate every rule may consult. Optional
// fields are nil when the corresponding fetch failed or returned nothing;
// rules that need them must no-op, never fail.
type RuleContext struct {
	Piotroski *scoring.PiotroskiResult
	Altman    *scoring.AltmanZResult

	Financials      *provider.KeyFinancials
	InsiderActivity *provider.InsiderActivity
	ShortInterest   *provider.ShortInterest
	DCF             *provider.DCFValuation
	Price           float64
}

// Rule evaluates one condition against the context and returns a Signal,
// or nil when the condition does not hold or its data is absent.
type Rule interface {
	Evaluate(ctx *RuleContext) *Signal
}
