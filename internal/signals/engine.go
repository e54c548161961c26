package signals

import (
	"sort"

	"github.com/tickerlens/backend/pkg/logger"
)

// Engine evaluates the rule table against one analysis context and ranks
// the results.
type Engine struct {
	rules  []Rule
	logger *logger.Logger
}

// NewEngine creates an engine with the default rule table.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		rules:  defaultRules(),
		logger: log.WithField("module", "signals"),
	}
}

// GenerateAll evaluates every registered rule against the context, drops
// nil results, and returns the surviving signals sorted by priority
// descending. The sort is stable, so equal-priority signals keep their
// registration order; identical inputs always produce identical output.
func (e *Engine) GenerateAll(ctx *RuleContext) []Signal {
	out := make([]Signal, 0, len(e.rules))
	for _, rule := range e.rules {
		if s := rule.Evaluate(ctx); s != nil {
			out = append(out, *s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})

	e.logger.WithFields(map[string]interface{}{
		"rules":   len(e.rules),
		"signals": len(out),
	}).Debug("Generated signals")

	return out
}
