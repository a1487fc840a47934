package agent

import (
	"context"
	"log/slog"

	"github.com/finagent-ai/finagent/llm"
	"github.com/finagent-ai/finagent/memory"
	"github.com/finagent-ai/finagent/plan"
	"github.com/finagent-ai/finagent/tool"
)

// Planner produces the initial plan for a user request. It owns the
// fallback policy: whatever the oracle returns, the caller always receives
// a non-empty, executable plan.
type Planner struct {
	oracle   llm.Client
	registry *tool.Registry
	log      *slog.Logger
}

// NewPlanner creates a planner. logger may be nil.
func NewPlanner(oracle llm.Client, registry *tool.Registry, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{oracle: oracle, registry: registry, log: logger}
}

// Plan asks the oracle for a step list. On any oracle or parse failure the
// fixed default plan is returned; the planner never fails.
func (p *Planner) Plan(ctx context.Context, userInput string, memCtx memory.Context) plan.Plan {
	prompt := planPrompt(userInput, memCtx.Summary, p.registry.Names())

	response, err := p.oracle.Generate(ctx, prompt)
	if err != nil {
		p.log.Warn("plan generation failed, using default plan", "error", err)
		return plan.Default()
	}

	parsed, err := plan.Parse(response)
	if err != nil {
		p.log.Warn("plan parse failed, using default plan", "error", err)
		return plan.Default()
	}

	p.log.Info("plan generated", "steps", parsed.Len())
	return parsed
}
