package agent

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/finagent-ai/finagent/llm"
	"github.com/finagent-ai/finagent/memory"
	"github.com/finagent-ai/finagent/plan"
	"github.com/finagent-ai/finagent/tool"
)

// Default run budgets. The baseline control loop has no natural bound: a
// persistently malformed regeneration response would otherwise cycle
// execute/replan forever on an exhausted plan.
const (
	// DefaultMaxTotalSteps caps executed steps per run.
	DefaultMaxTotalSteps = 30

	// DefaultMaxConsecutiveRegens caps back-to-back regeneration
	// decisions (attempted or applied) before the run degrades.
	DefaultMaxConsecutiveRegens = 3
)

// Options configures an Orchestrator.
type Options struct {
	// MaxTotalSteps caps executed steps per run. Zero uses the default.
	MaxTotalSteps int

	// MaxConsecutiveRegens caps back-to-back regenerations. Zero uses
	// the default.
	MaxConsecutiveRegens int

	// Conversation, when set, provides prompt context and receives the
	// completed exchange at the end of a run.
	Conversation *memory.Conversation

	// Logger is the structured logger for the run. Nil uses slog.Default.
	Logger *slog.Logger

	// Tracer records one span per plan/execute/replan transition. Nil
	// uses the global tracer provider (a no-op unless configured).
	Tracer trace.Tracer
}

// Orchestrator drives the fixed control sequence: plan once, then
// alternate execute and replan until the replanner finalizes or the run
// budget is exhausted.
type Orchestrator struct {
	planner   *Planner
	executor  *Executor
	replanner *Replanner

	conv   *memory.Conversation
	log    *slog.Logger
	tracer trace.Tracer

	maxSteps  int
	maxRegens int
}

// NewOrchestrator assembles the engine around one oracle client and one
// tool registry.
func NewOrchestrator(oracle llm.Client, registry *tool.Registry, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("finagent/agent")
	}
	maxSteps := opts.MaxTotalSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxTotalSteps
	}
	maxRegens := opts.MaxConsecutiveRegens
	if maxRegens <= 0 {
		maxRegens = DefaultMaxConsecutiveRegens
	}

	return &Orchestrator{
		planner:   NewPlanner(oracle, registry, logger),
		executor:  NewExecutor(oracle, registry, logger),
		replanner: NewReplanner(oracle, logger),
		conv:      opts.Conversation,
		log:       logger,
		tracer:    tracer,
		maxSteps:  maxSteps,
		maxRegens: maxRegens,
	}
}

// Run processes one user request to completion. The returned state always
// has Completed set and a non-empty FinalAnswer unless the context was
// cancelled; oracle and tool failures degrade to textual state rather than
// errors.
func (o *Orchestrator) Run(ctx context.Context, userInput string) (*plan.RunState, error) {
	st := plan.NewRunState(userInput)
	memCtx := o.snapshot()

	ctx, runSpan := o.tracer.Start(ctx, "agent.run",
		trace.WithAttributes(attribute.String("run.id", st.ID)))
	defer runSpan.End()

	o.log.Info("run started", "run_id", st.ID, "input", userInput)

	o.planOnce(ctx, st, memCtx)

	steps := 0
	regens := 0
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		o.executeStep(ctx, st)
		steps++

		decision := o.replanStep(ctx, st, memCtx)
		switch decision {
		case plan.DecisionRegenerate:
			regens++
		default:
			regens = 0
		}

		if st.Completed {
			break
		}
		if steps >= o.maxSteps || regens > o.maxRegens {
			o.log.Warn("run budget exhausted, degrading to final answer",
				"steps", steps, "consecutive_regens", regens)
			o.finalizeDegraded(ctx, st)
			break
		}
	}

	o.commit(st)
	o.log.Info("run completed", "run_id", st.ID, "steps_executed", len(st.Log))
	return st, nil
}

func (o *Orchestrator) planOnce(ctx context.Context, st *plan.RunState, memCtx memory.Context) {
	ctx, span := o.tracer.Start(ctx, "agent.plan")
	defer span.End()

	st.Plan = o.planner.Plan(ctx, st.UserInput, memCtx)
	span.SetAttributes(attribute.Int("plan.steps", st.Plan.Len()))
}

func (o *Orchestrator) executeStep(ctx context.Context, st *plan.RunState) {
	ctx, span := o.tracer.Start(ctx, "agent.execute",
		trace.WithAttributes(attribute.Int("cursor", st.Cursor)))
	defer span.End()

	o.executor.Execute(ctx, st)
}

func (o *Orchestrator) replanStep(ctx context.Context, st *plan.RunState, memCtx memory.Context) plan.Decision {
	ctx, span := o.tracer.Start(ctx, "agent.replan")
	defer span.End()

	decision := o.replanner.Replan(ctx, st, memCtx)
	span.SetAttributes(attribute.String("decision", decision.String()))
	return decision
}

// finalizeDegraded forces completion when the run budget is exhausted. One
// composition attempt is made from whatever log exists; the replanner
// falls back to its fixed insufficient-information answer on failure.
func (o *Orchestrator) finalizeDegraded(ctx context.Context, st *plan.RunState) {
	if st.Completed {
		return
	}
	o.replanner.Finalize(ctx, st)
}

func (o *Orchestrator) snapshot() memory.Context {
	if o.conv == nil {
		return memory.Context{}
	}
	return o.conv.Snapshot()
}

// commit writes the completed exchange back to the conversation. This is
// the single commit point for conversation state; nothing is written
// mid-run.
func (o *Orchestrator) commit(st *plan.RunState) {
	if o.conv == nil || !st.Completed {
		return
	}
	o.conv.Commit(st.UserInput, st.FinalAnswer)
}
