package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/finagent-ai/finagent/llm"
	"github.com/finagent-ai/finagent/memory"
	"github.com/finagent-ai/finagent/plan"
)

// failureMarkers are result substrings that force regeneration regardless
// of the oracle's decision answer. The probabilistic decision is unreliable
// exactly in these failure cases, so the override is evaluated first and
// always wins.
var failureMarkers = []string{
	"未找到A股代码",
	"无法识别该公司的股票代码",
	"参数校验失败",
	"未找到美股代码",
	"未找到港股代码",
	"未找到研报",
	"ticker not found",
	"validation failed",
	"company not recognized",
}

// insufficientAnswer is the degraded final answer used when answer
// composition itself fails. Completing with an explicit
// insufficient-information answer is the engine's only user-visible
// failure mode.
const insufficientAnswer = "抱歉，当前收集到的信息不足以生成完整答案，请补充更具体的需求后重试。"

// Replanner decides, after each executed step, whether the run continues,
// regenerates its plan, or finalizes with an answer.
type Replanner struct {
	oracle llm.Client
	log    *slog.Logger
}

// NewReplanner creates a replanner. logger may be nil.
func NewReplanner(oracle llm.Client, logger *slog.Logger) *Replanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Replanner{oracle: oracle, log: logger}
}

// Replan applies the decision state machine to st and returns the decision
// taken. Rule order:
//
//  1. A failure marker in the latest result forces regeneration.
//  2. Otherwise the oracle's parsed decision may regenerate.
//  3. Otherwise an explicit finalize answer or an exhausted plan finalizes.
//  4. Otherwise the run continues unchanged.
//
// Regeneration replaces the plan and resets the cursor; if the regenerated
// plan cannot be parsed the existing plan and cursor stay untouched (the
// orchestrator's regeneration cap bounds the resulting retry loop).
func (r *Replanner) Replan(ctx context.Context, st *plan.RunState, memCtx memory.Context) plan.Decision {
	raw, err := r.oracle.Generate(ctx, decisionPrompt(st))
	if err != nil {
		r.log.Warn("decision generation failed", "error", err)
		raw = ""
	}
	decision := plan.ParseDecision(raw)

	if marker := matchFailureMarker(st.LastResult()); marker != "" {
		r.log.Warn("failure marker detected, forcing regeneration",
			"marker", marker, "oracle_decision", decision.String())
		decision = plan.DecisionRegenerate
	}

	switch {
	case decision == plan.DecisionRegenerate:
		r.regenerate(ctx, st, memCtx)
		return plan.DecisionRegenerate

	case decision == plan.DecisionFinalize || st.Exhausted():
		// An exhausted plan finalizes even when the oracle answered
		// "continue"; there is nothing left to execute.
		r.Finalize(ctx, st)
		return plan.DecisionFinalize

	default:
		return plan.DecisionContinue
	}
}

// regenerate asks the oracle for a replacement plan. Parse failures abandon
// the regeneration and leave the run state unchanged.
func (r *Replanner) regenerate(ctx context.Context, st *plan.RunState, memCtx memory.Context) {
	response, err := r.oracle.Generate(ctx, regeneratePrompt(st, memCtx))
	if err != nil {
		r.log.Warn("plan regeneration failed, keeping current plan", "error", err)
		return
	}

	newPlan, err := plan.Parse(response)
	if err != nil {
		r.log.Warn("regenerated plan unparseable, keeping current plan", "error", err)
		return
	}

	st.Regenerate(newPlan)
	r.log.Info("plan regenerated", "steps", newPlan.Len())
}

// Finalize composes the final answer from the execution log and completes
// the run. Composition failures complete the run with the fixed
// insufficient-information answer instead of erroring.
func (r *Replanner) Finalize(ctx context.Context, st *plan.RunState) {
	answer, err := r.oracle.Generate(ctx, answerPrompt(st))
	if err != nil || strings.TrimSpace(answer) == "" {
		r.log.Warn("answer composition failed, using degraded answer", "error", err)
		answer = insufficientAnswer
	}
	st.Finalize(answer)
	r.log.Info("run finalized", "steps_executed", len(st.Log))
}

// matchFailureMarker returns the first recognized failure marker contained
// in result, or "".
func matchFailureMarker(result string) string {
	lower := strings.ToLower(result)
	for _, marker := range failureMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return marker
		}
	}
	return ""
}
