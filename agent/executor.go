package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finagent-ai/finagent/llm"
	"github.com/finagent-ai/finagent/plan"
	"github.com/finagent-ai/finagent/tool"
)

// Executor advances a run by exactly one step per call: it resolves and
// validates tool arguments, invokes the tool (or asks the oracle directly
// for tool-less steps), and records the outcome. Every failure becomes
// textual state in the execution log; Execute never returns an error to its
// caller.
type Executor struct {
	oracle   llm.Client
	registry *tool.Registry
	log      *slog.Logger
}

// NewExecutor creates an executor. logger may be nil.
func NewExecutor(oracle llm.Client, registry *tool.Registry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{oracle: oracle, registry: registry, log: logger}
}

// Execute runs the step at the cursor. It appends exactly one execution
// record and advances the cursor by exactly one. When the plan is already
// exhausted nothing executes and executed is false; the replanner owns the
// finalize transition for that state.
func (e *Executor) Execute(ctx context.Context, st *plan.RunState) (rec plan.ExecutionRecord, executed bool) {
	step, ok := st.CurrentStep()
	if !ok {
		e.log.Debug("execute called on exhausted plan", "cursor", st.Cursor)
		return plan.ExecutionRecord{}, false
	}

	var result string
	if step.UsesTool() {
		result = e.executeTool(ctx, st, step)
	} else {
		result = e.executeDirect(ctx, st, step)
	}

	rec = st.Record(step, result)
	e.log.Info("step executed",
		"step", step.Index,
		"tool", step.Tool,
		"cursor", st.Cursor,
		"plan_len", st.Plan.Len())
	return rec, true
}

// executeDirect answers a tool-less step with a single oracle call.
func (e *Executor) executeDirect(ctx context.Context, st *plan.RunState, step plan.Step) string {
	prompt := directPrompt(step.Action, st.UserInput, st.HistoryText())
	response, err := e.oracle.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("任务执行失败: %v", err)
	}
	return response
}

// executeTool resolves arguments, validates them, and invokes the tool.
// Aborted steps (resolution or validation failures) never reach the
// registry; their failure text is the step result and recovery is
// delegated to replanner-triggered regeneration.
func (e *Executor) executeTool(ctx context.Context, st *plan.RunState, step plan.Step) string {
	finalArgs, failure := e.resolveArgs(ctx, st, step)
	if failure != "" {
		return failure
	}

	normalizeArgs(step.Tool, finalArgs)

	if msg := validateArgs(finalArgs, e.registry.FreeTextParams()); msg != "" {
		return msg
	}

	res, err := e.registry.Invoke(ctx, step.Tool, finalArgs)
	if err != nil {
		return fmt.Sprintf("%s工具调用失败: %v", step.Tool, err)
	}
	return "工具执行结果: " + renderContent(res.Content)
}

// resolveArgs selects the argument source for a tool step. Plan-time
// arguments are used verbatim only when complete (non-empty, no nil
// values); otherwise the oracle is asked to derive them from the execution
// history, and the known localized argument names are mapped back to their
// canonical spellings.
func (e *Executor) resolveArgs(ctx context.Context, st *plan.RunState, step plan.Step) (map[string]any, string) {
	if step.HasCompleteArgs() {
		return step.Args, ""
	}

	prompt := resolvePrompt(step.Tool, step.Action, st.UserInput, st.HistoryText(), e.registry.ContractText())
	response, err := e.oracle.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Sprintf("参数分析失败: %v", err)
	}

	resolved, err := parseResolution(response)
	if err != nil {
		// The raw response is kept in the record for diagnosis; the
		// regeneration prompt sees it too.
		return nil, fmt.Sprintf("JSON解析失败: %v，原始响应: %s", err, response)
	}
	if resolved.rationale != "" {
		e.log.Debug("argument resolution rationale", "tool", step.Tool, "rationale", resolved.rationale)
	}

	return applyAliases(resolved.args), ""
}

// renderContent formats a tool result payload for the execution log.
func renderContent(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(out)
	}
}
