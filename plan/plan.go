package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finagent-ai/finagent"
)

// Step is one planned action. Steps are immutable once produced by the
// planner or the replanner.
type Step struct {
	// Index is the 1-based step number as emitted by the model.
	Index int `json:"step"`

	// Description is a short human-readable summary of the step.
	Description string `json:"description"`

	// Action describes the operation to perform.
	Action string `json:"action"`

	// Tool is the registry name of the tool to invoke. Empty, "none", or
	// "null" means the step is answered by the oracle directly.
	Tool string `json:"tool"`

	// Args carries the tool arguments fixed at planning time. Entries with
	// nil values mark arguments that must be resolved at execution time
	// from prior step results.
	Args map[string]any `json:"tool_args"`
}

// UsesTool reports whether the step is bound to a tool. The planner prompt
// asks the model to emit null for tool-less steps, but models also emit the
// literal strings "None" and "null"; all are treated as no tool.
func (s Step) UsesTool() bool {
	switch strings.ToLower(strings.TrimSpace(s.Tool)) {
	case "", "none", "null":
		return false
	default:
		return true
	}
}

// HasCompleteArgs reports whether Args is non-empty and contains no nil
// values. Only then may the arguments be used verbatim; otherwise the
// executor performs argument resolution.
func (s Step) HasCompleteArgs() bool {
	if len(s.Args) == 0 {
		return false
	}
	for _, v := range s.Args {
		if v == nil {
			return false
		}
	}
	return true
}

// Plan is an ordered sequence of steps. Insertion order is execution order.
type Plan []Step

// Len returns the number of steps in the plan.
func (p Plan) Len() int {
	return len(p)
}

// StripFences removes a surrounding markdown code fence from an oracle
// response. Models routinely wrap JSON answers in ```json blocks even when
// told not to.
func StripFences(response string) string {
	s := strings.TrimSpace(response)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// Parse decodes an oracle response into a Plan. The response may be wrapped
// in a markdown code fence. A syntactically valid but empty plan is rejected
// so the caller always receives at least one executable step.
func Parse(response string) (Plan, error) {
	cleaned := StripFences(response)

	var p Plan
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("decode plan: %v: %w", err, finagent.ErrPlanParse)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("decode plan: empty step list: %w", finagent.ErrPlanParse)
	}
	return p, nil
}

// Default returns the fixed fallback plan used when the oracle's plan output
// cannot be parsed. None of the steps reference a tool, so the plan is always
// executable regardless of registry contents.
func Default() Plan {
	return Plan{
		{
			Index:       1,
			Description: "分析用户需求",
			Action:      "分析用户输入的需求内容",
		},
		{
			Index:       2,
			Description: "执行核心任务",
			Action:      "根据需求执行主要操作",
		},
		{
			Index:       3,
			Description: "总结结果",
			Action:      "总结执行结果并返回给用户",
		},
	}
}
