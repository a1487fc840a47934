package plan

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ExecutionRecord captures the outcome of executing one step. Records are
// append-only; failed steps are recorded the same way as successful ones,
// with the failure text as the result.
type ExecutionRecord struct {
	// ID uniquely identifies the record within a run.
	ID string

	// Index is the step number of the executed step.
	Index int

	// Description is copied from the executed step.
	Description string

	// Action is copied from the executed step.
	Action string

	// Result is the textual outcome: tool output, oracle output, or a
	// failure description.
	Result string
}

// RunState is the mutable state of one plan-and-execute run. It is created
// once per user request and discarded once Completed becomes true.
//
// Invariants:
//   - 0 <= Cursor <= len(Plan) at all times.
//   - len(Log) == Cursor after every executor call.
//   - FinalAnswer is non-empty if and only if Completed is true.
//   - Regeneration replaces Plan and resets Cursor to 0; Log is kept.
type RunState struct {
	// ID identifies the run.
	ID string

	// UserInput is the original user request, immutable for the run.
	UserInput string

	// Plan is the current plan. Replaced wholesale on regeneration.
	Plan Plan

	// Cursor is the index of the next step to execute.
	Cursor int

	// Log holds one record per executed step, in execution order.
	Log []ExecutionRecord

	// Completed is set by the finalize transition only.
	Completed bool

	// FinalAnswer is the composed answer to the user request.
	FinalAnswer string
}

// NewRunState creates the initial state for a user request.
func NewRunState(userInput string) *RunState {
	return &RunState{
		ID:        uuid.NewString(),
		UserInput: userInput,
		Log:       []ExecutionRecord{},
	}
}

// CurrentStep returns the step at the cursor. ok is false when the plan is
// exhausted.
func (s *RunState) CurrentStep() (Step, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Plan) {
		return Step{}, false
	}
	return s.Plan[s.Cursor], true
}

// Exhausted reports whether every step of the current plan has executed.
func (s *RunState) Exhausted() bool {
	return s.Cursor >= len(s.Plan)
}

// Record appends an execution record for the given step and advances the
// cursor by exactly one. This is the only way the cursor moves forward,
// which keeps len(Log) == Cursor.
func (s *RunState) Record(step Step, result string) ExecutionRecord {
	rec := ExecutionRecord{
		ID:          uuid.NewString(),
		Index:       step.Index,
		Description: step.Description,
		Action:      step.Action,
		Result:      result,
	}
	s.Log = append(s.Log, rec)
	s.Cursor++
	return rec
}

// Regenerate replaces the plan wholesale and resets the cursor. The log is
// kept; regeneration prompts depend on the full execution history.
func (s *RunState) Regenerate(p Plan) {
	s.Plan = p
	s.Cursor = 0
}

// Finalize marks the run complete with the composed answer. This is the only
// transition that sets Completed.
func (s *RunState) Finalize(answer string) {
	s.FinalAnswer = strings.TrimSpace(answer)
	s.Completed = true
}

// LastResult returns the result text of the most recent execution record, or
// the empty string when nothing has executed.
func (s *RunState) LastResult() string {
	if len(s.Log) == 0 {
		return ""
	}
	return s.Log[len(s.Log)-1].Result
}

// HistoryText renders the execution log as prompt context, one line per
// record.
func (s *RunState) HistoryText() string {
	lines := make([]string, 0, len(s.Log))
	for _, rec := range s.Log {
		lines = append(lines, fmt.Sprintf("步骤%d结果: %s", rec.Index, rec.Result))
	}
	return strings.Join(lines, "\n")
}
