package plan

import "strings"

// Decision is the replanner's choice after a step has executed.
type Decision string

const (
	// DecisionContinue proceeds to the next step of the current plan.
	DecisionContinue Decision = "continue"

	// DecisionFinalize composes the final answer and completes the run.
	DecisionFinalize Decision = "finalize"

	// DecisionRegenerate replaces the plan wholesale and resets the cursor.
	DecisionRegenerate Decision = "regenerate"
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	return string(d)
}

// IsValid checks if the decision is a recognized value.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionContinue, DecisionFinalize, DecisionRegenerate:
		return true
	default:
		return false
	}
}

// ParseDecision maps the oracle's raw decision answer to a Decision. The
// decision prompt asks for a bare "1", "2", or "3", but models pad their
// answers, so only the leading digit of the trimmed text is inspected.
// Anything unrecognizable falls back to DecisionContinue.
func ParseDecision(response string) Decision {
	s := strings.TrimSpace(response)
	if s == "" {
		return DecisionContinue
	}
	switch s[0] {
	case '2':
		return DecisionFinalize
	case '3':
		return DecisionRegenerate
	default:
		return DecisionContinue
	}
}
