// Package plan defines the data model of a plan-and-execute run: plans,
// steps, execution records, the per-run state, and the replanning decision
// state machine.
//
// Plans are produced wholesale by the planner or the replanner and are never
// mutated in place; regeneration replaces the plan entirely and resets the
// cursor while keeping the execution log. The run state has exactly one
// writer at a time (the orchestrator goroutine), so no locking is needed.
package plan
