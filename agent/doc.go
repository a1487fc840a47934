// Package agent implements the plan-execute-replan control loop.
//
// The orchestrator seeds a run with one planner call, then alternates step
// execution and replanning until the replanner finalizes. Control decisions
// come from two unreliable sources, a text-generating oracle and heuristic
// text parsing, so the engine layers deterministic rules on top: known
// failure markers force regeneration, an exhausted plan forces
// finalization, and every malformed oracle response degrades to recorded
// text instead of an error. Exactly one execution record is appended and
// the cursor advances by exactly one per executor call; this atomicity is
// the forward-progress guarantee.
package agent
