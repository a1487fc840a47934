// Package memory provides the agent's two memory surfaces: the rolling
// conversation (short-term history plus a derived summary) and the document
// store that backs research-report retrieval.
//
// The engine never reads ambient globals; planner and replanner receive an
// explicit Context snapshot, and the conversation is only written at the
// commit point after a run completes.
package memory
