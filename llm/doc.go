// Package llm provides the text-generation client used by the engine for
// planning, step execution, argument resolution, and control decisions.
//
// The engine treats the model as a blocking, text-in/text-out oracle whose
// output is untrusted: callers strip markdown fencing and validate JSON
// before acting on a response.
package llm
