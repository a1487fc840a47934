// Package finagent provides the core of a plan-and-execute financial
// research agent.
//
// The engine takes a single user request, asks a language model to produce a
// multi-step plan, executes the plan one step at a time (optionally invoking
// registered tools), and after every step decides whether to continue,
// regenerate the plan, or compose a final answer.
//
// # Core Concepts
//
// The module is organized around several key concepts:
//
//   - Plan: an ordered list of steps describing how to satisfy a request
//   - Step: one planned action, optionally bound to a tool and its arguments
//   - ExecutionRecord: an append-only log entry capturing one step's outcome
//   - Oracle: the blocking text-generation client used for planning,
//     argument resolution, and control decisions
//   - Registry: the boundary component that executes named tools
//
// # Packages
//
//   - plan: the run-state data model and the decision state machine types
//   - llm: the text-generation client (Ollama chat API)
//   - tool, toolerr: the tool registry, schemas, and structured tool errors
//   - tools/...: built-in tools (clock, calculator, market data, reporting,
//     research retrieval)
//   - memory: conversation history, summaries, and the document store
//   - agent: the planner, step executor, replanner, and orchestrator
//   - config: YAML configuration loading
//   - telemetry: OpenTelemetry tracer setup
//
// # Getting Started
//
//	cfg, err := config.Load("finagent.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client := llm.NewOllamaClient(cfg.Ollama.BaseURL, cfg.Ollama.Model)
//	reg := tool.NewRegistry()
//	reg.MustRegister(clock.New())
//
//	orch := agent.NewOrchestrator(client, reg, agent.Options{})
//	state, err := orch.Run(ctx, "查询英伟达（NVDA）的实时股价")
//
// The orchestrator never fails mid-run on oracle or tool errors; every
// failure is converted to textual state the replanner can reason about.
package finagent
