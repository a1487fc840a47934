// Command finagent runs one user request through the plan-execute-replan
// engine and prints the run trace to the console.
//
// Usage:
//
//	finagent -config finagent.yaml "查询英伟达（NVDA）的实时股价"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/finagent-ai/finagent"
	"github.com/finagent-ai/finagent/agent"
	"github.com/finagent-ai/finagent/config"
	"github.com/finagent-ai/finagent/llm"
	"github.com/finagent-ai/finagent/memory"
	"github.com/finagent-ai/finagent/plan"
	"github.com/finagent-ai/finagent/telemetry"
	"github.com/finagent-ai/finagent/tool"
	"github.com/finagent-ai/finagent/tools/calc"
	"github.com/finagent-ai/finagent/tools/clock"
	"github.com/finagent-ai/finagent/tools/market"
	"github.com/finagent-ai/finagent/tools/report"
	"github.com/finagent-ai/finagent/tools/research"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to finagent.yaml (defaults apply when omitted)")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	userInput := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if userInput == "" {
		fmt.Fprintln(os.Stderr, "usage: finagent [-config finagent.yaml] [-v] <request>")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(userInput, *configPath, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(userInput, configPath string, logger *slog.Logger) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newDocumentStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	oracle := llm.NewOllamaClient(cfg.Ollama.BaseURL, cfg.Ollama.Model,
		llm.WithTimeout(cfg.Ollama.Timeout.Std()))

	registry := newRegistry(cfg, store)

	tp := telemetry.NewTracerProvider(logger)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	conv := memory.NewConversation(cfg.Run.ConversationCapacity)
	orch := agent.NewOrchestrator(oracle, registry, agent.Options{
		MaxTotalSteps:        cfg.Run.MaxTotalSteps,
		MaxConsecutiveRegens: cfg.Run.MaxConsecutiveRegens,
		Conversation:         conv,
		Logger:               logger,
		Tracer:               telemetry.NewTracer(tp),
	})

	st, err := orch.Run(ctx, userInput)
	if err != nil {
		return err
	}

	printTrace(st)
	return nil
}

func newDocumentStore(cfg *config.Config, logger *slog.Logger) (memory.DocumentStore, func(), error) {
	if !cfg.Redis.Enabled {
		return memory.NewInMemoryStore(), func() {}, nil
	}
	store, err := memory.NewRedisStore(memory.RedisOptions{URL: cfg.Redis.URL})
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		finagent.CloseWithLog(store, logger, "redis store")
	}, nil
}

func newRegistry(cfg *config.Config, store memory.DocumentStore) *tool.Registry {
	registry := tool.NewRegistry()
	registry.MustRegister(clock.New())
	registry.MustRegister(calc.New())
	registry.MustRegister(research.New(store))
	registry.MustRegister(report.New(report.WithOutputDir(cfg.ReportDir)))
	// The static provider serves nothing; deployments with a market data
	// gateway swap in their own QuoteProvider here.
	registry.MustRegister(market.New(market.NewStaticProvider()))
	return registry
}

func printTrace(st *plan.RunState) {
	fmt.Println("📋 执行计划:")
	for _, step := range st.Plan {
		name := step.Tool
		if !step.UsesTool() {
			name = "-"
		}
		fmt.Printf("  %d. %s (工具: %s)\n", step.Index, step.Description, name)
	}

	fmt.Println("\n⚡ 执行结果:")
	for _, rec := range st.Log {
		fmt.Printf("  步骤%d: %s\n  结果: %s\n", rec.Index, rec.Description, rec.Result)
	}

	fmt.Printf("\n🎯 最终答案:\n%s\n", st.FinalAnswer)
}
