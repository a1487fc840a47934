package agent

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/finagent-ai/finagent/llm"
	"github.com/finagent-ai/finagent/tool"
)

// Prompt fingerprints used to route stub oracle responses. Each matches a
// fixed phrase of exactly one prompt template.
const (
	markPlan       = "tool_candidates"
	markResolve    = "工具参数定义"
	markDirect     = "请直接输出任务的执行结果"
	markDecision   = "请只回答数字1、2或3"
	markRegenerate = "重新生成执行计划"
	markAnswer     = "专业的最终答案"
)

// stubOracle routes prompts to canned responses by fingerprint and records
// every prompt it sees.
type stubOracle struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	prompts   []string
}

func newStubOracle(responses map[string]string) *stubOracle {
	return &stubOracle{responses: responses}
}

func (o *stubOracle) Generate(_ context.Context, prompt string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prompts = append(o.prompts, prompt)

	if o.err != nil {
		return "", o.err
	}
	for mark, response := range o.responses {
		if strings.Contains(prompt, mark) {
			return response, nil
		}
	}
	return "", errors.New("stub oracle: no response for prompt")
}

func (o *stubOracle) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return "", errors.New("stub oracle: chat not scripted")
}

// callCount returns how many recorded prompts contain the fingerprint.
func (o *stubOracle) callCount(mark string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, p := range o.prompts {
		if strings.Contains(p, mark) {
			n++
		}
	}
	return n
}

// stubTool records the argument maps it is invoked with and returns a fixed
// payload or error.
type stubTool struct {
	name    string
	schema  tool.Schema
	payload any
	err     error

	mu    sync.Mutex
	calls []map[string]any
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub tool " + s.name }
func (s *stubTool) Schema() tool.Schema { return s.schema }

func (s *stubTool) Call(_ context.Context, args map[string]any) (any, error) {
	s.mu.Lock()
	s.calls = append(s.calls, args)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func (s *stubTool) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubTool) lastArgs() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return nil
	}
	return s.calls[len(s.calls)-1]
}
