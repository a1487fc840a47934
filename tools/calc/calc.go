// Package calc provides the add calculator tool.
package calc

import (
	"context"

	"github.com/finagent-ai/finagent/tool"
	"github.com/finagent-ai/finagent/toolerr"
)

const toolName = "add"

// Adder adds two integers.
type Adder struct{}

// New creates the tool.
func New() *Adder { return &Adder{} }

func (a *Adder) Name() string        { return toolName }
func (a *Adder) Description() string { return "加法计算工具" }

func (a *Adder) Schema() tool.Schema {
	return tool.Schema{
		Description: a.Description(),
		Params: []tool.Param{
			{Name: "add1", Type: "int", Description: "第一个加数"},
			{Name: "add2", Type: "int", Description: "第二个加数"},
		},
	}
}

func (a *Adder) Call(_ context.Context, args map[string]any) (any, error) {
	x, ok := tool.IntArg(args, "add1")
	if !ok {
		return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput, "add1 must be an integer")
	}
	y, ok := tool.IntArg(args, "add2")
	if !ok {
		return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput, "add2 must be an integer")
	}
	return x + y, nil
}
