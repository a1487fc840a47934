// Package report provides the generate_markdown_report tool.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/finagent-ai/finagent/tool"
	"github.com/finagent-ai/finagent/toolerr"
)

const toolName = "generate_markdown_report"

// Generator renders a titled markdown report from prior step results. When
// an output directory is configured the rendered report is also written to
// disk, one file per invocation.
type Generator struct {
	outputDir string
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithOutputDir enables saving rendered reports under dir.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithTimeSource replaces the clock used for headers and filenames.
func WithTimeSource(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates the tool.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Name() string        { return toolName }
func (g *Generator) Description() string { return "生成Markdown报告工具" }

func (g *Generator) Schema() tool.Schema {
	return tool.Schema{
		Description: g.Description(),
		Params: []tool.Param{
			{Name: "user_requirement", Type: "str", Description: "用户需求", FreeText: true},
			{Name: "report_content", Type: "str", Description: "报告内容，必须是根据前序步骤结果生成的详尽文本", FreeText: true},
		},
	}
}

func (g *Generator) Call(_ context.Context, args map[string]any) (any, error) {
	requirement, ok := tool.StringArg(args, "user_requirement")
	if !ok || strings.TrimSpace(requirement) == "" {
		return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput, "user_requirement is required")
	}
	content, ok := tool.StringArg(args, "report_content")
	if !ok || strings.TrimSpace(content) == "" {
		return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput, "report_content is required")
	}

	now := g.now()
	markdown := g.render(requirement, content, now)

	if g.outputDir != "" {
		if err := g.save(markdown, now); err != nil {
			return nil, toolerr.New(toolName, "save", toolerr.ErrCodeExecutionFailed,
				"报告保存失败").WithCause(err)
		}
	}
	return markdown, nil
}

func (g *Generator) render(requirement, content string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", requirement)
	fmt.Fprintf(&b, "> 生成时间: %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("## 报告内容\n\n")
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n")
	return b.String()
}

func (g *Generator) save(markdown string, now time.Time) error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("report_%s.md", now.Format("20060102_150405"))
	return os.WriteFile(filepath.Join(g.outputDir, name), []byte(markdown), 0o644)
}
