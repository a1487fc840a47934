package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var fixed = time.Date(2026, 8, 31, 10, 30, 45, 0, time.UTC)

func TestGeneratorRender(t *testing.T) {
	g := New(WithTimeSource(func() time.Time { return fixed }))

	got, err := g.Call(context.Background(), map[string]any{
		"user_requirement": "白酒行业分析",
		"report_content":   "高端白酒动销改善，景气度回升。",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	markdown := got.(string)
	for _, want := range []string{
		"# 白酒行业分析",
		"> 生成时间: 2026-08-31 10:30:45",
		"## 报告内容",
		"高端白酒动销改善，景气度回升。",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("markdown missing %q:\n%s", want, markdown)
		}
	}
}

func TestGeneratorSavesToDisk(t *testing.T) {
	dir := t.TempDir()
	g := New(
		WithOutputDir(filepath.Join(dir, "reports")),
		WithTimeSource(func() time.Time { return fixed }),
	)

	if _, err := g.Call(context.Background(), map[string]any{
		"user_requirement": "测试报告",
		"report_content":   "内容",
	}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	path := filepath.Join(dir, "reports", "report_20260831_103045.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("saved report missing: %v", err)
	}
	if !strings.Contains(string(data), "# 测试报告") {
		t.Errorf("saved report = %q", data)
	}
}

func TestGeneratorRequiredArgs(t *testing.T) {
	g := New()
	ctx := context.Background()

	if _, err := g.Call(ctx, map[string]any{"report_content": "内容"}); err == nil {
		t.Error("missing user_requirement must fail")
	}
	if _, err := g.Call(ctx, map[string]any{"user_requirement": "需求"}); err == nil {
		t.Error("missing report_content must fail")
	}
	if _, err := g.Call(ctx, map[string]any{
		"user_requirement": "需求",
		"report_content":   "   ",
	}); err == nil {
		t.Error("blank report_content must fail")
	}
}
