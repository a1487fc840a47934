package agent

import (
	"strings"
	"testing"
)

func TestParseResolution(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		rationale string
		args      map[string]any
		wantErr   bool
	}{
		{
			name:      "localized keys",
			response:  `{"分析": "提取到代码600519", "参数": {"stock_code": "600519"}}`,
			rationale: "提取到代码600519",
			args:      map[string]any{"stock_code": "600519"},
		},
		{
			name:      "english keys",
			response:  `{"analysis": "found ticker", "args": {"code": "nvda"}}`,
			rationale: "found ticker",
			args:      map[string]any{"code": "nvda"},
		},
		{
			name:     "arguments key",
			response: `{"arguments": {"add1": 1}}`,
			args:     map[string]any{"add1": float64(1)},
		},
		{
			name:     "fenced",
			response: "```json\n{\"参数\": {\"query\": \"白酒\"}}\n```",
			args:     map[string]any{"query": "白酒"},
		},
		{
			name:     "missing mapping yields empty args",
			response: `{"分析": "前序步骤结果为空，无法提取参数"}`,
			args:     map[string]any{},
		},
		{
			name:     "prose",
			response: "参数应该是600519",
			wantErr:  true,
		},
		{
			name:     "list not object",
			response: `[{"参数": {}}]`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResolution(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseResolution() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseResolution() error = %v", err)
			}
			if got.rationale != tt.rationale {
				t.Errorf("rationale = %q, want %q", got.rationale, tt.rationale)
			}
			if len(got.args) != len(tt.args) {
				t.Fatalf("args = %v, want %v", got.args, tt.args)
			}
			for k, want := range tt.args {
				if got.args[k] != want {
					t.Errorf("args[%q] = %v, want %v", k, got.args[k], want)
				}
			}
		})
	}
}

func TestApplyAliases(t *testing.T) {
	in := map[string]any{
		"用户需求":      "分析白酒行业",
		"数据类型":      "realtime",
		"代码":        "600519",
		"stock_code": "600519",
		"unknown_键":  "kept",
	}
	out := applyAliases(in)

	want := map[string]string{
		"user_requirement": "分析白酒行业",
		"data_type":        "realtime",
		"code":             "600519",
		"stock_code":       "600519",
		"unknown_键":        "kept",
	}
	if len(out) != len(want) {
		t.Fatalf("applyAliases() = %v", out)
	}
	for k, v := range want {
		if out[k] != v {
			t.Errorf("out[%q] = %v, want %q", k, out[k], v)
		}
	}
}

func TestValidateArgs(t *testing.T) {
	freeText := map[string]bool{"user_requirement": true, "report_content": true, "query": true}

	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{
			name: "valid",
			args: map[string]any{"stock_code": "600519", "data_type": "realtime"},
		},
		{
			name:    "empty value",
			args:    map[string]any{"stock_code": ""},
			wantMsg: "参数校验失败",
		},
		{
			name:    "none value",
			args:    map[string]any{"stock_code": "none"},
			wantMsg: "参数校验失败",
		},
		{
			name:    "placeholder prose",
			args:    map[string]any{"stock_code": "根据步骤1的执行结果提取"},
			wantMsg: "描述性文字",
		},
		{
			name:    "english placeholder",
			args:    map[string]any{"stock_code": "extracted from step 1 result"},
			wantMsg: "描述性文字",
		},
		{
			name: "short value with keyword passes",
			args: map[string]any{"code": "步骤"},
		},
		{
			name: "free text exempt",
			args: map[string]any{"report_content": "根据步骤1的执行结果，行业景气度回升。"},
		},
		{
			name: "non-string values skipped",
			args: map[string]any{"n_results": float64(5), "filters": map[string]any{"industry": "白酒"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateArgs(tt.args, freeText)
			if tt.wantMsg == "" {
				if msg != "" {
					t.Errorf("validateArgs() = %q, want pass", msg)
				}
				return
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("validateArgs() = %q, want message containing %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		tool string
		in   string
		want string
	}{
		{"daily history collapses", "akshare_search", "daily_history", "history"},
		{"stock history collapses", "akshare_search", "stock_history", "history"},
		{"canonical untouched", "akshare_search", "realtime", "realtime"},
		{"unknown value untouched", "akshare_search", "weekly", "weekly"},
		{"other tool untouched", "retrieve_reports", "daily_history", "daily_history"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{"data_type": tt.in}
			normalizeArgs(tt.tool, args)
			if got := args["data_type"]; got != tt.want {
				t.Errorf("data_type = %v, want %q", got, tt.want)
			}
		})
	}
}
