package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/finagent-ai/finagent/plan"
)

// paramAliases translates argument names the oracle is known to localize
// back to their canonical registry names. The resolution prompt forbids
// translating keys, but smaller models do it anyway.
var paramAliases = map[string]string{
	"用户需求": "user_requirement",
	"报告内容": "report_content",
	"查询":   "query",
	"数量":   "n_results",
	"过滤条件": "filters",
	"股票代码": "stock_code",
	"数据类型": "data_type",
	"开始日期": "start_date",
	"结束日期": "end_date",
	"加数1":  "add1",
	"加数2":  "add2",
	"时间格式": "time_format",
	"代码":   "code",
}

// placeholderKeywords flag values that look like descriptive prose instead
// of concrete data ("根据步骤1的执行结果提取..."). A match alone is not enough;
// short legitimate values are exempted by placeholderMinLength.
var placeholderKeywords = []string{
	"提取", "列表", "步骤", "根据", "执行结果", "分析", "获取",
	"extract", "step", "result",
}

// placeholderMinLength is the rune count above which a keyword match
// rejects the value.
const placeholderMinLength = 4

// resolvedArgs is the two-key resolution answer: a free-text rationale and
// an argument mapping. Both localized and English key spellings are
// accepted.
type resolvedArgs struct {
	rationale string
	args      map[string]any
}

// parseResolution decodes the oracle's argument-resolution response. The
// raw response may be fenced. A missing argument mapping yields empty args,
// not an error; only malformed JSON is a parse failure.
func parseResolution(response string) (resolvedArgs, error) {
	cleaned := plan.StripFences(response)

	var raw map[string]any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return resolvedArgs{}, fmt.Errorf("decode resolution: %w", err)
	}

	out := resolvedArgs{args: map[string]any{}}
	for _, key := range []string{"分析", "analysis"} {
		if v, ok := raw[key].(string); ok {
			out.rationale = v
			break
		}
	}
	for _, key := range []string{"参数", "args", "arguments"} {
		if m, ok := raw[key].(map[string]any); ok {
			out.args = m
			break
		}
	}
	return out, nil
}

// applyAliases rewrites localized argument names to canonical ones.
func applyAliases(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if canonical, ok := paramAliases[k]; ok {
			out[canonical] = v
		} else {
			out[k] = v
		}
	}
	return out
}

// normalizeArgs applies fixed value coercions for specific tools. Models
// invent plausible-sounding enum values; the known ones are collapsed to
// their canonical form instead of failing the step.
func normalizeArgs(toolName string, args map[string]any) {
	if toolName != "akshare_search" {
		return
	}
	if dt, ok := args["data_type"].(string); ok {
		switch dt {
		case "daily_history", "stock_history":
			args["data_type"] = "history"
		}
	}
}

// validateArgs applies the emptiness and placeholder heuristics to every
// string argument not in the free-text whitelist. It returns a failure
// message suitable for an execution record, or "" when all values pass.
func validateArgs(args map[string]any, freeText map[string]bool) string {
	for key, value := range args {
		if freeText[key] {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}

		if s == "" || strings.EqualFold(s, "none") {
			return fmt.Sprintf("参数校验失败: 参数 '%s' 的值为空。请检查前序步骤是否成功获取了数据。", key)
		}

		if utf8.RuneCountInString(s) > placeholderMinLength && containsPlaceholder(s) {
			return fmt.Sprintf("参数校验失败: 参数 '%s' 的值 '%s' 似乎是描述性文字而非有效参数。请检查前序步骤是否成功获取了数据。", key, s)
		}
	}
	return ""
}

func containsPlaceholder(value string) bool {
	lower := strings.ToLower(value)
	for _, kw := range placeholderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
