package agent

import (
	"fmt"
	"strings"

	"github.com/finagent-ai/finagent/memory"
	"github.com/finagent-ai/finagent/plan"
)

// The prompt contracts below follow the production prompts of the financial
// research assistant this engine drives. They are written for a
// Chinese-market model; the engine only depends on their structural
// guarantees (JSON plan lists, a two-key resolution object, a one-digit
// decision answer), not on their wording.

const planPromptTemplate = `
## 要求
基于用户需求和对话上下文，生成一个详细的执行计划，每个步骤包含：
    1. 步骤编号
    2. 步骤描述
    3. 需要执行的操作
    4. 需要调用的工具 (从 tool_candidates 中选择，若不需要则为 null)
    5. 工具参数 (如果调用工具，则提供参数，格式为字典)

**强制规则:**
- 如果用户需求涉及“行业分析”、“公司研究”、“研报查询”等，计划的第一步必须调用 retrieve_reports 工具。
- 如果用户需求涉及“股价”、“财务指标”、“实时行情”、“历史数据”等，计划中必须调用 akshare_search 工具。
- **关键规则：** 如果需要根据上一步的输出结果提取具体参数（例如从研报中提取股票代码），必须单独创建一个步骤进行提取（tool: null），然后再进行下一步工具调用。严禁在同一个步骤中既提取又查询！
- **参数规则：** 如果工具参数的值依赖于前序步骤的输出（即在制定计划时未知），严禁在 tool_args 中填写猜测值或描述性文字（如 "步骤X的结果"）。必须将该参数留空，或者将整个 tool_args 设为 null，交由执行阶段动态分析。
- 计划必须是逐步的，逻辑清晰，能够直接指导执行。

回答格式（请严格遵守JSON格式）：
[
    {
        "step": 1,
        "description": "步骤描述",
        "action": "需要执行的操作",
        "tool": "工具名称或null",
        "tool_args": {"参数名": "参数值"}
    },
    ...
]

## 当前对话上下文:
%s

## 用户当前需求:
%s

## tool_candidates:
%s
`

// planPrompt builds the planning prompt from the user request, the rolling
// conversation summary, and the registered tool names.
func planPrompt(userInput, summary string, toolNames []string) string {
	return fmt.Sprintf(planPromptTemplate, summary, userInput, strings.Join(toolNames, ", "))
}

const resolvePromptTemplate = `
请分析以下任务需要调用工具"%s"时的具体参数。

任务描述: %s
用户原始需求: %s

前序步骤执行结果（上下文）:
%s

请根据任务描述、原始需求和上下文，分析出调用该工具所需的参数。

**重要规则:**
1. 参数名称必须与工具参数定义中的key完全一致，严禁翻译或修改参数名！
2. 如果前序步骤的结果为空或无法获取所需信息，严禁虚构参数值！请在"分析"字段中说明情况，并在"参数"中返回空值或不包含该参数。
3. **穷举提取规则**: 如果参数值依赖于前序步骤的输出，必须穷举提取所有符合条件的具体数据值，严禁只提取一个或部分，也严禁使用 "步骤X的结果"、"上一步提取的代码" 等描述性文字！

**特殊规则 for generate_markdown_report:**
- report_content 参数必须是一个综合了前面所有步骤执行结果的、详尽的、可直接阅读的字符串。严禁在此处使用 "步骤1的结果" 或类似的占位符！

**特殊规则 for akshare_search:**
- data_type 参数必须且只能从 ['realtime', 'history', 'info'] 中三选一。
- stock_code 支持多只股票，如果前序步骤提取了多个股票代码，请用逗号分隔（如 "NVDA, AAPL, MSFT"）。

工具参数定义：
%s

回答格式（请严格遵守JSON格式）：
{
    "分析": "你的分析过程（如果缺少必要信息，请在此说明）",
    "参数": {
        "参数1名称": "参数1值",
        "参数2名称": "参数2值"
    }
}
`

// resolvePrompt builds the argument-resolution prompt for one tool-bound
// step. contract is the rendered argument contract of every registered
// tool.
func resolvePrompt(toolName, action, userInput, history, contract string) string {
	return fmt.Sprintf(resolvePromptTemplate, toolName, action, userInput, history, contract)
}

const directPromptTemplate = `
请根据上下文执行以下任务。

任务描述: %s
用户原始需求: %s

前序步骤执行结果（上下文）:
%s

请直接输出任务的执行结果。如果任务是提取信息，请直接列出提取到的信息。
`

// directPrompt builds the prompt for a step with no tool binding.
func directPrompt(action, userInput, history string) string {
	return fmt.Sprintf(directPromptTemplate, action, userInput, history)
}

const decisionPromptTemplate = `
基于当前执行情况，请判断下一步应该做什么：

用户原始需求: %s
当前执行进度: %d/%d
已完成的执行结果: %s

重要提示：
- 如果还有未执行的步骤（当前步骤 < 总步骤数），必须选择"1"继续执行
- 只有当所有步骤都执行完毕后，才能选择"2"生成最终答案
- 如果当前步骤执行失败，才选择"3"重新规划

请选择最合适的选项：
1. 继续执行下一个步骤（当还有未执行的步骤时）
2. 生成最终答案（只有当所有步骤都执行完毕后）
3. 重新规划计划（如果当前步骤执行失败）

请只回答数字1、2或3。
`

// decisionPrompt builds the three-way control decision prompt.
func decisionPrompt(st *plan.RunState) string {
	return fmt.Sprintf(decisionPromptTemplate,
		st.UserInput, st.Cursor, st.Plan.Len(), st.HistoryText())
}

const regeneratePromptTemplate = `
基于当前执行结果和对话历史，重新生成执行计划。

对话历史:
%s

当前对话摘要:
%s

原始用户需求: %s
当前执行计划: %s
已执行步骤: %d
执行结果: %s

**特别注意:**
1. 如果执行结果显示任务失败（例如"未找到研报"、"参数校验失败"等），请必须修改计划！
2. 如果研报检索结果为空，请尝试放宽检索条件（例如移除filters参数，或使用更通用的查询词）。
3. 如果是因为参数错误导致失败，请重新尝试该步骤，但确保参数正确。
4. **错误修复：** 如果上一步报错“未找到代码”或“无法识别”，请在新的计划中增加一个专门的步骤：先使用 akshare_search 的 info 模式获取该公司的准确股票代码，然后再查询行情。

请根据以上信息，重新生成一个执行计划，包含剩余需要执行的步骤。

回答格式（请严格遵守JSON格式）：
[
    {
        "step": 1,
        "description": "步骤描述",
        "action": "需要执行的操作",
        "tool": "工具名称",
        "tool_args": {"参数名": "参数值"}
    },
    ...
]
`

// regeneratePrompt builds the plan-regeneration prompt, including the stale
// plan and remediation hints for the known failure modes.
func regeneratePrompt(st *plan.RunState, memCtx memory.Context) string {
	return fmt.Sprintf(regeneratePromptTemplate,
		memCtx.HistoryText(), memCtx.Summary,
		st.UserInput, describePlan(st.Plan), st.Cursor, st.HistoryText())
}

const answerPromptTemplate = `
基于以下执行结果和用户原始需求，生成一个全面、详尽且专业的最终答案。

用户原始需求: %s
执行结果: %s

**回答规范:**
1. **引用来源**: 如果答案中包含了来自研报的信息，必须明确指出信息来源。
2. **数据完整**: 确保所有从研报中提取的关键信息（如公司列表、核心观点）和查询到的数据（如股票行情）都包含在内。
3. **格式清晰**: 使用Markdown格式，使回答结构清晰、易于阅读。
4. **语言专业**: 使用专业的金融术语进行分析和总结。

请根据以上规范，直接回答用户的问题，无需解释过程。
`

// answerPrompt builds the final-answer composition prompt.
func answerPrompt(st *plan.RunState) string {
	return fmt.Sprintf(answerPromptTemplate, st.UserInput, st.HistoryText())
}

// describePlan renders a plan for embedding in regeneration prompts.
func describePlan(p plan.Plan) string {
	lines := make([]string, 0, len(p))
	for _, step := range p {
		tool := step.Tool
		if !step.UsesTool() {
			tool = "null"
		}
		lines = append(lines, fmt.Sprintf("%d. %s (tool: %s)", step.Index, step.Description, tool))
	}
	return strings.Join(lines, "\n")
}
