// Package research provides the retrieve_reports tool, a keyword retrieval
// layer over the research-report document store.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/finagent-ai/finagent/memory"
	"github.com/finagent-ai/finagent/tool"
	"github.com/finagent-ai/finagent/toolerr"
)

const (
	toolName = "retrieve_reports"

	// defaultResults is how many reports a query returns when n_results
	// is omitted.
	defaultResults = 5
)

// Retriever is the retrieve_reports tool.
type Retriever struct {
	store memory.DocumentStore
}

// New creates the tool on top of the given store.
func New(store memory.DocumentStore) *Retriever {
	return &Retriever{store: store}
}

func (r *Retriever) Name() string        { return toolName }
func (r *Retriever) Description() string { return "研报检索工具" }

func (r *Retriever) Schema() tool.Schema {
	return tool.Schema{
		Description: r.Description(),
		Params: []tool.Param{
			{Name: "query", Type: "str", Description: "用户查询文本", FreeText: true},
			{Name: "n_results", Type: "int", Description: "返回的研报数量（可选，默认为5）", Optional: true},
			{Name: "filters", Type: "dict", Description: "元数据过滤条件（可选，例如 {'ticker': 'NVDA'}）", Optional: true},
		},
	}
}

// Call searches the store. An empty result set is a DATA_NOT_FOUND failure
// rather than an empty success, so the failure text reaches the execution
// log and the replanner can broaden the search.
func (r *Retriever) Call(ctx context.Context, args map[string]any) (any, error) {
	query, ok := tool.StringArg(args, "query")
	if !ok || strings.TrimSpace(query) == "" {
		return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput, "query is required")
	}

	limit, ok := tool.IntArg(args, "n_results")
	if !ok || limit <= 0 {
		limit = defaultResults
	}

	var filter map[string]string
	if raw, ok := tool.MapArg(args, "filters"); ok {
		filter = make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				filter[k] = s
			}
		}
	}

	results, err := r.store.Search(ctx, query, filter, limit)
	if err != nil {
		return nil, toolerr.New(toolName, "search", toolerr.ErrCodeExecutionFailed,
			"研报检索失败").WithCause(err)
	}
	if len(results) == 0 {
		return nil, toolerr.New(toolName, "search", toolerr.ErrCodeDataNotFound,
			fmt.Sprintf("未找到研报: %s", query))
	}

	out := make([]map[string]any, 0, len(results))
	for _, res := range results {
		out = append(out, map[string]any{
			"id":         res.Document.ID,
			"content":    res.Document.Content,
			"metadata":   res.Document.Metadata,
			"similarity": res.Similarity,
		})
	}
	return out, nil
}
