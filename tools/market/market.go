// Package market provides the akshare_search tool: stock quote, history,
// and profile lookups across A-share, Hong Kong, and US markets.
//
// The tool owns code normalization and market detection; actual data access
// goes through a QuoteProvider so the engine can run against a static
// fixture set in tests or a real data gateway in production.
package market

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finagent-ai/finagent/tool"
	"github.com/finagent-ai/finagent/toolerr"
)

const toolName = "akshare_search"

// Market identifies the exchange family a code belongs to.
type Market string

const (
	MarketAShare   Market = "a_share"
	MarketHongKong Market = "hk"
	MarketUS       Market = "us"
)

// Quote is a realtime snapshot for one stock.
type Quote struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Currency  string  `json:"currency"`
}

// Bar is one row of daily history.
type Bar struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
}

// QuoteProvider is the upstream data source. Implementations return
// toolerr.ErrDataNotFound (possibly wrapped) when a code does not exist.
type QuoteProvider interface {
	Realtime(ctx context.Context, market Market, code string) (Quote, error)
	History(ctx context.Context, market Market, code, startDate, endDate string) ([]Bar, error)
	Info(ctx context.Context, market Market, code string) (map[string]any, error)
}

// Search is the akshare_search tool.
type Search struct {
	provider QuoteProvider
}

// New creates the tool on top of the given provider.
func New(provider QuoteProvider) *Search {
	return &Search{provider: provider}
}

func (s *Search) Name() string { return toolName }

func (s *Search) Description() string {
	return "全能股票查询工具。支持中文名、A股代码、美港股代码。系统会自动识别市场并处理代码转换。支持多只股票（逗号分隔）。"
}

func (s *Search) Schema() tool.Schema {
	return tool.Schema{
		Description: s.Description(),
		Params: []tool.Param{
			{Name: "stock_code", Type: "str", Description: "股票代码（支持单个或多个，多个用逗号分隔）"},
			{
				Name:        "data_type",
				Type:        "str",
				Description: "数据类型",
				Enum: []tool.EnumValue{
					{Value: "realtime", Description: "实时行情（用户查询当前或最新行情时使用）"},
					{Value: "history", Description: "历史数据（用户查询指定日期范围的历史行情时使用）"},
					{Value: "info", Description: "基本信息（用户查询股票基本信息时使用）"},
				},
			},
			{Name: "start_date", Type: "str", Description: "开始日期（可选，格式: YYYYMMDD）", Optional: true},
			{Name: "end_date", Type: "str", Description: "结束日期（可选，格式: YYYYMMDD）", Optional: true},
		},
	}
}

// NormalizeCode canonicalizes a stock code and detects its market:
// 6-digit A-share codes gain an sh/sz prefix by leading digit, 5-digit
// codes are Hong Kong listings, anything else is treated as a US symbol.
func NormalizeCode(raw string) (Market, string) {
	code := strings.ToUpper(strings.TrimSpace(raw))

	switch {
	case strings.HasPrefix(code, "SH"), strings.HasPrefix(code, "SZ"):
		return MarketAShare, strings.ToLower(code)
	case isDigits(code) && len(code) == 6:
		// Shanghai listings start with 6 or 5, everything else is Shenzhen.
		if code[0] == '6' || code[0] == '5' {
			return MarketAShare, "sh" + code
		}
		return MarketAShare, "sz" + code
	case strings.HasPrefix(code, "HK"):
		return MarketHongKong, strings.ToLower(code)
	case isDigits(code) && len(code) == 5:
		return MarketHongKong, "hk" + code
	default:
		return MarketUS, strings.ToLower(code)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// notFoundMessage names the market whose lookup failed. The replanner keys
// its forced-regeneration override off these exact markers.
func notFoundMessage(market Market, code string) string {
	switch market {
	case MarketAShare:
		return fmt.Sprintf("未找到A股代码: %s", code)
	case MarketHongKong:
		return fmt.Sprintf("未找到港股代码: %s", code)
	default:
		return fmt.Sprintf("未找到美股代码: %s", code)
	}
}

// Call looks up every code in the comma-separated stock_code argument and
// returns a per-code result map. A single unknown code fails the whole call
// so the failure text reaches the execution log.
func (s *Search) Call(ctx context.Context, args map[string]any) (any, error) {
	rawCodes, ok := tool.StringArg(args, "stock_code")
	if !ok || strings.TrimSpace(rawCodes) == "" {
		return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput, "stock_code is required")
	}
	dataType, ok := tool.StringArg(args, "data_type")
	if !ok || dataType == "" {
		dataType = "realtime"
	}
	startDate, _ := tool.StringArg(args, "start_date")
	endDate, _ := tool.StringArg(args, "end_date")

	results := map[string]any{}
	for _, raw := range strings.Split(rawCodes, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		market, code := NormalizeCode(raw)

		var (
			data any
			err  error
		)
		switch dataType {
		case "realtime":
			data, err = s.provider.Realtime(ctx, market, code)
		case "history":
			data, err = s.provider.History(ctx, market, code, startDate, endDate)
		case "info":
			data, err = s.provider.Info(ctx, market, code)
		default:
			return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput,
				"不支持的数据类型: "+dataType)
		}
		if err != nil {
			if isNotFound(err) {
				return nil, toolerr.New(toolName, "lookup", toolerr.ErrCodeDataNotFound,
					notFoundMessage(market, raw)).WithCause(err)
			}
			return nil, toolerr.New(toolName, "lookup", toolerr.ErrCodeExecutionFailed,
				fmt.Sprintf("获取股票数据失败: %s", raw)).WithCause(err)
		}
		results[raw] = data
	}

	if len(results) == 0 {
		return nil, toolerr.New(toolName, "args", toolerr.ErrCodeInvalidInput, "stock_code is empty")
	}
	return results, nil
}

func isNotFound(err error) bool {
	var te *toolerr.Error
	if errors.As(err, &te) && te.Code == toolerr.ErrCodeDataNotFound {
		return true
	}
	return errors.Is(err, toolerr.ErrDataNotFound)
}
