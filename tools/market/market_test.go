package market

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finagent-ai/finagent/toolerr"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		raw        string
		wantMarket Market
		wantCode   string
	}{
		{"600519", MarketAShare, "sh600519"},
		{"510300", MarketAShare, "sh510300"},
		{"000001", MarketAShare, "sz000001"},
		{"300750", MarketAShare, "sz300750"},
		{"sh600519", MarketAShare, "sh600519"},
		{"SZ000001", MarketAShare, "sz000001"},
		{"00700", MarketHongKong, "hk00700"},
		{"hk00700", MarketHongKong, "hk00700"},
		{"HK00700", MarketHongKong, "hk00700"},
		{"NVDA", MarketUS, "nvda"},
		{"aapl", MarketUS, "aapl"},
		{" 600519 ", MarketAShare, "sh600519"},
		{"BRK.B", MarketUS, "brk.b"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			market, code := NormalizeCode(tt.raw)
			if market != tt.wantMarket || code != tt.wantCode {
				t.Errorf("NormalizeCode(%q) = %v, %q; want %v, %q",
					tt.raw, market, code, tt.wantMarket, tt.wantCode)
			}
		})
	}
}

func seededProvider() *StaticProvider {
	return NewStaticProvider().
		AddQuote("sh600519", Quote{Code: "sh600519", Name: "贵州茅台", Price: 1520.50, Currency: "CNY"}).
		AddQuote("nvda", Quote{Code: "nvda", Name: "NVIDIA", Price: 128.90, Currency: "USD"}).
		AddHistory("sh600519", []Bar{
			{Date: "20260825", Open: 1500, Close: 1510, High: 1515, Low: 1495},
			{Date: "20260826", Open: 1510, Close: 1520, High: 1525, Low: 1505},
			{Date: "20260827", Open: 1520, Close: 1518, High: 1530, Low: 1512},
		}).
		AddInfo("nvda", map[string]any{"name": "NVIDIA Corporation", "sector": "Semiconductors"})
}

func TestSearchRealtime(t *testing.T) {
	s := New(seededProvider())

	got, err := s.Call(context.Background(), map[string]any{
		"stock_code": "600519",
		"data_type":  "realtime",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	results := got.(map[string]any)
	quote, ok := results["600519"].(Quote)
	if !ok {
		t.Fatalf("result type = %T", results["600519"])
	}
	if quote.Name != "贵州茅台" || quote.Price != 1520.50 {
		t.Errorf("quote = %+v", quote)
	}
}

func TestSearchDefaultsToRealtime(t *testing.T) {
	s := New(seededProvider())

	got, err := s.Call(context.Background(), map[string]any{"stock_code": "NVDA"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if _, ok := got.(map[string]any)["NVDA"].(Quote); !ok {
		t.Error("missing data_type must default to a realtime quote")
	}
}

func TestSearchMultipleCodes(t *testing.T) {
	s := New(seededProvider())

	got, err := s.Call(context.Background(), map[string]any{
		"stock_code": "600519, NVDA",
		"data_type":  "realtime",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	results := got.(map[string]any)
	if len(results) != 2 {
		t.Fatalf("results = %v, want entries for both codes", results)
	}
}

func TestSearchHistoryDateRange(t *testing.T) {
	s := New(seededProvider())

	got, err := s.Call(context.Background(), map[string]any{
		"stock_code": "600519",
		"data_type":  "history",
		"start_date": "20260826",
		"end_date":   "20260826",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	bars := got.(map[string]any)["600519"].([]Bar)
	if len(bars) != 1 || bars[0].Date != "20260826" {
		t.Errorf("bars = %+v, want the single in-range bar", bars)
	}
}

func TestSearchInfo(t *testing.T) {
	s := New(seededProvider())

	got, err := s.Call(context.Background(), map[string]any{
		"stock_code": "NVDA",
		"data_type":  "info",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	info := got.(map[string]any)["NVDA"].(map[string]any)
	if info["sector"] != "Semiconductors" {
		t.Errorf("info = %v", info)
	}
}

func TestSearchNotFoundMessages(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"a-share", "999999", "未找到A股代码: 999999"},
		{"hong kong", "99999", "未找到港股代码: 99999"},
		{"us", "NVDAA", "未找到美股代码: NVDAA"},
	}

	s := New(seededProvider())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Call(context.Background(), map[string]any{
				"stock_code": tt.code,
				"data_type":  "realtime",
			})
			if err == nil {
				t.Fatal("Call() expected not-found error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want marker %q", err, tt.want)
			}
			var te *toolerr.Error
			if !errors.As(err, &te) || te.Code != toolerr.ErrCodeDataNotFound {
				t.Errorf("error = %v, want DATA_NOT_FOUND", err)
			}
		})
	}
}

func TestSearchOneBadCodeFailsCall(t *testing.T) {
	s := New(seededProvider())

	_, err := s.Call(context.Background(), map[string]any{
		"stock_code": "600519, 999999",
		"data_type":  "realtime",
	})
	if err == nil {
		t.Fatal("one unknown code must fail the whole call")
	}
	if !strings.Contains(err.Error(), "未找到A股代码: 999999") {
		t.Errorf("error = %q", err)
	}
}

func TestSearchInvalidInput(t *testing.T) {
	s := New(seededProvider())
	ctx := context.Background()

	if _, err := s.Call(ctx, map[string]any{"data_type": "realtime"}); err == nil {
		t.Error("missing stock_code must fail")
	}
	if _, err := s.Call(ctx, map[string]any{"stock_code": " , "}); err == nil {
		t.Error("blank code list must fail")
	}
	_, err := s.Call(ctx, map[string]any{"stock_code": "NVDA", "data_type": "weekly"})
	if err == nil {
		t.Fatal("unknown data_type must fail")
	}
	if !strings.Contains(err.Error(), "不支持的数据类型") {
		t.Errorf("error = %q", err)
	}
}

func TestStaticProviderHistoryUnfiltered(t *testing.T) {
	p := seededProvider()

	bars, err := p.History(context.Background(), MarketAShare, "sh600519", "", "")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(bars) != 3 {
		t.Errorf("bars = %d, want all rows without a date range", len(bars))
	}
}
