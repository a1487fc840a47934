package market

import (
	"context"

	"github.com/finagent-ai/finagent/toolerr"
)

// StaticProvider serves quotes from an in-memory fixture set. It backs the
// tool in tests and in offline operation; production deployments wire a
// gateway-backed QuoteProvider instead.
type StaticProvider struct {
	quotes  map[string]Quote
	history map[string][]Bar
	info    map[string]map[string]any
}

// NewStaticProvider creates an empty fixture provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		quotes:  make(map[string]Quote),
		history: make(map[string][]Bar),
		info:    make(map[string]map[string]any),
	}
}

// AddQuote seeds a realtime quote for a normalized code.
func (p *StaticProvider) AddQuote(code string, q Quote) *StaticProvider {
	p.quotes[code] = q
	return p
}

// AddHistory seeds daily history for a normalized code.
func (p *StaticProvider) AddHistory(code string, bars []Bar) *StaticProvider {
	p.history[code] = bars
	return p
}

// AddInfo seeds profile data for a normalized code.
func (p *StaticProvider) AddInfo(code string, info map[string]any) *StaticProvider {
	p.info[code] = info
	return p
}

func (p *StaticProvider) Realtime(_ context.Context, _ Market, code string) (Quote, error) {
	q, ok := p.quotes[code]
	if !ok {
		return Quote{}, toolerr.ErrDataNotFound
	}
	return q, nil
}

func (p *StaticProvider) History(_ context.Context, _ Market, code, startDate, endDate string) ([]Bar, error) {
	bars, ok := p.history[code]
	if !ok {
		return nil, toolerr.ErrDataNotFound
	}
	if startDate == "" && endDate == "" {
		return bars, nil
	}
	var out []Bar
	for _, b := range bars {
		// Dates are YYYYMMDD, so lexical comparison is chronological.
		if startDate != "" && b.Date < startDate {
			continue
		}
		if endDate != "" && b.Date > endDate {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (p *StaticProvider) Info(_ context.Context, _ Market, code string) (map[string]any, error) {
	info, ok := p.info[code]
	if !ok {
		return nil, toolerr.ErrDataNotFound
	}
	return info, nil
}
