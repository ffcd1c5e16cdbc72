package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"candlechart/market"
)

// DefaultBinanceURL is the public spot market-data endpoint.
const DefaultBinanceURL = "https://api.binance.com"

const maxKlineLimit = 1000

// Binance fetches klines from the Binance spot REST API. No credentials are
// needed for public market data.
type Binance struct {
	baseURL    string
	httpClient *http.Client
}

// NewBinance creates a Binance klines client. An empty baseURL selects the
// public endpoint.
func NewBinance(baseURL string) *Binance {
	if baseURL == "" {
		baseURL = DefaultBinanceURL
	}
	return &Binance{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError is the error payload Binance returns on non-200 responses.
type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Fetch gets up to limit closed candles for symbol at tf, oldest first.
//
// A kline row is a mixed-type JSON array:
// [openTime(ms), "open", "high", "low", "close", "volume", closeTime, ...]
func (b *Binance) Fetch(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error) {
	if symbol == "" {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("symbol is required")}
	}
	if limit <= 0 || limit > maxKlineLimit {
		limit = maxKlineLimit
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", string(tf))
	q.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/api/v3/klines?%s", b.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
			return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("venue status %d: %s", resp.StatusCode, apiErr.Msg)}
		}
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("venue status %d", resp.StatusCode)}
	}

	var rows [][]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("decode klines: %w", err)}
	}

	series := make(market.Series, 0, len(rows))
	for _, row := range rows {
		c, err := parseKline(row)
		if err != nil {
			return nil, &FetchError{Symbol: symbol, Err: err}
		}
		series = append(series, c)
	}

	return series, nil
}

func parseKline(row []any) (market.Candle, error) {
	if len(row) < 6 {
		return market.Candle{}, fmt.Errorf("kline row has %d fields, want at least 6", len(row))
	}

	openMs, ok := row[0].(float64)
	if !ok {
		return market.Candle{}, fmt.Errorf("kline open time is %T, want number", row[0])
	}

	prices := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := row[i].(string)
		if !ok {
			return market.Candle{}, fmt.Errorf("kline field %d is %T, want string", i, row[i])
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return market.Candle{}, fmt.Errorf("kline field %d: %w", i, err)
		}
		prices[i-1] = v
	}

	return market.Candle{
		Time:   int64(openMs) / 1000,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: prices[4],
	}, nil
}
