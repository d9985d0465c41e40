package market

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/fundwise/pkg/httputil"
)

// PostgresSeries reads closes from data.index_prices (symbol, trade_date, close)
type PostgresSeries struct {
	db *pgxpool.Pool
}

// NewPostgresSeries creates a Postgres-backed series source
func NewPostgresSeries(db *pgxpool.Pool) *PostgresSeries {
	return &PostgresSeries{db: db}
}

// Closes implements SeriesSource
func (s *PostgresSeries) Closes(ctx context.Context, symbol string, n int) ([]float64, error) {
	query := `
		SELECT close
		FROM data.index_prices
		WHERE symbol = $1
		ORDER BY trade_date DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, symbol, n)
	if err != nil {
		return nil, fmt.Errorf("query index prices: %w", err)
	}

	closes, err := pgx.CollectRows(rows, pgx.RowTo[float64])
	if err != nil {
		return nil, fmt.Errorf("collect index prices: %w", err)
	}

	// DESC → 오래된 순으로 뒤집기
	for i, j := 0, len(closes)-1; i < j; i, j = i+1, j-1 {
		closes[i], closes[j] = closes[j], closes[i]
	}
	return closes, nil
}

// PricePoint is one close in an HTTP series response
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// SeriesResponse is the JSON body of the market data endpoint
type SeriesResponse struct {
	Symbol string       `json:"symbol"`
	Prices []PricePoint `json:"prices"`
}

// HTTPSeries fetches closes from a JSON endpoint:
// GET {baseURL}?symbol=NIFTY50&days=200
type HTTPSeries struct {
	client  *httputil.Client
	baseURL string
}

// NewHTTPSeries creates an HTTP-backed series source
func NewHTTPSeries(client *httputil.Client, baseURL string) *HTTPSeries {
	return &HTTPSeries{client: client, baseURL: baseURL}
}

// Closes implements SeriesSource
func (s *HTTPSeries) Closes(ctx context.Context, symbol string, n int) ([]float64, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse market data url: %w", err)
	}
	q := u.Query()
	q.Set("symbol", symbol)
	q.Set("days", strconv.Itoa(n))
	u.RawQuery = q.Encode()

	var resp SeriesResponse
	if err := s.client.GetJSON(ctx, u.String(), &resp); err != nil {
		return nil, fmt.Errorf("fetch market series: %w", err)
	}

	// ISO 날짜 문자열은 사전순 = 시간순
	sort.SliceStable(resp.Prices, func(i, j int) bool {
		return resp.Prices[i].Date < resp.Prices[j].Date
	})
	if len(resp.Prices) > n {
		resp.Prices = resp.Prices[len(resp.Prices)-n:]
	}

	closes := make([]float64, len(resp.Prices))
	for i, p := range resp.Prices {
		closes[i] = p.Close
	}
	return closes, nil
}
