package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"optionsdesk/internal/domain/optionchain"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL  = "https://scanner.tradingview.com/options/scan2"
	DefaultExchange = "NSE"
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 512
)

var ErrEmptySymbol = errors.New("symbol is required")

// UpstreamError reports a non-success HTTP status from the options scanner.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("options scan: status %d, body: %s", e.StatusCode, e.Body)
}

// Config controls the scanner client.
type Config struct {
	BaseURL  string
	Exchange string
	Timeout  time.Duration
	// CacheTTL is the freshness window during which a cached upstream
	// response is reused instead of calling the scanner again.
	CacheTTL time.Duration
}

// Client fetches the columnar options feed of one underlying.
type Client struct {
	baseURL    string
	exchange   string
	httpClient *http.Client
	cache      ResponseCache
	cacheTTL   time.Duration
	logger     *logrus.Entry
}

// NewClient builds a scanner client. cache may be nil to always go upstream.
func NewClient(cfg Config, cache ResponseCache, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		exchange:   strings.ToUpper(cfg.Exchange),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger.WithField("component", "scanner"),
	}
}

type scanFilter struct {
	Left      string `json:"left"`
	Operation string `json:"operation"`
	Right     string `json:"right"`
}

type indexFilter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type scanRequest struct {
	Columns             []string      `json:"columns"`
	Filter              []scanFilter  `json:"filter"`
	IndexFilters        []indexFilter `json:"index_filters"`
	IgnoreUnknownFields bool          `json:"ignore_unknown_fields"`
}

// ticker qualifies symbol with the configured exchange unless it already
// carries one (EXCHANGE:SYMBOL). It returns "" when no symbol is left.
func (c *Client) ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	exchange := c.exchange
	if i := strings.IndexByte(symbol, ':'); i >= 0 {
		if e := strings.TrimSpace(symbol[:i]); e != "" {
			exchange = e
		}
		symbol = strings.TrimSpace(symbol[i+1:])
	}
	if symbol == "" {
		return ""
	}
	return exchange + ":" + symbol
}

func (c *Client) newScanRequest(ticker string) scanRequest {
	return scanRequest{
		Columns: optionchain.ScanColumns,
		Filter: []scanFilter{
			{Left: "type", Operation: "equal", Right: "option"},
		},
		IndexFilters: []indexFilter{
			{Name: "underlying_symbol", Values: []string{ticker}},
		},
	}
}

// FetchOptions returns the decoded scan response for symbol, served from the
// cache when a response younger than the freshness window exists. symbol may
// be bare or EXCHANGE:SYMBOL. Only responses with a usable schema are cached.
func (c *Client) FetchOptions(ctx context.Context, symbol string) (*optionchain.ScanPayload, error) {
	ticker := c.ticker(symbol)
	if ticker == "" {
		return nil, ErrEmptySymbol
	}
	key := cacheKey(ticker)
	log := c.logger.WithField("ticker", ticker)

	if c.cache != nil && c.cacheTTL > 0 {
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("scan cache read failed")
		} else if ok {
			payload, err := decodePayload(cached)
			if err == nil {
				log.Debug("scan served from cache")
				return payload, nil
			}
			log.WithError(err).Warn("discarding unusable cached scan")
		}
	}

	body, err := c.post(ctx, c.newScanRequest(ticker))
	if err != nil {
		return nil, err
	}
	payload, err := decodePayload(body)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			log.WithError(err).Warn("scan cache write failed")
		}
	}
	log.WithField("records", len(payload.Symbols)).Debug("scan fetched")
	return payload, nil
}

func (c *Client) post(ctx context.Context, reqBody scanRequest) ([]byte, error) {
	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal scan request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("options scan: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("options scan read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func decodePayload(body []byte) (*optionchain.ScanPayload, error) {
	var payload optionchain.ScanPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode scan response: %w", err)
	}
	if err := optionchain.ValidateSchema(payload.Fields); err != nil {
		return nil, err
	}
	return &payload, nil
}
