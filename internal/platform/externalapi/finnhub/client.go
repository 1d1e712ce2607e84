package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"stockwatch/internal/feature/stocks/domain/entity"
	"stockwatch/internal/feature/stocks/usecase"
	"stockwatch/internal/platform/externalapi/finnhub/dto"
	"stockwatch/internal/shared/ratelimiter"
)

const (
	// MaxSearchResults は検索結果の最大返却件数です。
	MaxSearchResults = 8
	// MaxNewsArticles はニュースの最大返却件数です。
	MaxNewsArticles = 9

	// NewsTimeLayout はニュース日時の出力フォーマットです（UTC、ミリ秒付き）。
	NewsTimeLayout = "2006-01-02T15:04:05.000Z"
)

// Client はFinnhub外部APIから株価データを取得するMarketRepository実装です。
// すべてのリクエストはRequestQueueを経由して直列化されます。
type Client struct {
	cfg    Config
	client *http.Client
	queue  ratelimiter.Submitter
	logger *zap.Logger
}

// ClientがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*Client)(nil)

// NewClient は指定された設定・HTTPクライアント・リクエストキューでClientを生成します。
// clientがnilの場合はNewHTTPClientで生成します。
func NewClient(cfg Config, client *http.Client, queue ratelimiter.Submitter, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}
	return &Client{cfg: cfg, client: client, queue: queue, logger: logger}
}

// Search は銘柄を検索し、先頭MaxSearchResults件を返します。
// exchangeが指定された場合は取引所で絞り込みます。
func (c *Client) Search(ctx context.Context, query, exchange string) ([]entity.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	if exchange != "" {
		q.Set("exchange", strings.ToUpper(exchange))
	}

	body, err := fetch[dto.SearchResponse](ctx, c, "/search", q)
	if err != nil {
		return nil, err
	}

	n := min(len(body.Result), MaxSearchResults)
	out := make([]entity.SearchResult, 0, n)
	for _, r := range body.Result[:n] {
		out = append(out, entity.SearchResult{
			Description:   r.Description,
			DisplaySymbol: r.DisplaySymbol,
			Symbol:        r.Symbol,
			Type:          r.Type,
		})
	}
	return out, nil
}

// Quote は銘柄の最新株価を取得します。
func (c *Client) Quote(ctx context.Context, symbol string) (entity.PriceQuote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	body, err := fetch[dto.QuoteResponse](ctx, c, "/quote", q)
	if err != nil {
		return entity.PriceQuote{}, err
	}
	return entity.PriceQuote{
		Current:       body.C,
		Change:        body.D,
		PercentChange: body.DP,
		High:          body.H,
		Low:           body.L,
		Open:          body.O,
		PreviousClose: body.PC,
	}, nil
}

// Profile は企業プロフィールを取得します。
func (c *Client) Profile(ctx context.Context, symbol string) (entity.CompanyProfile, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	body, err := fetch[dto.ProfileResponse](ctx, c, "/stock/profile2", q)
	if err != nil {
		return entity.CompanyProfile{}, err
	}
	return entity.CompanyProfile{
		Name:     body.Name,
		Exchange: body.Exchange,
		Country:  body.Country,
		Currency: body.Currency,
		Industry: body.FinnhubIndustry,
		Logo:     body.Logo,
		WebURL:   body.WebURL,
	}, nil
}

// News はマーケットニュースを取得し、先頭MaxNewsArticles件を返します。
// 日時はエポック秒からUTCのISO-8601文字列に変換します。
func (c *Client) News(ctx context.Context, category string) ([]entity.NewsArticle, error) {
	q := url.Values{}
	q.Set("category", category)

	body, err := fetch[[]dto.NewsItem](ctx, c, "/news", q)
	if err != nil {
		return nil, err
	}

	n := min(len(body), MaxNewsArticles)
	out := make([]entity.NewsArticle, 0, n)
	for _, a := range body[:n] {
		out = append(out, entity.NewsArticle{
			ID:       a.ID,
			Category: a.Category,
			Datetime: FormatEpoch(a.Datetime),
			Headline: a.Headline,
			Image:    a.Image,
			Related:  a.Related,
			Source:   a.Source,
			Summary:  a.Summary,
			URL:      a.URL,
		})
	}
	return out, nil
}

// FormatEpoch はエポック秒をNewsTimeLayout形式の文字列に変換します。
func FormatEpoch(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(NewsTimeLayout)
}

// fetch はリクエストをキューに投入し、レスポンスJSONをTにデコードして返します。
func fetch[T any](ctx context.Context, c *Client, path string, q url.Values) (T, error) {
	q.Set("token", c.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())

	return ratelimiter.Do(ctx, c.queue, func() (T, error) {
		var body T
		err := c.getJSON(ctx, u, &body)
		return body, err
	})
}

// getJSON はGETリクエストを実行し、レスポンスをoutにデコードします。
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", usecase.ErrUpstream, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrUpstream, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", zap.Error(err))
		}
	}()

	if res.StatusCode >= 400 {
		var e dto.ErrorResponse
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		if json.Unmarshal(b, &e) == nil && e.Error != "" {
			return fmt.Errorf("%w: finnhub http %d: %s", usecase.ErrUpstream, res.StatusCode, e.Error)
		}
		return fmt.Errorf("%w: finnhub http %d", usecase.ErrUpstream, res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", usecase.ErrUpstream, err)
	}
	return nil
}
