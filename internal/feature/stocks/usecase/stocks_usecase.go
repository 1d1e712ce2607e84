// Package usecase は銘柄検索・株価・ニュース取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"stockwatch/internal/feature/stocks/domain/entity"
)

// DefaultNewsCategory はカテゴリ未指定時のニュースカテゴリです。
const DefaultNewsCategory = "general"

// MarketRepository は外部の株価データAPIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	Search(ctx context.Context, query, exchange string) ([]entity.SearchResult, error)
	Quote(ctx context.Context, symbol string) (entity.PriceQuote, error)
	Profile(ctx context.Context, symbol string) (entity.CompanyProfile, error)
	News(ctx context.Context, category string) ([]entity.NewsArticle, error)
}

// StocksUsecase は株価データ取得のユースケースを提供します。
type StocksUsecase struct {
	market MarketRepository
	logger *zap.Logger
}

// NewStocksUsecase は新しい StocksUsecase を作成します。
func NewStocksUsecase(market MarketRepository, logger *zap.Logger) *StocksUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StocksUsecase{market: market, logger: logger}
}

// SearchStocks はクエリに一致する銘柄を検索します。
func (u *StocksUsecase) SearchStocks(ctx context.Context, query, exchange string) ([]entity.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	rs, err := u.market.Search(ctx, query, strings.TrimSpace(exchange))
	if err != nil {
		u.logger.Error("failed to search stocks", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return rs, nil
}

// GetNews は指定カテゴリのマーケットニュースを取得します。
func (u *StocksUsecase) GetNews(ctx context.Context, category string) ([]entity.NewsArticle, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultNewsCategory
	}
	ns, err := u.market.News(ctx, category)
	if err != nil {
		u.logger.Error("failed to get news", zap.String("category", category), zap.Error(err))
		return nil, err
	}
	return ns, nil
}

// GetStockQuote は株価と企業情報を取得し、1件のQuoteに統合して返します。
// 2つのリクエストは同時に投入され、レートリミッタで直列化されます。
func (u *StocksUsecase) GetStockQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return entity.Quote{}, ErrEmptySymbol
	}

	type profileResult struct {
		profile entity.CompanyProfile
		err     error
	}
	ch := make(chan profileResult, 1)
	go func() {
		p, err := u.market.Profile(ctx, symbol)
		ch <- profileResult{profile: p, err: err}
	}()

	quote, qerr := u.market.Quote(ctx, symbol)
	pr := <-ch

	if qerr != nil {
		u.logger.Error("failed to get stock quote", zap.String("symbol", symbol), zap.Error(qerr))
		return entity.Quote{}, qerr
	}
	if pr.err != nil {
		u.logger.Error("failed to get company profile", zap.String("symbol", symbol), zap.Error(pr.err))
		return entity.Quote{}, pr.err
	}
	return entity.NewQuote(symbol, quote, pr.profile), nil
}

// NormalizeSymbol はティッカーシンボルの前後の空白を除去し大文字に揃えます。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
