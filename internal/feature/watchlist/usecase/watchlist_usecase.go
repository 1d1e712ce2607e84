package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	stocksentity "stockwatch/internal/feature/stocks/domain/entity"
	"stockwatch/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository abstracts the persistence layer for watchlist entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// Upsert はシンボルをキーに登録または更新し、sに保存後の値を反映します。
	Upsert(ctx context.Context, s *entity.WatchedStock) error
	// List は更新日時の新しい順に全件を返します。
	List(ctx context.Context) ([]entity.WatchedStock, error)
	// ListSymbols は登録済みのシンボルのみを返します。
	ListSymbols(ctx context.Context) ([]string, error)
	// Delete はIDで削除し、削除したレコードを返します。存在しない場合はErrStockNotFound。
	Delete(ctx context.Context, id uint) (*entity.WatchedStock, error)
}

// QuoteProvider は保存時に最新の株価を取得するためのインターフェースです。
type QuoteProvider interface {
	GetStockQuote(ctx context.Context, symbol string) (stocksentity.Quote, error)
}

// WatchlistUsecase provides business logic for the personal watchlist.
type WatchlistUsecase struct {
	repo   WatchlistRepository
	quotes QuoteProvider
	logger *zap.Logger
}

// NewWatchlistUsecase creates a new WatchlistUsecase.
func NewWatchlistUsecase(repo WatchlistRepository, quotes QuoteProvider, logger *zap.Logger) *WatchlistUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchlistUsecase{repo: repo, quotes: quotes, logger: logger}
}

// SaveStock は最新の株価を取得し、ウォッチリストに登録（既存なら更新）します。
func (u *WatchlistUsecase) SaveStock(ctx context.Context, symbol string) (*entity.WatchedStock, error) {
	q, err := u.quotes.GetStockQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s := &entity.WatchedStock{
		Symbol: q.Symbol,
		Name:   q.Name,
		Price:  q.Price,
		Change: q.Change,
	}
	if err := u.repo.Upsert(ctx, s); err != nil {
		u.logger.Error("failed to save stock", zap.String("symbol", q.Symbol), zap.Error(err))
		return nil, fmt.Errorf("save stock %s: %w", q.Symbol, err)
	}
	return s, nil
}

// ListSavedStocks はウォッチリストを更新日時の新しい順に返します。
func (u *WatchlistUsecase) ListSavedStocks(ctx context.Context) ([]entity.WatchedStock, error) {
	return u.repo.List(ctx)
}

// DeleteStock はIDでウォッチリストから削除します。
func (u *WatchlistUsecase) DeleteStock(ctx context.Context, id uint) (*entity.WatchedStock, error) {
	s, err := u.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	u.logger.Info("stock removed from watchlist", zap.Uint("id", id), zap.String("symbol", s.Symbol))
	return s, nil
}

// RefreshAll は登録済みの全銘柄について最新の株価を取得し、保存し直します。
// 1銘柄の失敗はログに出力して次に進みます。外部APIの間隔調整はリクエストキューが行います。
// 更新に成功した件数を返します。
func (u *WatchlistUsecase) RefreshAll(ctx context.Context) (int, error) {
	symbols, err := u.repo.ListSymbols(ctx)
	if err != nil {
		return 0, fmt.Errorf("list symbols: %w", err)
	}

	refreshed := 0
	for _, sym := range symbols {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		if _, err := u.SaveStock(ctx, sym); err != nil {
			u.logger.Error("failed to refresh stock", zap.String("symbol", sym), zap.Error(err))
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
