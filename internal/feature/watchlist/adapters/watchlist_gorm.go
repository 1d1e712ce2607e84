// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockwatch/internal/feature/watchlist/domain/entity"
	"stockwatch/internal/feature/watchlist/usecase"
)

// watchlistGorm はWatchlistRepositoryインターフェースのGORM実装です。
type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でリポジトリの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Upsert はsymbolの一意制約をキーに登録し、既存の場合は名称・株価・前日比を更新します。
// 保存後の行（ID・作成日時を含む）をsに読み戻します。
func (r *watchlistGorm) Upsert(ctx context.Context, s *entity.WatchedStock) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price", "change", "updated_at"}),
		}).Create(s).Error; err != nil {
			return err
		}
		var saved entity.WatchedStock
		if err := tx.Where("symbol = ?", s.Symbol).First(&saved).Error; err != nil {
			return err
		}
		*s = saved
		return nil
	})
}

// List は更新日時の新しい順に全件を返します。
func (r *watchlistGorm) List(ctx context.Context) ([]entity.WatchedStock, error) {
	var stocks []entity.WatchedStock
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// ListSymbols はシンボル順に登録済みのシンボルを返します。
func (r *watchlistGorm) ListSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchedStock{}).
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Delete はIDで1件削除し、削除前のレコードを返します。
// 該当がない場合は何も変更せずErrStockNotFoundを返します。
func (r *watchlistGorm) Delete(ctx context.Context, id uint) (*entity.WatchedStock, error) {
	var s entity.WatchedStock
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrStockNotFound
			}
			return err
		}
		return tx.Delete(&entity.WatchedStock{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
