// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	stocksusecase "stockwatch/internal/feature/stocks/usecase"
	"stockwatch/internal/feature/watchlist/domain/entity"
	"stockwatch/internal/feature/watchlist/transport/http/dto"
	"stockwatch/internal/feature/watchlist/usecase"
)

// WatchlistUsecase はウォッチリスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type WatchlistUsecase interface {
	SaveStock(ctx context.Context, symbol string) (*entity.WatchedStock, error)
	ListSavedStocks(ctx context.Context) ([]entity.WatchedStock, error)
	DeleteStock(ctx context.Context, id uint) (*entity.WatchedStock, error)
}

// WatchlistHandler はウォッチリストの保存・一覧・削除のHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc     WatchlistUsecase
	logger *zap.Logger
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase, logger *zap.Logger) *WatchlistHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchlistHandler{uc: uc, logger: logger}
}

// Save は銘柄の最新株価を取得してウォッチリストに保存します。
// - リクエストJSONをSaveStockRequestにバインド
// - バリデーションエラー時は400を返却
// - 保存済みのシンボルは上書き更新
//
// エンドポイント例:
// POST /stocks/save {"symbol":"AAPL"}
func (h *WatchlistHandler) Save(c *gin.Context) {
	var req dto.SaveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("save stock validation failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	s, err := h.uc.SaveStock(c.Request.Context(), req.Symbol)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWatchedStockResponse(*s))
}

// List は保存済みの銘柄を更新日時の新しい順に返します。
//
// エンドポイント例:
// GET /stocks
func (h *WatchlistHandler) List(c *gin.Context) {
	stocks, err := h.uc.ListSavedStocks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.WatchedStockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.NewWatchedStockResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// Delete はIDを指定してウォッチリストから削除し、削除したレコードを返します。
//
// エンドポイント例:
// DELETE /stocks/3
func (h *WatchlistHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s, err := h.uc.DeleteStock(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWatchedStockResponse(*s))
}

// writeError はエラー種別に応じたステータスコードでエラーレスポンスを返します。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrStockNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, stocksusecase.ErrEmptySymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, stocksusecase.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
