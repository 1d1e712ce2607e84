// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockwatch/internal/feature/stocks/domain/entity"
	"stockwatch/internal/feature/stocks/transport/http/dto"
	"stockwatch/internal/feature/stocks/usecase"
)

// StocksUsecase は株価データ取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StocksUsecase interface {
	SearchStocks(ctx context.Context, query, exchange string) ([]entity.SearchResult, error)
	GetNews(ctx context.Context, category string) ([]entity.NewsArticle, error)
	GetStockQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// StocksHandler は銘柄検索・株価・ニュースのHTTPリクエストを処理します。
type StocksHandler struct {
	uc StocksUsecase
}

// NewStocksHandler は新しい StocksHandler を作成します。
func NewStocksHandler(uc StocksUsecase) *StocksHandler {
	return &StocksHandler{uc: uc}
}

// Search は銘柄検索APIです。
//
// エンドポイント例:
// GET /stocks/search?q=apple&exchange=US
func (h *StocksHandler) Search(c *gin.Context) {
	rs, err := h.uc.SearchStocks(c.Request.Context(), c.Query("q"), c.Query("exchange"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.SearchResultItem, 0, len(rs))
	for _, r := range rs {
		out = append(out, dto.SearchResultItem{
			Description:   r.Description,
			DisplaySymbol: r.DisplaySymbol,
			Symbol:        r.Symbol,
			Type:          r.Type,
		})
	}
	c.JSON(http.StatusOK, out)
}

// News はマーケットニュース取得APIです。
//
// エンドポイント例:
// GET /stocks/news?category=general
func (h *StocksHandler) News(c *gin.Context) {
	category := c.DefaultQuery("category", usecase.DefaultNewsCategory)
	ns, err := h.uc.GetNews(c.Request.Context(), category)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.NewsArticleItem, 0, len(ns))
	for _, n := range ns {
		out = append(out, dto.NewsArticleItem{
			Category: n.Category,
			Datetime: n.Datetime,
			Headline: n.Headline,
			ID:       n.ID,
			Image:    n.Image,
			Related:  n.Related,
			Source:   n.Source,
			Summary:  n.Summary,
			URL:      n.URL,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Quote は株価と企業情報を統合して返すAPIです。
//
// エンドポイント例:
// GET /stocks/quote/AAPL
func (h *StocksHandler) Quote(c *gin.Context) {
	q, err := h.uc.GetStockQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// writeError はエラー種別に応じたステータスコードでエラーレスポンスを返します。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyQuery), errors.Is(err, usecase.ErrEmptySymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
