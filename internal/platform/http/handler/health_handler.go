// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout は依存先1件あたりの確認時間の上限です。
const checkTimeout = 2 * time.Second

// Check は依存先（DB・Redisなど）の疎通確認関数です。
type Check func(ctx context.Context) error

// Health はサービスヘルスチェック用の /healthz エンドポイントを返します。
// 依存先がすべて応答すれば200、いずれかが失敗すれば503と失敗した依存先名を返します。
// キャッシュは常に無効化します。
func Health(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		failed := failedChecks(c.Request.Context(), checks)
		status := http.StatusOK
		if len(failed) > 0 {
			status = http.StatusServiceUnavailable
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		if len(failed) > 0 {
			c.JSON(status, gin.H{"status": "unavailable", "failed": failed})
			return
		}
		c.JSON(status, gin.H{"status": "ok"})
	}
}

// failedChecks は失敗した依存先名を名前順で返します。
func failedChecks(ctx context.Context, checks map[string]Check) []string {
	var failed []string
	for name, check := range checks {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := check(cctx)
		cancel()
		if err != nil {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}
