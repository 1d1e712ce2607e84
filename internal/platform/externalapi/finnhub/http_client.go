package finnhub

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はFinnhub呼び出し用のHTTPクライアントを作成します。
//
// リクエストキューにより同時接続は常に1本のため、接続プールは単一ホスト向けに小さく保ちます。
//   - Client.Timeout: リクエスト全体のタイムアウト（キューの停滞を防ぐ上限）
//   - ResponseHeaderTimeout: ヘッダー受信までの上限
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//
// http.DefaultClientにはタイムアウトがないため使用しないこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          4,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
