package finnhub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"stockwatch/internal/feature/stocks/usecase"
	"stockwatch/internal/platform/config"
	"stockwatch/internal/shared/ratelimiter"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}
	return NewClient(cfg, server.Client(), ratelimiter.NewRequestQueue(time.Millisecond, nil), nil)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "test-key", BaseURL: "https://api.test.com", Timeout: 10 * time.Second}
	c := NewClient(cfg, &http.Client{}, ratelimiter.NewRequestQueue(0, nil), nil)

	if c == nil {
		t.Fatal("expected non-nil client")
	}
	if c.cfg.APIKey != cfg.APIKey {
		t.Errorf("expected API key %q, got %q", cfg.APIKey, c.cfg.APIKey)
	}
	if c.logger == nil {
		t.Error("expected default logger")
	}
}

// TestNewClient_DefaultHTTPClient はHTTPクライアント未指定時にタイムアウト付きのクライアントが使われることを検証します。
func TestNewClient_DefaultHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{Timeout: 3 * time.Second}, nil, ratelimiter.NewRequestQueue(0, nil), nil)

	if c.client == nil {
		t.Fatal("expected default http client")
	}
	if c.client.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", c.client.Timeout)
	}
	if NewHTTPClient(0).Timeout != DefaultTimeout {
		t.Error("expected non-positive timeout to fall back to DefaultTimeout")
	}
}

func TestClient_Search_TruncatesToEight(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected path /search, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "apple" {
			t.Errorf("expected q=apple, got %s", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("token") != "test-key" {
			t.Errorf("expected token=test-key, got %s", r.URL.Query().Get("token"))
		}
		if r.URL.Query().Has("exchange") {
			t.Errorf("exchange should not be sent when empty")
		}

		items := make([]string, 0, 12)
		for i := 0; i < 12; i++ {
			items = append(items, fmt.Sprintf(`{"description":"D%d","displaySymbol":"S%d","symbol":"S%d","type":"Common Stock"}`, i, i, i))
		}
		writeJSON(w, fmt.Sprintf(`{"count":12,"result":[%s]}`, strings.Join(items, ",")))
	})

	rs, err := c.Search(context.Background(), "apple", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs) != MaxSearchResults {
		t.Fatalf("expected %d results, got %d", MaxSearchResults, len(rs))
	}
	for i, r := range rs {
		if want := fmt.Sprintf("S%d", i); r.Symbol != want {
			t.Errorf("result %d: expected symbol %s, got %s", i, want, r.Symbol)
		}
	}
}

func TestClient_Search_ExchangeFilter(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("exchange"); got != "US" {
			t.Errorf("expected exchange=US, got %q", got)
		}
		writeJSON(w, `{"count":1,"result":[{"description":"APPLE INC","displaySymbol":"AAPL","symbol":"AAPL","type":"Common Stock"}]}`)
	})

	rs, err := c.Search(context.Background(), "apple", "us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs) != 1 || rs[0].Description != "APPLE INC" {
		t.Errorf("unexpected results: %+v", rs)
	}
}

func TestClient_Quote(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("expected path /quote, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		writeJSON(w, `{"c":189.5,"d":1.25,"dp":0.66,"h":190.1,"l":187.2,"o":188.0,"pc":188.25}`)
	})

	q, err := c.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Current != 189.5 || q.Change != 1.25 || q.PercentChange != 0.66 {
		t.Errorf("unexpected quote: %+v", q)
	}
	if q.High != 190.1 || q.Low != 187.2 || q.Open != 188.0 || q.PreviousClose != 188.25 {
		t.Errorf("unexpected quote range: %+v", q)
	}
}

func TestClient_Profile(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/profile2" {
			t.Errorf("expected path /stock/profile2, got %s", r.URL.Path)
		}
		writeJSON(w, `{"country":"US","currency":"USD","exchange":"NASDAQ NMS - GLOBAL MARKET","finnhubIndustry":"Technology","name":"Apple Inc","ticker":"AAPL","weburl":"https://www.apple.com/"}`)
	})

	p, err := c.Profile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Apple Inc" || p.Industry != "Technology" || p.Currency != "USD" {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestClient_News_TruncatesAndFormatsDatetime(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news" {
			t.Errorf("expected path /news, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("category") != "general" {
			t.Errorf("expected category general, got %s", r.URL.Query().Get("category"))
		}
		items := make([]string, 0, 11)
		for i := 0; i < 11; i++ {
			items = append(items, fmt.Sprintf(`{"category":"top news","datetime":%d,"headline":"H%d","id":%d,"source":"CNBC"}`, 1700000000+i, i, i))
		}
		writeJSON(w, "["+strings.Join(items, ",")+"]")
	})

	ns, err := c.News(context.Background(), "general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ns) != MaxNewsArticles {
		t.Fatalf("expected %d articles, got %d", MaxNewsArticles, len(ns))
	}
	if ns[0].Datetime != "2023-11-14T22:13:20.000Z" {
		t.Errorf("expected datetime 2023-11-14T22:13:20.000Z, got %s", ns[0].Datetime)
	}
	for i, n := range ns {
		if n.ID != int64(i) {
			t.Errorf("article %d: expected id %d, got %d", i, i, n.ID)
		}
	}
}

func TestFormatEpoch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sec  int64
		want string
	}{
		{1700000000, "2023-11-14T22:13:20.000Z"},
		{0, "1970-01-01T00:00:00.000Z"},
		{1735689600, "2025-01-01T00:00:00.000Z"},
	}
	for _, tt := range tests {
		if got := FormatEpoch(tt.sec); got != tt.want {
			t.Errorf("FormatEpoch(%d) = %s, want %s", tt.sec, got, tt.want)
		}
	}
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		contains   string
	}{
		{"unauthorized with message", http.StatusUnauthorized, `{"error":"Invalid API key"}`, "Invalid API key"},
		{"forbidden", http.StatusForbidden, ``, "finnhub http 403"},
		{"too many requests", http.StatusTooManyRequests, `{"error":"API limit reached"}`, "API limit reached"},
		{"internal server error", http.StatusInternalServerError, `oops`, "finnhub http 500"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Quote(context.Background(), "AAPL")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, usecase.ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{invalid json`)
	})

	_, err := c.Search(context.Background(), "apple", "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, usecase.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		writeJSON(w, `{}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Quote(ctx, "AAPL")
	if err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}

// TestClient_RequestsAreSerialized は並行呼び出しでも外部APIへの同時リクエストが1件に制限されることを検証します。
func TestClient_RequestsAreSerialized(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		inFlight int
		maxSeen  int
		calls    int
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		calls++
		if inFlight > maxSeen {
			maxSeen = inFlight
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		writeJSON(w, `{"c":1}`)
	})

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Quote(context.Background(), "AAPL"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 6 {
		t.Errorf("expected 6 calls, got %d", calls)
	}
	if maxSeen != 1 {
		t.Errorf("expected at most 1 request in flight, got %d", maxSeen)
	}
}

// TestNewConfig は未設定の項目にデフォルト値が入ることを検証します。
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(config.FinnhubConfig{APIKey: "env-key"})

	if cfg.APIKey != "env-key" {
		t.Errorf("expected API key env-key, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}

	custom := NewConfig(config.FinnhubConfig{BaseURL: "http://finnhub.test", Timeout: time.Second})
	if custom.BaseURL != "http://finnhub.test" || custom.Timeout != time.Second {
		t.Errorf("expected custom values to be kept, got %+v", custom)
	}
}
