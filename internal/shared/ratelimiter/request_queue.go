// Package ratelimiter は外部API呼び出しを直列化するリクエストキューを提供します。
package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay はリクエスト間の固定待機時間です。
// Finnhubの制限（毎秒約5リクエスト）に合わせています。
const DefaultDelay = 200 * time.Millisecond

// ErrTaskPanicked はタスク実行中にpanicが発生したことを示します。
var ErrTaskPanicked = errors.New("throttled task panicked")

// Task はキューで実行される1件の処理です。
type Task func() (any, error)

// Submitter はタスクをキューに投入するインターフェースです。
type Submitter interface {
	Submit(task Task) *Future
}

// Result はタスク1件の実行結果（成功/失敗）を保持します。
type Result struct {
	Value any
	Err   error
}

// Future はSubmitが同期的に返す結果ハンドルです。
// ドレインループがタスク完了時に解決します。
type Future struct {
	done   chan struct{}
	result Result
}

// Done はタスク完了時にcloseされるチャネルを返します。
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait はタスクの結果を待ちます。
// ctxは待機側のみを打ち切り、キュー内のタスク自体は取り消されません。
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type job struct {
	task   Task
	future *Future
}

// RequestQueue は外部API呼び出しを1件ずつFIFO順に実行し、
// 各実行の間に固定の待機時間を挟みます。
type RequestQueue struct {
	mu       sync.Mutex
	queue    []job
	draining bool

	delay  time.Duration
	logger *zap.Logger
}

var _ Submitter = (*RequestQueue)(nil)

// NewRequestQueue は新しいRequestQueueを生成します。
// delayが0以下の場合はDefaultDelayを使用します。
func NewRequestQueue(delay time.Duration, logger *zap.Logger) *RequestQueue {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestQueue{delay: delay, logger: logger}
}

// Submit はタスクをキュー末尾に追加し、ドレインループが停止中であれば起動します。
func (q *RequestQueue) Submit(task Task) *Future {
	f := &Future{done: make(chan struct{})}

	q.mu.Lock()
	q.queue = append(q.queue, job{task: task, future: f})
	start := !q.draining
	q.draining = true
	q.mu.Unlock()

	if start {
		go q.drain()
	}
	return f
}

// Pending は実行待ちのタスク数を返します。
func (q *RequestQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// Draining はドレインループが稼働中かどうかを返します。
func (q *RequestQueue) Draining() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.draining
}

// drain はキューが空になるまで先頭から順にタスクを実行します。
func (q *RequestQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.queue) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		j := q.queue[0]
		q.queue[0] = job{}
		q.queue = q.queue[1:]
		q.mu.Unlock()

		res := run(j.task)
		if res.Err != nil {
			// 失敗はこのタスクのFutureにのみ伝え、ループは継続する
			q.logger.Error("throttled request failed", zap.Error(res.Err))
		}
		j.future.result = res
		close(j.future.done)

		time.Sleep(q.delay)
	}
}

func run(task Task) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("%w: %v", ErrTaskPanicked, r)}
		}
	}()
	v, err := task()
	return Result{Value: v, Err: err}
}

// Do はfnをキューに投入して完了を待ち、型付きの結果を返します。
func Do[T any](ctx context.Context, s Submitter, fn func() (T, error)) (T, error) {
	var zero T
	v, err := s.Submit(func() (any, error) {
		out, err := fn()
		return out, err
	}).Wait(ctx)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("ratelimiter: unexpected result type %T", v)
	}
	return out, nil
}
