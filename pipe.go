package callback

import (
	"context"
	"sync"
	"sync/atomic"
)

// ============================================================================
// 通道端点对
// ============================================================================

// Unbounded 表示无界容量
const Unbounded = 0

// SendResult 一次投递尝试的结果
type SendResult int

const (
	// SendDelivered 事件已入队
	SendDelivered SendResult = iota
	// SendFull 缓冲区已满，事件被丢弃（丢弃最新事件，保留已排队的事件）
	SendFull
	// SendReceiverGone 接收端已不存在
	SendReceiverGone
)

// pipe 端点对的共享状态
//
// 数据通道永远不会被 close：发送端可能被克隆共享，关闭统一通过
// sendDone/recvDone 信号通道传递，避免向已关闭通道发送导致 panic。
type pipe[T any] struct {
	capacity int // <= 0 表示无界

	mu    sync.Mutex
	queue []T

	notify   chan struct{} // 容量 1 的入队信号
	senders  atomic.Int32  // 发送端引用计数
	sendDone chan struct{} // 所有发送端关闭后关闭
	recvDone chan struct{} // 接收端关闭后关闭
	recvGone atomic.Bool
}

// NewPipe 创建一对通道端点
//
// capacity > 0 时为固定槽位的有界队列；capacity 为 Unbounded 时队列
// 按需增长。发送端可通过 Clone 共享，接收端只能由一个订阅者独占。
func NewPipe[T any](capacity int) (*Sender[T], *Receiver[T]) {
	p := &pipe[T]{
		capacity: capacity,
		notify:   make(chan struct{}, 1),
		sendDone: make(chan struct{}),
		recvDone: make(chan struct{}),
	}
	p.senders.Store(1)
	return &Sender[T]{pipe: p}, &Receiver[T]{pipe: p}
}

// ============================================================================
// Sender 发送端
// ============================================================================

// Sender 端点对的发送半部
type Sender[T any] struct {
	pipe   *pipe[T]
	closed atomic.Bool
}

// TrySend 尝试投递一个事件，永不阻塞
//
// 缓冲区满时返回 SendFull 并丢弃本次事件；接收端已关闭时返回
// SendReceiverGone。
func (s *Sender[T]) TrySend(event T) SendResult {
	if s.closed.Load() || s.pipe.recvGone.Load() {
		return SendReceiverGone
	}

	p := s.pipe
	p.mu.Lock()
	if p.capacity > 0 && len(p.queue) >= p.capacity {
		p.mu.Unlock()
		return SendFull
	}
	p.queue = append(p.queue, event)
	p.mu.Unlock()

	// 唤醒接收端（信号槽已占用时说明接收端必然会重新检查队列）
	select {
	case p.notify <- struct{}{}:
	default:
	}

	return SendDelivered
}

// Clone 克隆发送端
//
// 克隆后的发送端与原发送端写入同一队列。接收端只有在所有克隆都关闭后
// 才会观察到流结束。Clone 必须在 Close 之前调用。
func (s *Sender[T]) Clone() *Sender[T] {
	s.pipe.senders.Add(1)
	return &Sender[T]{pipe: s.pipe}
}

// Close 关闭发送端
//
// 最后一个发送端关闭时，接收端在排空残留事件后观察到流结束。
// 重复关闭返回 ErrSenderClosed。
func (s *Sender[T]) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrSenderClosed
	}
	if s.pipe.senders.Add(-1) == 0 {
		close(s.pipe.sendDone)
	}
	return nil
}

// ============================================================================
// Receiver 接收端
// ============================================================================

// Receiver 端点对的接收半部
type Receiver[T any] struct {
	pipe      *pipe[T]
	closeOnce sync.Once
}

// Receive 阻塞等待下一个事件
//
// 事件到达前挂起调用方。所有发送端关闭后，先排空残留事件，再返回
// ErrSourceClosed；接收端自身已关闭时返回 ErrSubscriptionClosed；
// ctx 取消时返回 ctx.Err()。
func (r *Receiver[T]) Receive(ctx context.Context) (T, error) {
	var zero T
	p := r.pipe

	for {
		if p.recvGone.Load() {
			return zero, ErrSubscriptionClosed
		}
		if v, ok := r.TryReceive(); ok {
			return v, nil
		}

		select {
		case <-p.notify:
			// 重新检查队列
		case <-p.sendDone:
			// 发送端全部关闭：排空残留后结束流
			if v, ok := r.TryReceive(); ok {
				return v, nil
			}
			return zero, ErrSourceClosed
		case <-p.recvDone:
			return zero, ErrSubscriptionClosed
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// TryReceive 非阻塞取出队首事件
func (r *Receiver[T]) TryReceive() (T, bool) {
	var zero T
	p := r.pipe

	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return zero, false
	}
	v := p.queue[0]
	p.queue = p.queue[1:]
	p.mu.Unlock()
	return v, true
}

// Close 关闭接收端
//
// Close 是并发安全的，可以多次调用。关闭后所有发送端在下一次
// TrySend 时观察到 SendReceiverGone。
func (r *Receiver[T]) Close() error {
	r.closeOnce.Do(func() {
		p := r.pipe
		p.recvGone.Store(true)
		close(p.recvDone)

		// 丢弃残留事件
		p.mu.Lock()
		p.queue = nil
		p.mu.Unlock()
	})
	return nil
}
