package callback

import (
	"context"
	"sync"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 暴露给调用方的接收半部
//
// 由发起 Subscribe 的调用方独占持有。它的生命周期决定配对句柄的
// 存活：关闭 Subscription 后，注册表最迟在下一次 Invoke 时回收句柄。
// 订阅建立之前广播的事件不会被观察到（无回放）。
type Subscription[T any] struct {
	id        SubscriberID
	recv      *Receiver[T]
	detach    func(SubscriberID)
	closeOnce sync.Once
}

// ID 返回配对句柄的标识
func (s *Subscription[T]) ID() SubscriberID {
	return s.id
}

// Next 阻塞等待下一个事件
//
// 事件到达前挂起调用方；事件源关闭后，先返回缓冲区中的残留事件，
// 再返回 ErrSourceClosed 表示流结束。ctx 取消时返回 ctx.Err()，
// 订阅本身保持有效。
func (s *Subscription[T]) Next(ctx context.Context) (T, error) {
	return s.recv.Receive(ctx)
}

// TryNext 非阻塞取出下一个事件
func (s *Subscription[T]) TryNext() (T, bool) {
	return s.recv.TryReceive()
}

// Close 取消订阅
//
// Close 是并发安全的，可以多次调用。关闭后：
//  1. 配对的发送端立即观察到接收端消失
//  2. 从注册表中移除句柄
//
// 这是唯一的取消机制，无需显式调用 Unsubscribe。
func (s *Subscription[T]) Close() error {
	s.closeOnce.Do(func() {
		_ = s.recv.Close()
		if s.detach != nil {
			s.detach(s.id)
		}
	})
	return nil
}
