package callback

import "sync"

// ============================================================================
// 多线程变体
// ============================================================================

// MultiThreadedCallback 多线程回调注册表
//
// Subscribe、SubscribeWith、Invoke 可以从不同的 goroutine 并发调用。
// Invoke 采用「加锁快照 → 锁外投递 → 加锁清理」：投递过程不持锁，
// 不会阻塞并发的 Subscribe；单次广播遍历的是一致的句柄快照，广播
// 期间加入的订阅者最迟从下一次 Invoke 开始接收事件。
type MultiThreadedCallback[T any] struct {
	mu   sync.Mutex
	base registry[T]
}

// NewMultiThreaded 创建多线程回调注册表
func NewMultiThreaded[T any](opts ...Option) *MultiThreadedCallback[T] {
	return &MultiThreadedCallback[T]{base: newRegistry[T](opts...)}
}

// Subscribe 订阅事件流
func (c *MultiThreadedCallback[T]) Subscribe(opts ...SubscribeOption) *Subscription[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.subscribe(c.Unsubscribe, opts...)
}

// SubscribeWith 登记外部构造的订阅者句柄
func (c *MultiThreadedCallback[T]) SubscribeWith(subscriber *Subscriber[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base.subscribeWith(subscriber)
}

// Invoke 向所有存活订阅者广播一个事件
//
// 按登记顺序投递，每个订阅者收到事件的一份值拷贝，载荷应为值类型
// 或视为只读。投递后统一清理死亡句柄。广播是尽力而为的：个别订阅者
// 的失败不会上抛，也不会影响其余订阅者。
func (c *MultiThreadedCallback[T]) Invoke(event T) {
	c.mu.Lock()
	snapshot := c.base.snapshot()
	c.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	dead := c.base.deliver(snapshot, event)
	if len(dead) == 0 {
		return
	}

	c.mu.Lock()
	c.base.removeAll(dead)
	c.mu.Unlock()
}

// Unsubscribe 立即移除指定句柄，句柄不存在时为空操作
func (c *MultiThreadedCallback[T]) Unsubscribe(id SubscriberID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base.remove(id)
}

// Len 返回当前存活的订阅者数量
func (c *MultiThreadedCallback[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.size()
}

// Stats 返回统计快照
func (c *MultiThreadedCallback[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.snapshotStats()
}

// Close 关闭注册表
//
// 关闭所有句柄的发送端，各订阅排空缓冲区后观察到流结束。关闭后
// Invoke 为空操作，Subscribe 返回流已结束的订阅。可以多次调用。
func (c *MultiThreadedCallback[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.close()
}
