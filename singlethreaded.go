package callback

// ============================================================================
// 单线程变体
// ============================================================================

// SingleThreadedCallback 单线程回调注册表
//
// 与 MultiThreadedCallback 实现相同的契约，但不做任何同步，所有
// 操作必须运行在同一逻辑线程中。在事件源确定不跨线程共享时，省去
// 加锁开销。
type SingleThreadedCallback[T any] struct {
	base registry[T]
}

// NewSingleThreaded 创建单线程回调注册表
func NewSingleThreaded[T any](opts ...Option) *SingleThreadedCallback[T] {
	return &SingleThreadedCallback[T]{base: newRegistry[T](opts...)}
}

// Subscribe 订阅事件流
func (c *SingleThreadedCallback[T]) Subscribe(opts ...SubscribeOption) *Subscription[T] {
	return c.base.subscribe(c.Unsubscribe, opts...)
}

// SubscribeWith 登记外部构造的订阅者句柄
func (c *SingleThreadedCallback[T]) SubscribeWith(subscriber *Subscriber[T]) {
	c.base.subscribeWith(subscriber)
}

// Invoke 向所有存活订阅者广播一个事件
//
// 与多线程变体相同的两阶段纪律：先对快照完成整轮投递，再统一清理
// 死亡句柄，遍历过程不会被清理动作打断。
func (c *SingleThreadedCallback[T]) Invoke(event T) {
	snapshot := c.base.snapshot()
	if len(snapshot) == 0 {
		return
	}
	c.base.removeAll(c.base.deliver(snapshot, event))
}

// Unsubscribe 立即移除指定句柄，句柄不存在时为空操作
func (c *SingleThreadedCallback[T]) Unsubscribe(id SubscriberID) {
	c.base.remove(id)
}

// Len 返回当前存活的订阅者数量
func (c *SingleThreadedCallback[T]) Len() int {
	return c.base.size()
}

// Stats 返回统计快照
func (c *SingleThreadedCallback[T]) Stats() Stats {
	return c.base.snapshotStats()
}

// Close 关闭注册表，语义与多线程变体一致
func (c *SingleThreadedCallback[T]) Close() error {
	return c.base.close()
}
