package callback

import (
	"time"

	"go.uber.org/multierr"

	"github.com/dep2p/go-callback/log"
)

var logger = log.Logger("callback")

// ============================================================================
// 注册表引擎
// ============================================================================

const (
	// slowInvokeWarn 单次广播超过该耗时则告警
	slowInvokeWarn = time.Second

	// congestionWarnEvery 每丢弃多少个事件告警一次，避免日志泛滥
	congestionWarnEvery = 100
)

// registry 两种变体共用的注册表引擎
//
// 本身不做任何同步，同步纪律由包装它的变体提供。订阅者按登记顺序
// 保存，该顺序即单次广播内的投递顺序。
type registry[T any] struct {
	settings    registrySettings
	subscribers []*Subscriber[T]
	stats       statCounters
	closed      bool
}

func newRegistry[T any](opts ...Option) registry[T] {
	settings := defaultRegistrySettings()
	for _, opt := range opts {
		opt(&settings)
	}
	return registry[T]{settings: settings}
}

// subscribe 创建端点对并登记发送端，返回接收端
//
// 注册表已关闭时返回一个流已结束的订阅，Subscribe 永不失败。
func (r *registry[T]) subscribe(detach func(SubscriberID), opts ...SubscribeOption) *Subscription[T] {
	settings := subscribeSettings{Capacity: r.settings.Capacity}
	for _, opt := range opts {
		opt(&settings)
	}

	sender, recv := NewPipe[T](settings.Capacity)
	sub := NewSubscriber(sender)
	out := &Subscription[T]{id: sub.ID(), recv: recv, detach: detach}

	if r.closed {
		_ = sender.Close()
		return out
	}

	r.subscribers = append(r.subscribers, sub)
	logger.Debug("订阅已建立",
		"id", sub.ID(),
		"capacity", settings.Capacity,
		"total", len(r.subscribers))
	return out
}

// subscribeWith 登记外部构造的订阅者句柄
func (r *registry[T]) subscribeWith(sub *Subscriber[T]) {
	if r.closed {
		logger.Debug("注册表已关闭，忽略外部订阅者", "id", sub.ID())
		return
	}
	r.subscribers = append(r.subscribers, sub)
	logger.Debug("外部订阅者已登记", "id", sub.ID(), "total", len(r.subscribers))
}

// snapshot 返回当前订阅者列表的副本
//
// 广播遍历副本而非原列表，保证单次投递过程观察到一致的句柄集合，
// 清理也不会使正在进行的遍历失效。
func (r *registry[T]) snapshot() []*Subscriber[T] {
	if r.closed || len(r.subscribers) == 0 {
		return nil
	}
	return append([]*Subscriber[T](nil), r.subscribers...)
}

// deliver 按登记顺序向快照中的订阅者逐个投递事件，返回死亡句柄
//
// 只操作快照和原子计数器，不触碰订阅者列表，可以在锁外执行。
// 单个订阅者的投递失败不会中断本轮广播，也不会上抛给调用方。
func (r *registry[T]) deliver(snapshot []*Subscriber[T], event T) []SubscriberID {
	start := r.settings.Clock.Now()

	var dead []SubscriberID
	for _, sub := range snapshot {
		switch sub.Deliver(event) {
		case Dead:
			dead = append(dead, sub.ID())
		case Congested:
			if n := r.stats.congested.Add(1); n%congestionWarnEvery == 1 {
				logger.Warn("慢消费者检测：缓冲区已满，事件被丢弃",
					"id", sub.ID(),
					"congested", n)
			}
		default:
			r.stats.delivered.Add(1)
		}
	}

	if elapsed := r.settings.Clock.Since(start); elapsed >= slowInvokeWarn {
		logger.Warn("单次广播耗时过长",
			"elapsed", elapsed,
			"subscribers", len(snapshot))
	}
	return dead
}

// removeAll 移除死亡句柄并关闭其发送端
func (r *registry[T]) removeAll(ids []SubscriberID) {
	if len(ids) == 0 {
		return
	}

	member := make(map[SubscriberID]struct{}, len(ids))
	for _, id := range ids {
		member[id] = struct{}{}
	}

	kept := r.subscribers[:0]
	removed := 0
	for _, sub := range r.subscribers {
		if _, ok := member[sub.ID()]; ok {
			_ = sub.close()
			removed++
			continue
		}
		kept = append(kept, sub)
	}
	r.subscribers = kept

	if removed > 0 {
		r.stats.pruned.Add(uint64(removed))
		logger.Debug("已清理死亡订阅者", "removed", removed, "total", len(r.subscribers))
	}
}

// remove 移除指定句柄，句柄不存在时为空操作
func (r *registry[T]) remove(id SubscriberID) {
	for i, sub := range r.subscribers {
		if sub.ID() == id {
			_ = sub.close()
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			return
		}
	}
}

// size 返回存活句柄数量
func (r *registry[T]) size() int {
	return len(r.subscribers)
}

// close 关闭所有句柄的发送端并清空注册表
//
// 各订阅在排空缓冲区后观察到流结束。重复关闭为空操作。
func (r *registry[T]) close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	for _, sub := range r.subscribers {
		err = multierr.Append(err, sub.close())
	}
	r.subscribers = nil
	return err
}

// snapshotStats 汇总当前统计数据
func (r *registry[T]) snapshotStats() Stats {
	return Stats{
		Subscribers: len(r.subscribers),
		Delivered:   r.stats.delivered.Load(),
		Congested:   r.stats.congested.Load(),
		Pruned:      r.stats.pruned.Load(),
	}
}
