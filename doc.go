// Package callback 实现订阅式事件分发
//
// 任何拥有事件源的结构体都可以通过内嵌一个回调注册表，让多个互不感知的
// 订阅者接收类型化的事件流。支持：
//   - 多订阅者（按登记顺序广播）
//   - 有界/无界缓冲区配置
//   - 惰性存活检测（订阅被丢弃后在下次投递时回收）
//   - 多线程与单线程两种变体
//   - 拥塞计数（慢消费者诊断）
//
// # 快速开始
//
//	// 创建多线程注册表
//	callbacks := callback.NewMultiThreaded[MyEvent]()
//	defer callbacks.Close()
//
//	// 订阅事件
//	sub := callbacks.Subscribe()
//	defer sub.Close()
//
//	go func() {
//	    for {
//	        evt, err := sub.Next(context.Background())
//	        if err != nil {
//	            return
//	        }
//	        // 处理事件
//	        _ = evt
//	    }
//	}()
//
//	// 广播事件
//	callbacks.Invoke(MyEvent{...})
//
// # 能力接口
//
// 事件源结构体对外只暴露 Callback 接口的两个操作（Subscribe 与
// SubscribeWith），内部通过委托实现：
//
//	type Player struct {
//	    callbacks *callback.MultiThreadedCallback[PlayerEvent]
//	}
//
//	func (p *Player) Subscribe(opts ...callback.SubscribeOption) *callback.Subscription[PlayerEvent] {
//	    return p.callbacks.Subscribe(opts...)
//	}
//
//	func (p *Player) SubscribeWith(s *callback.Subscriber[PlayerEvent]) {
//	    p.callbacks.SubscribeWith(s)
//	}
//
// # Fx 模块
//
//	import "go.uber.org/fx"
//
//	app := fx.New(
//	    callback.Module[MyEvent](),
//	    fx.Invoke(func(cb callback.Callback[MyEvent]) {
//	        sub := cb.Subscribe()
//	        // ...
//	    }),
//	)
//
// # 并发安全
//
// MultiThreadedCallback 使用 sync.Mutex 保护订阅者集合，Invoke 采用
// 「加锁快照 → 锁外投递 → 加锁清理」三步，投递过程不会阻塞并发的
// Subscribe 调用。SingleThreadedCallback 无任何同步，只能在单一逻辑
// 线程中使用。
//
// # 容量与丢弃策略
//
// 每个订阅拥有独立的缓冲区（默认 16 个槽位）。缓冲区满时丢弃最新事件
// （保留已排队的事件），投递方永不阻塞，也不会因此将订阅者判定为死亡。
// 广播是尽力而为的：慢消费者丢失事件，但不影响发布者和其他订阅者。
package callback
