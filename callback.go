package callback

// ============================================================================
// 能力接口
// ============================================================================

// Callback 事件源对外暴露的能力接口
//
// 任何拥有事件源的结构体只需暴露这两个操作，内部委托给自己持有的
// 注册表（MultiThreadedCallback 或 SingleThreadedCallback）即可。
// 事件源自身的业务逻辑在事件发生时调用注册表的 Invoke，扇出由注册表
// 完成，事件源不感知订阅者的数量和身份。
type Callback[T any] interface {
	// Subscribe 订阅事件流
	//
	// 返回的 Subscription 由调用方独占持有，关闭（或丢弃）它即取消
	// 订阅。Subscribe 永不失败。
	Subscribe(opts ...SubscribeOption) *Subscription[T]

	// SubscribeWith 登记一个调用方自行构造的订阅者句柄
	//
	// 句柄包装的发送端可以来自任意 NewPipe 调用，也可以是已登记到
	// 其他注册表的发送端的克隆，以此将多个事件源汇入同一个接收端。
	// 注册表无法识别重复登记，同一来源可以登记多次。
	SubscribeWith(subscriber *Subscriber[T])
}
