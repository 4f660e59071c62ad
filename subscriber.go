package callback

import "github.com/google/uuid"

// ============================================================================
// 订阅者句柄
// ============================================================================

// SubscriberID 订阅者的唯一标识
//
// 在注册表的整个生命周期内不会重复。
type SubscriberID string

// newSubscriberID 生成新的订阅者标识
func newSubscriberID() SubscriberID {
	return SubscriberID(uuid.NewString())
}

// DeliveryOutcome 单次投递的结果
type DeliveryOutcome int

const (
	// Delivered 事件已投递
	Delivered DeliveryOutcome = iota
	// Congested 订阅者缓冲区已满，事件被丢弃，订阅者仍然存活
	Congested
	// Dead 订阅者的接收端已不存在，句柄应被清理
	Dead
)

// Subscriber 注册表侧的订阅者句柄
//
// 持有端点对的发送半部和身份标识。由注册表独占所有权：登记到注册表
// 后，句柄的发送端在注销或清理时由注册表关闭；调用方如需继续使用
// 发送端，应登记其 Clone。身份以 ID 判定，与事件内容无关。
type Subscriber[T any] struct {
	id     SubscriberID
	sender *Sender[T]
}

// NewSubscriber 用已有的发送端构造订阅者句柄
//
// 用于 SubscribeWith 的高级组合场景。
func NewSubscriber[T any](sender *Sender[T]) *Subscriber[T] {
	return &Subscriber[T]{
		id:     newSubscriberID(),
		sender: sender,
	}
}

// ID 返回订阅者标识
func (s *Subscriber[T]) ID() SubscriberID {
	return s.id
}

// Deliver 尝试向订阅者投递一个事件
//
// 缓冲区满映射为 Congested 而非 Dead：临时变慢的订阅者不会被过早
// 驱逐，只有接收端确实消失时才返回 Dead。
func (s *Subscriber[T]) Deliver(event T) DeliveryOutcome {
	switch s.sender.TrySend(event) {
	case SendReceiverGone:
		return Dead
	case SendFull:
		return Congested
	default:
		return Delivered
	}
}

// close 关闭句柄的发送端
func (s *Subscriber[T]) close() error {
	return s.sender.Close()
}
