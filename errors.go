package callback

import "errors"

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrSubscriptionClosed 订阅已被接收方关闭
	ErrSubscriptionClosed = errors.New("subscription closed")

	// ErrSourceClosed 事件源已关闭，流结束
	ErrSourceClosed = errors.New("event source closed")

	// ErrSenderClosed 发送端已关闭
	ErrSenderClosed = errors.New("sender already closed")
)
