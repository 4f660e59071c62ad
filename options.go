package callback

import "github.com/benbjohnson/clock"

// ============================================================================
// 选项函数
// ============================================================================

// DefaultCapacity 订阅缓冲区的默认容量
const DefaultCapacity = 16

// Option 注册表构造选项
type Option func(*registrySettings)

// WithCapacity 设置订阅缓冲区的默认容量（有界，size 个槽位）
func WithCapacity(size int) Option {
	return func(s *registrySettings) {
		s.Capacity = size
	}
}

// WithUnbounded 将订阅缓冲区默认设置为无界
//
// 无界模式下 Invoke 仍然永不阻塞，但慢消费者会使内存无限增长，
// 应仅在订阅者消费速度有保障时使用。
func WithUnbounded() Option {
	return func(s *registrySettings) {
		s.Capacity = Unbounded
	}
}

// WithClock 替换注册表的时间源
func WithClock(clk clock.Clock) Option {
	return func(s *registrySettings) {
		s.Clock = clk
	}
}

// SubscribeOption 单个订阅的选项
type SubscribeOption func(*subscribeSettings)

// BufSize 覆盖本订阅的缓冲区容量
func BufSize(size int) SubscribeOption {
	return func(s *subscribeSettings) {
		s.Capacity = size
	}
}

// UnboundedBuf 将本订阅的缓冲区设置为无界
func UnboundedBuf() SubscribeOption {
	return func(s *subscribeSettings) {
		s.Capacity = Unbounded
	}
}
