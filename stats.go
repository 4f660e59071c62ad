package callback

import "sync/atomic"

// ============================================================================
// 统计计数
// ============================================================================

// statCounters 注册表内部的原子计数器
type statCounters struct {
	delivered atomic.Uint64
	congested atomic.Uint64
	pruned    atomic.Uint64
}

// Stats 注册表统计快照
type Stats struct {
	// Subscribers 当前存活的订阅者数量
	Subscribers int

	// Delivered 成功投递的事件总数（按订阅者累计）
	Delivered uint64

	// Congested 因缓冲区满被丢弃的事件总数
	Congested uint64

	// Pruned 已清理的死亡订阅者总数
	Pruned uint64
}
