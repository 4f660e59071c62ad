package callback

import "github.com/benbjohnson/clock"

// registrySettings 注册表级设置
type registrySettings struct {
	// Capacity 订阅缓冲区的默认容量，Unbounded 表示无界
	Capacity int

	// Clock 时间源，测试中可替换为 mock
	Clock clock.Clock
}

func defaultRegistrySettings() registrySettings {
	return registrySettings{
		Capacity: DefaultCapacity,
		Clock:    clock.New(),
	}
}

// subscribeSettings 单个订阅的设置
type subscribeSettings struct {
	// Capacity 本订阅缓冲区容量，覆盖注册表默认值
	Capacity int
}
