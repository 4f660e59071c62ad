package callback

import (
	"context"

	"go.uber.org/fx"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result[T any] struct {
	fx.Out

	Callback  Callback[T]
	Callbacks *MultiThreadedCallback[T]
}

// Module 返回事件类型 T 的 Fx 模块
//
// 提供一个多线程注册表，同时以 Callback[T] 接口和具体类型注入；
// 应用停止时自动关闭注册表。
func Module[T any](opts ...Option) fx.Option {
	return fx.Module("callback",
		fx.Provide(func() Result[T] { return ProvideCallback[T](opts...) }),
		fx.Invoke(registerLifecycle[T]),
	)
}

// ProvideCallback 提供注册表实例
func ProvideCallback[T any](opts ...Option) Result[T] {
	callbacks := NewMultiThreaded[T](opts...)
	return Result[T]{
		Callback:  callbacks,
		Callbacks: callbacks,
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput[T any] struct {
	fx.In

	LC        fx.Lifecycle
	Callbacks *MultiThreadedCallback[T]
}

// registerLifecycle 注册生命周期
func registerLifecycle[T any](input lifecycleInput[T]) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Callbacks.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "callback"
	// Description 模块描述
	Description = "订阅式事件分发模块，提供类型化的广播与回收机制"
)
