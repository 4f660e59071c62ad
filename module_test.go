package callback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

type moduleEvent struct {
	Value int
}

// TestModule_Load 测试 Fx 模块加载
func TestModule_Load(t *testing.T) {
	var loaded Callback[moduleEvent]

	app := fx.New(
		Module[moduleEvent](),
		fx.NopLogger,
		fx.Invoke(func(cb Callback[moduleEvent]) {
			loaded = cb
		}),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	assert.NotNil(t, loaded, "Callback not injected by Fx")
	require.NoError(t, app.Stop(ctx))
}

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	result := ProvideCallback[moduleEvent]()

	assert.NotNil(t, result.Callback)
	assert.NotNil(t, result.Callbacks)
	assert.Same(t, result.Callbacks, result.Callback)
}

// TestModule_Lifecycle 测试停止时关闭注册表
func TestModule_Lifecycle(t *testing.T) {
	var callbacks *MultiThreadedCallback[moduleEvent]

	app := fx.New(
		Module[moduleEvent](WithCapacity(4)),
		fx.NopLogger,
		fx.Populate(&callbacks),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))

	sub := callbacks.Subscribe()
	defer sub.Close()

	require.NoError(t, app.Stop(ctx))

	// 停止后注册表已关闭，订阅观察到流结束
	_, err := sub.Next(ctx)
	assert.True(t, errors.Is(err, ErrSourceClosed), "Next() = %v, want ErrSourceClosed", err)
}
