package callback

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ============================================================================
// 基础收发测试
// ============================================================================

// TestPipe_TrySendAndReceive 测试基本收发
func TestPipe_TrySendAndReceive(t *testing.T) {
	sender, recv := NewPipe[int](4)

	if got := sender.TrySend(42); got != SendDelivered {
		t.Fatalf("TrySend() = %v, want SendDelivered", got)
	}

	v, err := recv.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive() failed: %v", err)
	}
	if v != 42 {
		t.Errorf("Receive() = %d, want 42", v)
	}
}

// TestPipe_Ordering 测试先进先出顺序
func TestPipe_Ordering(t *testing.T) {
	sender, recv := NewPipe[int](8)

	for i := 0; i < 5; i++ {
		sender.TrySend(i)
	}

	for i := 0; i < 5; i++ {
		v, ok := recv.TryReceive()
		if !ok {
			t.Fatalf("TryReceive() empty at %d", i)
		}
		if v != i {
			t.Errorf("TryReceive() = %d, want %d", v, i)
		}
	}
}

// TestPipe_TryReceiveEmpty 测试空队列非阻塞读取
func TestPipe_TryReceiveEmpty(t *testing.T) {
	_, recv := NewPipe[string](4)

	if _, ok := recv.TryReceive(); ok {
		t.Error("TryReceive() on empty pipe should return false")
	}
}

// ============================================================================
// 容量测试
// ============================================================================

// TestPipe_BoundedFull 测试有界队列满时丢弃最新事件
func TestPipe_BoundedFull(t *testing.T) {
	sender, recv := NewPipe[string](1)

	if got := sender.TrySend("first"); got != SendDelivered {
		t.Fatalf("first TrySend() = %v, want SendDelivered", got)
	}

	// 第二个事件被丢弃，已排队的事件保留
	if got := sender.TrySend("second"); got != SendFull {
		t.Fatalf("second TrySend() = %v, want SendFull", got)
	}

	v, ok := recv.TryReceive()
	if !ok || v != "first" {
		t.Errorf("TryReceive() = %q, %v, want \"first\", true", v, ok)
	}

	// 读取后槽位释放
	if got := sender.TrySend("third"); got != SendDelivered {
		t.Errorf("third TrySend() = %v, want SendDelivered", got)
	}
}

// TestPipe_Unbounded 测试无界队列
func TestPipe_Unbounded(t *testing.T) {
	sender, recv := NewPipe[int](Unbounded)

	total := 1000
	for i := 0; i < total; i++ {
		if got := sender.TrySend(i); got != SendDelivered {
			t.Fatalf("TrySend(%d) = %v, want SendDelivered", i, got)
		}
	}

	for i := 0; i < total; i++ {
		v, ok := recv.TryReceive()
		if !ok || v != i {
			t.Fatalf("TryReceive() = %d, %v, want %d, true", v, ok, i)
		}
	}
}

// ============================================================================
// 关闭语义测试
// ============================================================================

// TestPipe_ReceiverGone 测试接收端关闭后投递
func TestPipe_ReceiverGone(t *testing.T) {
	sender, recv := NewPipe[int](4)

	recv.Close()

	if got := sender.TrySend(1); got != SendReceiverGone {
		t.Errorf("TrySend() after receiver close = %v, want SendReceiverGone", got)
	}
}

// TestPipe_SenderCloseEndsStream 测试发送端关闭后流结束
func TestPipe_SenderCloseEndsStream(t *testing.T) {
	sender, recv := NewPipe[int](4)

	sender.TrySend(1)
	sender.TrySend(2)
	sender.Close()

	ctx := context.Background()

	// 残留事件先被排空
	for want := 1; want <= 2; want++ {
		v, err := recv.Receive(ctx)
		if err != nil {
			t.Fatalf("Receive() failed: %v", err)
		}
		if v != want {
			t.Errorf("Receive() = %d, want %d", v, want)
		}
	}

	// 排空后流结束
	if _, err := recv.Receive(ctx); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("Receive() after drain = %v, want ErrSourceClosed", err)
	}
}

// TestPipe_SenderCloseTwice 测试重复关闭发送端
func TestPipe_SenderCloseTwice(t *testing.T) {
	sender, _ := NewPipe[int](4)

	if err := sender.Close(); err != nil {
		t.Errorf("first Close() failed: %v", err)
	}
	if err := sender.Close(); !errors.Is(err, ErrSenderClosed) {
		t.Errorf("second Close() = %v, want ErrSenderClosed", err)
	}
}

// TestPipe_ReceiveAfterOwnClose 测试接收端关闭后读取
func TestPipe_ReceiveAfterOwnClose(t *testing.T) {
	sender, recv := NewPipe[int](4)

	sender.TrySend(1)
	recv.Close()

	if _, err := recv.Receive(context.Background()); !errors.Is(err, ErrSubscriptionClosed) {
		t.Errorf("Receive() after Close() = %v, want ErrSubscriptionClosed", err)
	}
}

// ============================================================================
// 克隆测试
// ============================================================================

// TestPipe_CloneSender 测试发送端克隆的引用计数
func TestPipe_CloneSender(t *testing.T) {
	sender, recv := NewPipe[int](4)
	cloned := sender.Clone()

	sender.TrySend(1)
	cloned.TrySend(2)
	sender.Close()

	// 仍有克隆存活，流未结束
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	for want := 1; want <= 2; want++ {
		v, err := recv.Receive(ctx)
		if err != nil {
			t.Fatalf("Receive() failed: %v", err)
		}
		if v != want {
			t.Errorf("Receive() = %d, want %d", v, want)
		}
	}

	if _, err := recv.Receive(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Receive() with live clone = %v, want DeadlineExceeded", err)
	}

	// 最后一个克隆关闭后流结束
	cloned.Close()
	if _, err := recv.Receive(context.Background()); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("Receive() after all senders closed = %v, want ErrSourceClosed", err)
	}
}

// ============================================================================
// 阻塞与取消测试
// ============================================================================

// TestPipe_ReceiveBlocksUntilSend 测试挂起等待
func TestPipe_ReceiveBlocksUntilSend(t *testing.T) {
	sender, recv := NewPipe[int](4)

	go func() {
		time.Sleep(20 * time.Millisecond)
		sender.TrySend(7)
	}()

	v, err := recv.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive() failed: %v", err)
	}
	if v != 7 {
		t.Errorf("Receive() = %d, want 7", v)
	}
}

// TestPipe_ReceiveContextCancel 测试 ctx 取消
func TestPipe_ReceiveContextCancel(t *testing.T) {
	_, recv := NewPipe[int](4)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	if _, err := recv.Receive(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Receive() = %v, want context.Canceled", err)
	}
}
