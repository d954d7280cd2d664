package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureResolvesOnce(t *testing.T) {
	f := NewFuture[int]()
	assert.True(t, f.Resolve(1, nil))
	assert.False(t, f.Resolve(2, errors.New("late")))

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestFutureAwaitHonoursContext(t *testing.T) {
	f := NewFuture[string]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGoAndThen(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})

	got := make(chan int, 1)
	f.Then(func(v int, err error) {
		assert.NoError(t, err)
		got <- v
	})

	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("Then callback never ran")
	}
}

func TestResolved(t *testing.T) {
	boom := errors.New("boom")
	f := Resolved[[]string](nil, boom)

	select {
	case <-f.Done():
	default:
		t.Fatal("expected resolved future")
	}
	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDebouncerRunsTrailingCallOnly(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls, last int32

	for i := int32(1); i <= 5; i++ {
		i := i
		d.Trigger(func() {
			atomic.AddInt32(&calls, 1)
			atomic.StoreInt32(&last, i)
		})
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(5), atomic.LoadInt32(&last))
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSequence(t *testing.T) {
	var s Sequence
	a := s.Next()
	b := s.Next()

	assert.False(t, s.IsCurrent(a))
	assert.True(t, s.IsCurrent(b))
}
