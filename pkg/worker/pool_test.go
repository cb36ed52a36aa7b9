package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid configuration",
			config: Config{Workers: 4},
		},
		{
			name:   "valid with rate limit",
			config: Config{Workers: 2, RateLimit: 100},
		},
		{
			name:    "zero workers",
			config:  Config{Workers: 0},
			wantErr: "number of workers must be positive",
		},
		{
			name:    "negative workers",
			config:  Config{Workers: -1},
			wantErr: "number of workers must be positive",
		},
		{
			name:    "negative rate limit",
			config:  Config{Workers: 1, RateLimit: -5},
			wantErr: "rate limit must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPool(tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestPoolProcessesAllTasks(t *testing.T) {
	p, err := NewPool(Config{Workers: 4})
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	const n = 50
	for i := 0; i < n; i++ {
		i := i
		require.NoError(t, p.Submit(Task{
			ID: i,
			Execute: func(ctx context.Context) (Result, error) {
				return Result{ID: i, Data: i * 2}, nil
			},
		}))
	}

	results, err := p.Wait()
	require.NoError(t, err)
	require.Len(t, results, n)

	// Results come back in submission order.
	for i, r := range results {
		assert.Equal(t, i, r.ID)
		assert.Equal(t, i*2, r.Data)
	}
}

func TestPoolSubmitBeforeStart(t *testing.T) {
	p, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)

	err = p.Submit(Task{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool not started")
}

func TestPoolDoubleStart(t *testing.T) {
	p, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	assert.Error(t, p.Start(context.Background()))
}

func TestPoolTaskError(t *testing.T) {
	p, err := NewPool(Config{Workers: 2})
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.NoError(t, p.Submit(Task{
		ID: 7,
		Execute: func(ctx context.Context) (Result, error) {
			return Result{}, fmt.Errorf("stat failed")
		},
	}))

	_, err = p.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task 7 failed")
	assert.Contains(t, err.Error(), "stat failed")
}

func TestPoolContextCancellation(t *testing.T) {
	p, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Start(ctx))

	var ran atomic.Int32
	_ = p.Submit(Task{
		ID: 1,
		Execute: func(ctx context.Context) (Result, error) {
			ran.Add(1)
			<-ctx.Done()
			return Result{}, ctx.Err()
		},
	})

	cancel()

	done := make(chan struct{})
	go func() {
		_, _ = p.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

func TestPoolRateLimit(t *testing.T) {
	p, err := NewPool(Config{Workers: 4, RateLimit: 20})
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	start := time.Now()
	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, p.Submit(Task{
			ID: i,
			Execute: func(ctx context.Context) (Result, error) {
				return Result{}, nil
			},
		}))
	}

	results, err := p.Wait()
	require.NoError(t, err)
	assert.Len(t, results, n)

	// 5 tasks at 20 ops/sec with burst 1 should take at least ~200ms.
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}
