package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countResult struct {
	err error
}

func (r *countResult) Err() error { return r.err }

type countJob struct {
	executed  *int32
	shouldErr bool
}

func (j *countJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.shouldErr {
		return &countResult{err: errors.New("job error")}
	}
	return &countResult{}
}

func TestNewPool_MinimumWorkers(t *testing.T) {
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
	if p := NewPool(8); p.workers != 8 {
		t.Errorf("expected 8 workers, got %d", p.workers)
	}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed int32
	count := 25
	for i := 0; i < count; i++ {
		pool.Submit(&countJob{executed: &executed})
	}

	results := pool.Wait()

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if got := atomic.LoadInt32(&executed); got != int32(count) {
		t.Errorf("expected %d executions, got %d", count, got)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&countJob{shouldErr: true})
	pool.Submit(&countJob{})

	results := pool.Wait()

	var failed int
	for _, r := range results {
		if r.Err() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed job, got %d", failed)
	}
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow("openai") {
		t.Error("expected first request within burst to be allowed")
	}
	if !l.Allow("openai") {
		t.Error("expected second request within burst to be allowed")
	}
	if l.Allow("openai") {
		t.Error("expected request beyond burst to be denied")
	}

	// A different key has its own budget.
	if !l.Allow("ollama") {
		t.Error("expected independent budget per key")
	}
}
