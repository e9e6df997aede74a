package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ludo-technologies/unclass/domain"
	"github.com/ludo-technologies/unclass/internal/config"
)

// fileTask simulates one file going through the rewrite pipeline.
type fileTask struct {
	path    string
	enabled bool
	run     func(ctx context.Context) (interface{}, error)
}

func (t *fileTask) Name() string    { return t.path }
func (t *fileTask) IsEnabled() bool { return t.enabled }

func (t *fileTask) Execute(ctx context.Context) (interface{}, error) {
	if t.run != nil {
		return t.run(ctx)
	}
	return t.path, nil
}

func succeedingTask(path string) *fileTask {
	return &fileTask{path: path, enabled: true}
}

func failingTask(path string, err error) *fileTask {
	return &fileTask{
		path:    path,
		enabled: true,
		run: func(ctx context.Context) (interface{}, error) {
			return nil, err
		},
	}
}

func TestNewParallelExecutorDefaults(t *testing.T) {
	executor := NewParallelExecutor()

	if executor.maxConcurrency < 1 {
		t.Errorf("expected at least one worker, got %d", executor.maxConcurrency)
	}
	if executor.timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, executor.timeout)
	}
}

func TestNewParallelExecutorFromConfig(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{
		MaxGoroutines:  3,
		TimeoutSeconds: 30,
	})

	if executor.maxConcurrency != 3 {
		t.Errorf("expected maxConcurrency 3, got %d", executor.maxConcurrency)
	}
	if executor.timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", executor.timeout)
	}
}

func TestNewParallelExecutorFromConfigFallsBack(t *testing.T) {
	executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{})

	if executor.maxConcurrency != DefaultMaxConcurrency {
		t.Errorf("expected fallback concurrency %d, got %d", DefaultMaxConcurrency, executor.maxConcurrency)
	}
	if executor.timeout != DefaultTimeout {
		t.Errorf("expected fallback timeout %v, got %v", DefaultTimeout, executor.timeout)
	}
}

func TestExecuteEmptyTaskList(t *testing.T) {
	executor := NewParallelExecutor()

	if err := executor.Execute(context.Background(), nil); err != nil {
		t.Errorf("empty task list should succeed, got %v", err)
	}
}

func TestExecuteAllFilesRewritten(t *testing.T) {
	var done int32
	tasks := []domain.ExecutableTask{
		&fileTask{path: "src/point.js", enabled: true, run: func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&done, 1)
			return nil, nil
		}},
		&fileTask{path: "src/shape.js", enabled: true, run: func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&done, 1)
			return nil, nil
		}},
	}

	executor := NewParallelExecutor()
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := atomic.LoadInt32(&done); got != 2 {
		t.Errorf("expected 2 files processed, got %d", got)
	}
}

func TestExecuteFailureDoesNotAbortBatch(t *testing.T) {
	var done int32
	parseErr := errors.New("unexpected token")
	tasks := []domain.ExecutableTask{
		failingTask("src/broken.js", parseErr),
		&fileTask{path: "src/ok.js", enabled: true, run: func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&done, 1)
			return nil, nil
		}},
		failingTask("src/also-broken.js", errors.New("write denied")),
	}

	executor := NewParallelExecutor()
	err := executor.Execute(context.Background(), tasks)
	if err == nil {
		t.Fatal("expected an aggregated error")
	}

	var agg *AggregatedError
	if !errors.As(err, &agg) {
		t.Fatalf("expected *AggregatedError, got %T", err)
	}
	if len(agg.Errors) != 2 {
		t.Fatalf("expected 2 task errors, got %d", len(agg.Errors))
	}

	names := map[string]bool{}
	for _, te := range agg.Errors {
		names[te.TaskName] = true
	}
	if !names["src/broken.js"] || !names["src/also-broken.js"] {
		t.Errorf("failed file names not captured: %v", names)
	}
	if got := atomic.LoadInt32(&done); got != 1 {
		t.Errorf("healthy file should still be processed, done=%d", got)
	}
}

func TestExecuteTimeout(t *testing.T) {
	slow := &fileTask{
		path:    "src/huge-bundle.js",
		enabled: true,
		run: func(ctx context.Context) (interface{}, error) {
			select {
			case <-time.After(500 * time.Millisecond):
				return nil, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}

	executor := NewParallelExecutor()
	executor.SetTimeout(50 * time.Millisecond)

	err := executor.Execute(context.Background(), []domain.ExecutableTask{slow})
	if err == nil {
		t.Fatal("expected a timeout failure")
	}
	if !strings.Contains(err.Error(), "src/huge-bundle.js") {
		t.Errorf("timeout error should name the file: %v", err)
	}
}

func TestExecuteContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	blocked := &fileTask{
		path:    "src/point.js",
		enabled: true,
		run: func(ctx context.Context) (interface{}, error) {
			close(started)
			select {
			case <-time.After(10 * time.Second):
				return nil, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}

	executor := NewParallelExecutor()
	errChan := make(chan error, 1)
	go func() {
		errChan <- executor.Execute(ctx, []domain.ExecutableTask{blocked})
	}()

	<-started
	cancel()

	err := <-errChan
	if err == nil {
		t.Fatal("expected an error from the cancelled context")
	}
	if !strings.Contains(err.Error(), "src/point.js") {
		t.Errorf("cancellation error should name the file: %v", err)
	}
}

func TestExecuteSkipsDisabledTasks(t *testing.T) {
	var ran int32
	tasks := []domain.ExecutableTask{
		&fileTask{path: "src/point.js", enabled: true, run: func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&ran, 1)
			return nil, nil
		}},
		&fileTask{path: "vendor/lib.min.js", enabled: false, run: func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&ran, 1)
			return nil, nil
		}},
	}

	executor := NewParallelExecutor()
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := atomic.LoadInt32(&ran); got != 1 {
		t.Errorf("expected only the enabled file to run, ran=%d", got)
	}
}

func TestExecuteAllTasksDisabled(t *testing.T) {
	tasks := []domain.ExecutableTask{
		&fileTask{path: "vendor/a.min.js"},
		&fileTask{path: "vendor/b.min.js"},
	}

	executor := NewParallelExecutor()
	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Errorf("all-disabled batch should succeed, got %v", err)
	}
}

func TestExecuteRespectsConcurrencyLimit(t *testing.T) {
	const limit = 2
	var current, peak int32

	var tasks []domain.ExecutableTask
	for _, path := range []string{"a.js", "b.js", "c.js", "d.js", "e.js", "f.js"} {
		tasks = append(tasks, &fileTask{
			path:    path,
			enabled: true,
			run: func(ctx context.Context) (interface{}, error) {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&current, -1)
				return nil, nil
			},
		})
	}

	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(limit)

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := atomic.LoadInt32(&peak); got > limit {
		t.Errorf("observed %d concurrent tasks, limit is %d", got, limit)
	}
}

func TestSetMaxConcurrency(t *testing.T) {
	executor := NewParallelExecutor()

	executor.SetMaxConcurrency(8)
	executor.mu.RLock()
	got := executor.maxConcurrency
	executor.mu.RUnlock()
	if got != 8 {
		t.Errorf("expected maxConcurrency 8, got %d", got)
	}

	executor.SetMaxConcurrency(0)
	executor.SetMaxConcurrency(-3)
	executor.mu.RLock()
	got = executor.maxConcurrency
	executor.mu.RUnlock()
	if got != 8 {
		t.Errorf("non-positive values must be ignored, got %d", got)
	}
}

func TestSetTimeout(t *testing.T) {
	executor := NewParallelExecutor()

	executor.SetTimeout(time.Second)
	executor.mu.RLock()
	got := executor.timeout
	executor.mu.RUnlock()
	if got != time.Second {
		t.Errorf("expected timeout 1s, got %v", got)
	}

	executor.SetTimeout(0)
	executor.SetTimeout(-time.Minute)
	executor.mu.RLock()
	got = executor.timeout
	executor.mu.RUnlock()
	if got != time.Second {
		t.Errorf("non-positive values must be ignored, got %v", got)
	}
}

type recordingProgress struct {
	started    int32
	increments int32
	completed  int32
}

func (p *recordingProgress) StartTask(description string, total int) domain.TaskProgress {
	atomic.AddInt32(&p.started, 1)
	return &recordingTaskProgress{parent: p}
}

func (p *recordingProgress) IsInteractive() bool { return false }
func (p *recordingProgress) Close()              {}

type recordingTaskProgress struct {
	parent *recordingProgress
}

func (t *recordingTaskProgress) Increment(n int) {
	atomic.AddInt32(&t.parent.increments, int32(n))
}

func (t *recordingTaskProgress) Describe(description string) {}

func (t *recordingTaskProgress) Complete() {
	atomic.AddInt32(&t.parent.completed, 1)
}

func TestExecuteReportsProgress(t *testing.T) {
	progress := &recordingProgress{}
	executor := NewParallelExecutorWithProgress(&config.PerformanceConfig{MaxGoroutines: 2}, progress)

	tasks := []domain.ExecutableTask{
		succeedingTask("src/point.js"),
		succeedingTask("src/shape.js"),
		succeedingTask("src/vec.js"),
	}

	if err := executor.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := atomic.LoadInt32(&progress.started); got != 1 {
		t.Errorf("expected one progress task, got %d", got)
	}
	if got := atomic.LoadInt32(&progress.increments); got != 3 {
		t.Errorf("expected 3 increments, got %d", got)
	}
	if got := atomic.LoadInt32(&progress.completed); got != 1 {
		t.Errorf("expected Complete to be called once, got %d", got)
	}
}

func TestTaskErrorFormat(t *testing.T) {
	te := TaskError{TaskName: "src/point.js", Err: errors.New("unexpected token")}
	if got := te.Error(); got != "[src/point.js] unexpected token" {
		t.Errorf("unexpected message %q", got)
	}
	if te.Unwrap() == nil {
		t.Error("Unwrap should expose the underlying error")
	}
}

func TestAggregatedErrorFormat(t *testing.T) {
	tests := []struct {
		name   string
		errs   []TaskError
		expect []string
	}{
		{
			"empty",
			nil,
			[]string{"no errors"},
		},
		{
			"single",
			[]TaskError{{TaskName: "src/point.js", Err: errors.New("unexpected token")}},
			[]string{"[src/point.js] unexpected token"},
		},
		{
			"multiple",
			[]TaskError{
				{TaskName: "src/point.js", Err: errors.New("unexpected token")},
				{TaskName: "src/shape.js", Err: errors.New("write denied")},
			},
			[]string{"2 tasks failed:", "[src/point.js]", "[src/shape.js]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &AggregatedError{Errors: tt.errs}
			msg := agg.Error()
			for _, want := range tt.expect {
				if !strings.Contains(msg, want) {
					t.Errorf("message %q missing %q", msg, want)
				}
			}
		})
	}
}

func TestAggregatedErrorUnwrap(t *testing.T) {
	inner := errors.New("unexpected token")
	agg := &AggregatedError{Errors: []TaskError{{TaskName: "src/point.js", Err: inner}}}
	if !errors.Is(agg, inner) {
		t.Error("errors.Is should find the first underlying error")
	}

	empty := &AggregatedError{}
	if empty.Unwrap() != nil {
		t.Error("empty aggregate should unwrap to nil")
	}
}
