package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/service"
	"github.com/edusync/statesync/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func testWorkersConfig(autoResolve bool) *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	cfg.Sync.AutoResolveEnabled = autoResolve
	cfg.Workers.CleanupInterval = 10 * time.Millisecond
	cfg.Workers.AutoResolveInterval = 10 * time.Millisecond
	return cfg
}

func TestNewWorkers_AutoResolveEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	maintenance := mocks.NewMockMaintenanceManager(ctrl)

	w := NewWorkers(maintenance, testWorkersConfig(true), logger.Nop())
	assert.Len(t, w.workers, 2)
}

func TestNewWorkers_AutoResolveDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	maintenance := mocks.NewMockMaintenanceManager(ctrl)

	w := NewWorkers(maintenance, testWorkersConfig(false), logger.Nop())
	assert.Len(t, w.workers, 1)
}

func TestWorkers_Run_TicksAndStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	maintenance := mocks.NewMockMaintenanceManager(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	var once sync.Once
	cleaned := make(chan struct{})
	maintenance.EXPECT().CleanupExpired(gomock.Any()).
		DoAndReturn(func(context.Context) (service.CleanupStats, error) {
			once.Do(func() { close(cleaned) })
			return service.CleanupStats{}, nil
		}).MinTimes(1)

	w := NewWorkers(maintenance, testWorkersConfig(false), logger.Nop())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-cleaned:
	case <-time.After(time.Second):
		t.Fatal("cleanup worker never ticked")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestWorkers_Run_SweepFailureKeepsTicking(t *testing.T) {
	ctrl := gomock.NewController(t)
	maintenance := mocks.NewMockMaintenanceManager(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	maintenance.EXPECT().CleanupExpired(gomock.Any()).
		Return(service.CleanupStats{}, nil).AnyTimes()

	ticks := make(chan struct{}, 4)
	first := maintenance.EXPECT().AutoResolveSweep(gomock.Any()).
		DoAndReturn(func(context.Context) (service.SweepStats, error) {
			ticks <- struct{}{}
			return service.SweepStats{}, assert.AnError
		})
	maintenance.EXPECT().AutoResolveSweep(gomock.Any()).
		DoAndReturn(func(context.Context) (service.SweepStats, error) {
			ticks <- struct{}{}
			return service.SweepStats{}, nil
		}).After(first).AnyTimes()

	w := NewWorkers(maintenance, testWorkersConfig(true), logger.Nop())
	go w.Run(ctx)

	// a failed sweep must not stop the worker; wait for a second tick
	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatalf("auto-resolve worker stopped after tick %d", i)
		}
	}
}
