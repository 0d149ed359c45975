package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type countJob struct {
	runNow bool
	count  atomic.Int32
}

func (job *countJob) Do(context.Context) { job.count.Add(1) }
func (job *countJob) RunNow() bool      { return job.runNow }
func (job *countJob) Next() time.Time   { return time.Now().Add(10 * time.Millisecond) }

func TestCronJobManager(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext())
	defer cancel()

	now := &countJob{runNow: true}
	later := &countJob{}

	manager := NewCronJobManager()
	manager.Register(now)
	manager.Register(later)

	done := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return now.count.Load() >= 2 && later.count.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}
}
