package cron

import (
	"context"
	"sync"
	"time"

	"github.com/questx-lab/rewards/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Next() time.Time
}

type CronJobManager struct {
	mutex   sync.Mutex
	wait    sync.WaitGroup
	jobs    map[CronJob]*time.Timer
	stopped bool
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{jobs: make(map[CronJob]*time.Timer)}
}

func (m *CronJobManager) Register(job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.jobs[job] = nil
}

// Start schedules all registered jobs and blocks until the context is done or
// Cancel is called.
func (m *CronJobManager) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Cron job manager started")

	m.mutex.Lock()
	jobs := make([]CronJob, 0, len(m.jobs))
	for job := range m.jobs {
		jobs = append(jobs, job)
	}
	m.wait.Add(len(jobs))
	m.mutex.Unlock()

	for _, job := range jobs {
		if job.RunNow() {
			go m.run(ctx, job)
		} else {
			m.schedule(ctx, job)
		}
	}

	go func() {
		<-ctx.Done()
		m.Cancel(ctx)
	}()

	m.wait.Wait()
	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) Cancel(ctx context.Context) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.stopped {
		return
	}
	m.stopped = true

	for job, timer := range m.jobs {
		if timer != nil {
			timer.Stop()
		} else {
			xcontext.Logger(ctx).Warnf("Stop a job that hasn't been scheduled: %T", job)
		}

		m.wait.Done()
	}
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	xcontext.Logger(ctx).Debugf("%T is running...", job)
	job.Do(ctx)
	xcontext.Logger(ctx).Debugf("%T ok", job)

	m.schedule(ctx, job)
}

func (m *CronJobManager) schedule(ctx context.Context, job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// A cancelled manager never schedules again.
	if m.stopped {
		return
	}

	m.jobs[job] = time.AfterFunc(time.Until(job.Next()), func() { m.run(ctx, job) })
}
