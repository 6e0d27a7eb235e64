package background

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	lookupRefreshJobName = "lookup-cache-refresh"
	lookupRefreshTimeout = 30 * time.Second
)

// LookupRefresher reloads the cached lookup sets.
type LookupRefresher interface {
	Refresh(ctx context.Context) error
}

// JobScheduler manages background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	lookups   LookupRefresher
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a scheduler with the lookup refresh job. A zero
// interval registers no job.
func NewJobScheduler(lookups LookupRefresher, refreshInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		lookups:   lookups,
		jobs:      make(map[string]gocron.Job),
	}

	if refreshInterval > 0 {
		if err := js.registerLookupRefresh(refreshInterval); err != nil {
			_ = scheduler.Shutdown()
			return nil, err
		}
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler (jobs: %v)", js.JobNames())
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

func (js *JobScheduler) registerLookupRefresh(interval time.Duration) error {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.refreshLookups),
		gocron.WithName(lookupRefreshJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("create %s job: %w", lookupRefreshJobName, err)
	}

	js.mu.Lock()
	js.jobs[lookupRefreshJobName] = job
	js.mu.Unlock()
	return nil
}

// refreshLookups warms the lookup cache so listing requests rarely hit
// the lookup tables.
func (js *JobScheduler) refreshLookups() error {
	ctx, cancel := context.WithTimeout(context.Background(), lookupRefreshTimeout)
	defer cancel()

	start := time.Now()
	if err := js.lookups.Refresh(ctx); err != nil {
		log.Printf("JOB %s failed: %v", lookupRefreshJobName, err)
		return err
	}
	log.Printf("JOB %s completed in %s", lookupRefreshJobName, time.Since(start).Round(time.Millisecond))
	return nil
}
