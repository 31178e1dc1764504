package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs  map[string]Job
	order []string
}

// NewJobManager creates an empty job manager. Jobs start in registration order
// and stop in reverse order.
func NewJobManager() *JobManager {
	return &JobManager{jobs: make(map[string]Job)}
}

// Register adds a named job. Registering a name twice replaces the job.
func (jm *JobManager) Register(name string, job Job) {
	if _, exists := jm.jobs[name]; !exists {
		jm.order = append(jm.order, name)
	}
	jm.jobs[name] = job
}

// StartAll starts all scheduled jobs.
// If one fails, the jobs already started are stopped and the error is returned.
func (jm *JobManager) StartAll() error {
	for i, name := range jm.order {
		if err := jm.jobs[name].Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				jm.jobs[jm.order[j]].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.order) - 1; i >= 0; i-- {
		jm.jobs[jm.order[i]].Stop()
	}
}
