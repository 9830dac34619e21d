package jobs

import "fmt"

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobCreationJob *JobCreationJob
}

// NewJobManager creates a new job manager wrapping the given jobs.
func NewJobManager(jobCreationJob *JobCreationJob) *JobManager {
	return &JobManager{
		jobCreationJob: jobCreationJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.jobCreationJob.Start(); err != nil {
		return fmt.Errorf("failed to start job creation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.jobCreationJob.Stop()
}
