// Package jobs provides the scheduled background tasks of the dispatch
// backend.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. JobCreationJob - Periodically generates a new delivery job, persists it
// and broadcasts new_job_available to all online couriers.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(creationJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// JobCreationJob runs on an "@every" schedule derived from its configured
// interval. It stays idle until the first courier has connected, so a
// freshly booted backend does not fill the store with jobs nobody sees.
//
// # Error Handling
//
// Creation failures are logged and retried on the next tick; a failed tick
// never stops the schedule. Persist always happens before broadcast, so a
// job a courier hears about is always claimable in the store.
package jobs
