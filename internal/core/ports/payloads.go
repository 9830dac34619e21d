package ports

import (
	"time"

	"dispatch/internal/core/domain/model/channel"
	"dispatch/internal/core/domain/model/job"
)

// JobPayload is the wire representation of a job, shared by the
// initial_jobs and new_job_available events.
type JobPayload struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	CourierID   *string         `json:"courierId"`
	Payment     int             `json:"payment"`
	Pickup      LocationPayload `json:"pickup"`
	Delivery    LocationPayload `json:"delivery"`
	Distance    string          `json:"distance"`
	Estimate    int             `json:"estimate"`
	CreatedAt   time.Time       `json:"createdAt"`
	StartedAt   *time.Time      `json:"startedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// LocationPayload is the wire representation of a pickup or delivery point.
type LocationPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// NewJobPayload converts a job aggregate to its wire form.
func NewJobPayload(j *job.Job) JobPayload {
	return JobPayload{
		ID:        j.ID(),
		Status:    j.Status().String(),
		CourierID: j.Courier(),
		Payment:   j.Payment(),
		Pickup: LocationPayload{
			Name:    j.Pickup().Name(),
			Address: j.Pickup().Address(),
		},
		Delivery: LocationPayload{
			Name:    j.Delivery().Name(),
			Address: j.Delivery().Address(),
		},
		Distance:    j.Distance(),
		Estimate:    j.Estimate(),
		CreatedAt:   j.CreatedAt(),
		StartedAt:   j.StartedAt(),
		CompletedAt: j.CompletedAt(),
	}
}

// NewJobPayloads converts a slice of jobs, preserving order.
func NewJobPayloads(jobs []*job.Job) []JobPayload {
	payloads := make([]JobPayload, 0, len(jobs))
	for _, j := range jobs {
		payloads = append(payloads, NewJobPayload(j))
	}
	return payloads
}

// StatusPayload is the wire representation of the whatsapp_status event.
// QR is null except while the channel is waiting for a scan.
type StatusPayload struct {
	Status string  `json:"status"`
	QR     *string `json:"qr"`
}

// NewStatusPayload converts a channel state snapshot to its wire form.
func NewStatusPayload(state channel.State) StatusPayload {
	payload := StatusPayload{Status: string(state.Status)}
	if state.QR != "" {
		qr := state.QR
		payload.QR = &qr
	}
	return payload
}
