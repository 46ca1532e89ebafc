// Package queue publishes domain events to RabbitMQ for downstream
// consumers (notifications, analytics). Publishing is best effort: failures
// are logged by callers and never interrupt the request flow.
package queue

import "time"

// ApplicationSubmittedQueue is the durable queue application events land on.
const ApplicationSubmittedQueue = "application.submitted"

// ApplicationSubmittedEvent is published when a candidate applies to a job.
type ApplicationSubmittedEvent struct {
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	CompanyID     string    `json:"company_id"`
	ApplicantID   string    `json:"applicant_id"`
	ApplicantName string    `json:"applicant_name"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
