package ports

// Event names on the courier wire contract. These strings are exchanged
// verbatim with courier clients and must not change.
const (
	// Inbound events (courier -> backend).
	EventRequestInitialData = "request_initial_data"
	EventJobAccepted        = "job_accepted"
	EventJobRejected        = "job_rejected"
	EventJobCompleted       = "job_completed"
	EventGetWhatsAppStatus  = "get_whatsapp_status"
	EventSendMessage        = "send_message"

	// Outbound events (backend -> courier).
	EventWhatsAppStatus  = "whatsapp_status"
	EventInitialJobs     = "initial_jobs"
	EventNewJobAvailable = "new_job_available"
)

// Notifier fans events out to connected couriers.
//
// Delivery is fire-and-forget: offline couriers simply miss the event and
// nothing is queued or retried. For a single courier's session events are
// delivered in the order they were published; no ordering holds across
// couriers.
type Notifier interface {
	// Broadcast delivers the event to every currently online courier.
	Broadcast(event string, payload any)

	// Unicast delivers the event to one courier if it is online; no-op
	// otherwise.
	Unicast(courierID string, event string, payload any)
}
