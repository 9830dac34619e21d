// Package ws is the courier-facing session gateway: it upgrades HTTP
// requests to websocket sessions, tracks courier presence in a registry and
// routes the event wire contract to the application layer.
package ws

import "encoding/json"

// inboundEnvelope is the frame format received from clients. Data is kept
// raw until the event name selects the payload shape.
type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outboundEnvelope is the frame format sent to clients.
type outboundEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// jobActionPayload is the inbound payload of job_accepted, job_rejected and
// job_completed.
type jobActionPayload struct {
	JobID     string `json:"jobId"`
	CourierID string `json:"courierId"`
}

// initialDataPayload is the inbound payload of request_initial_data.
type initialDataPayload struct {
	CourierID string `json:"courierId"`
}

// sendMessagePayload is the inbound payload of send_message.
type sendMessagePayload struct {
	Sender  string `json:"sender"`
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}
