package cmd

import "time"

// Config carries everything the composition root needs to wire the backend.
// Values come from the environment, with defaults suitable for local runs.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JobInterval is the time between generated job offers.
	JobInterval time.Duration

	// QRDelay and ConnectDelay drive the simulated WhatsApp pairing flow.
	QRDelay      time.Duration
	ConnectDelay time.Duration
}
