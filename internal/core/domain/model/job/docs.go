// Package job contains the Job aggregate: a delivery task offered to
// connected couriers, exclusively claimable by one of them, with a strictly
// forward lifecycle (new -> on_delivery -> completed, cancelled reserved).
package job
