// Package kernel contains shared value objects used across domain aggregates.
// Value objects here are immutable, validated at construction, and guarded
// against zero-value instantiation.
package kernel
