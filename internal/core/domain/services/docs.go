// Package services contains stateless domain services that operate across
// aggregates or encapsulate domain policies, such as the randomized job
// generation policy.
package services
