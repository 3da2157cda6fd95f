// Package service manages the lifecycle of the host's long-lived subsystems
package service

// Service defines the lifecycle interface for host subsystems
// Services own goroutines and sockets outside the frame loop: the websocket stream, the metrics reporter
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration from parsed flags/env
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init and Start before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation; called after all services have initialized
	Start() error

	// Stop halts service operation; must be idempotent
	Stop() error
}
