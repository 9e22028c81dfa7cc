//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.
// Returns error to indicate unavailability.

package affinity

import "github.com/momentics/hioload-threads/api"

func setAffinityPlatform(cpu int) error {
	return api.ErrNotSupported
}

func unsetAffinityPlatform() error {
	return api.ErrNotSupported
}
