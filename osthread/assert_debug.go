//go:build !release
// +build !release

// File: osthread/assert_debug.go
// Author: momentics <momentics@gmail.com>

package osthread

const debugChecks = true
