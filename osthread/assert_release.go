//go:build release
// +build release

// File: osthread/assert_release.go
// Author: momentics <momentics@gmail.com>

package osthread

const debugChecks = false
