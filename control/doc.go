// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime tunables, diagnostics, and configuration control layer for the
// hioload-threads OS-thread core.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - The worker thread priority tunable consumed by the start trampoline
//   - YAML-backed configuration file loading with hot-reload observers
//   - The process diagnostic sink and the fatal-abort path
//   - Metrics telemetry contracts, debug hooks, and probe registration
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
