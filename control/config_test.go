// File: control/config_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigStoreSnapshotIsolation(t *testing.T) {
	cs := NewConfigStore()
	cs.Set("alpha", 1)

	snap := cs.GetSnapshot()
	snap["alpha"] = 99

	v, ok := cs.Get("alpha")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestConfigStoreReloadListeners(t *testing.T) {
	cs := NewConfigStore()
	fired := 0
	cs.OnReload(func() { fired++ })

	cs.Set("k", "v")
	cs.SetConfig(map[string]any{"a": 1, "b": 2})
	require.Equal(t, 2, fired, "one listener call per update batch")
}

func TestGetIntCoercions(t *testing.T) {
	cs := NewConfigStore()
	cs.Set("i", 7)
	cs.Set("i64", int64(8))
	cs.Set("s", "not a number")

	require.Equal(t, 7, cs.GetInt("i", -1))
	require.Equal(t, 8, cs.GetInt("i64", -1))
	require.Equal(t, -1, cs.GetInt("s", -1))
	require.Equal(t, -1, cs.GetInt("missing", -1))
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threads.yaml")
	require.NoError(t, os.WriteFile(path, []byte("worker_thread_priority: 5\nmax_concurrent_threads: 16\n"), 0o600))

	cs := NewConfigStore()
	require.NoError(t, cs.LoadFile(path))
	require.Equal(t, 5, cs.GetInt(KeyWorkerThreadPriority, UnsetThreadPriority))
	require.Equal(t, 16, cs.GetInt(KeyMaxConcurrentThreads, 0))

	require.Error(t, cs.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, cs.LoadYAML([]byte(":\nnot yaml")))
}

func TestLoadYAMLFiresReloadHooks(t *testing.T) {
	fired := 0
	RegisterReloadHook(func() { fired++ })

	cs := NewConfigStore()
	require.NoError(t, cs.LoadYAML([]byte("k: v\n")))
	require.Equal(t, 1, fired, "successful load fires the process reload hooks once")

	require.Error(t, cs.LoadYAML([]byte(":\nnot yaml")))
	require.Equal(t, 1, fired, "a failed parse must not fire hooks")
}

func TestWorkerThreadPriorityTunable(t *testing.T) {
	require.Equal(t, UnsetThreadPriority, WorkerThreadPriority(), "priority defaults to the unset sentinel")

	SetWorkerThreadPriority(3)
	require.Equal(t, 3, WorkerThreadPriority())

	SetWorkerThreadPriority(UnsetThreadPriority)
	require.Equal(t, UnsetThreadPriority, WorkerThreadPriority())
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("test.answer", func() any { return 42 })

	state := dp.DumpState()
	require.Equal(t, 42, state["test.answer"])
	require.Contains(t, state, "control.worker_thread_priority")
	require.Contains(t, state, "platform.cpus")
}
