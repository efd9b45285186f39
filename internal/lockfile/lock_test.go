package lockfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	pid, err := Owner(dir)
	if err != nil {
		t.Fatalf("Owner failed: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("Owner = %d, want %d", pid, os.Getpid())
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestAcquireAlreadyLockedNoTimeout(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	defer lock.Release()

	_, err = acquireInSubprocessEmulation(dir)
	if err == nil {
		t.Fatal("expected second Acquire to fail")
	}
	if !KindAlreadyLocked.Is(err) {
		t.Errorf("expected KindAlreadyLocked, got %v", err)
	}
}

func TestAcquireTimeout(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	defer lock.Release()

	timeout := 60 * time.Millisecond
	start := time.Now()
	_, err = Acquire(dir, &timeout)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !KindTimeout.Is(err) {
		t.Errorf("expected KindTimeout, got %v", err)
	}
	if elapsed < timeout {
		t.Errorf("returned before timeout elapsed: %v < %v", elapsed, timeout)
	}
}

func TestReleaseNotLocked(t *testing.T) {
	var l *Lock
	err := l.Release()
	if !KindNotLocked.Is(err) {
		t.Errorf("expected KindNotLocked, got %v", err)
	}
}

func TestReleaseNotMine(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// Simulate another process owning the lock by rewriting the PID.
	path := filepath.Join(dir, "writer.lock")
	if err := os.WriteFile(path, []byte("999999\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite lock file: %v", err)
	}

	err = lock.Release()
	if !KindNotMyLock.Is(err) {
		t.Errorf("expected KindNotMyLock, got %v", err)
	}

	// Clean up the flock regardless of the PID mismatch so TempDir removal
	// doesn't race with an open fd.
	_ = flockUnlock(lock.file)
	_ = lock.file.Close()
}

func TestIsHeldByRunningProcess(t *testing.T) {
	dir := t.TempDir()

	held, pid := IsHeldByRunningProcess(dir)
	if held {
		t.Errorf("expected not held with no lock file, got pid %d", pid)
	}

	lock, err := Acquire(dir, nil)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	held, pid = IsHeldByRunningProcess(dir)
	if !held {
		t.Error("expected held=true for our own running process")
	}
	if pid != os.Getpid() {
		t.Errorf("pid = %d, want %d", pid, os.Getpid())
	}
}

// acquireInSubprocessEmulation opens a second, independent file handle on
// the same lock path to emulate a second process contending for the
// flock, without actually forking.
func acquireInSubprocessEmulation(dir string) (*Lock, error) {
	return Acquire(dir, nil)
}
