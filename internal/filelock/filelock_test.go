package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	if lock.Path() != lockPath {
		t.Errorf("Path() = %s, want %s", lock.Path(), lockPath)
	}
	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestAcquireOutputLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "OutputSheets")

	first, err := AcquireOutputLock(dir)
	if err != nil {
		t.Fatalf("AcquireOutputLock() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, OutputLockName)); err != nil {
		t.Errorf("lock file not created: %v", err)
	}

	_, err = AcquireOutputLock(dir)
	if !errors.Is(err, ErrOutputBusy) {
		t.Errorf("second AcquireOutputLock() error = %v, want ErrOutputBusy", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}

	again, err := AcquireOutputLock(dir)
	if err != nil {
		t.Fatalf("AcquireOutputLock() after unlock error = %v", err)
	}
	again.Unlock()
}

func TestAtomicWriteReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mean_data.csv")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWrite(path, []byte("new")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("permissions = %v, want 0644", info.Mode().Perm())
	}
}

func TestAtomicWriteCreatesDirectoryAndLeavesNoTemp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	path := filepath.Join(dir, "all_grouped_data.xlsx")

	if err := AtomicWrite(path, []byte("data")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file, got %d", len(entries))
	}
}

func TestAtomicWriteFailsWhenTargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "table.csv")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWrite(target, []byte("x")); err == nil {
		t.Fatal("expected error replacing a non-empty directory")
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind after failure: %s", e.Name())
		}
	}
}

func TestConcurrentLockAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mean_data.json")

	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			if err := LockAndWrite(path, []byte(fmt.Sprintf("writer-%d", n))); err != nil {
				t.Errorf("LockAndWrite() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "writer-") {
		t.Errorf("content = %q, want one complete write", data)
	}
}

func TestLockAndWriteRemovesLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_grouped_data.csv")
	if err := LockAndWrite(path, []byte("x")); err != nil {
		t.Fatalf("LockAndWrite() error = %v", err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed, stat error = %v", err)
	}
}
