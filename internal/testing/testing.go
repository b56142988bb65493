// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/foodcodex/internal/kv"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FailingKV is a [kv.Store] whose reads succeed against an in-memory map and whose writes fail with Err.
//
// Set FailReads to make Get fail as well.
type FailingKV struct {
	*kv.Memory
	Err       error
	FailReads bool
}

// NewFailingKV returns a [FailingKV] that fails writes with err.
func NewFailingKV(err error) *FailingKV {
	if err == nil {
		err = errors.New("kv write failed")
	}
	return &FailingKV{Memory: kv.NewMemory(), Err: err}
}

func (f *FailingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.FailReads {
		return nil, false, f.Err
	}
	return f.Memory.Get(ctx, key)
}

func (f *FailingKV) Set(ctx context.Context, key string, value []byte) error { return f.Err }
func (f *FailingKV) Delete(ctx context.Context, key string) error            { return f.Err }
func (f *FailingKV) Batch(ctx context.Context, ops []kv.Op) error            { return f.Err }

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
