package kv

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const (
	fileExt = ".json"

	// maxNameLen bounds escaped key names; longer keys are stored under hashedPrefix plus the hex SHA-256
	// of the key. QueryEscape never emits "%%", so hashed names cannot collide with escaped ones.
	maxNameLen   = 128
	hashedPrefix = "%%"
)

// File is a [Store] keeping one file per key in a directory.
//
// Each write goes to a uniquely named temp file that is renamed over the target, so a crash never leaves a
// half-written value. A batch is applied key by key: it is not atomic across keys.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile returns a [File] store rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("kv: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: create directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the root directory.
func (f *File) Dir() string { return f.dir }

func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv: read %s: %w", key, err)
	}
	return data, true, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	return f.Batch(ctx, []Op{SetOp(key, value)})
}

func (f *File) Delete(ctx context.Context, key string) error {
	return f.Batch(ctx, []Op{DeleteOp(key)})
}

func (f *File) Batch(ctx context.Context, ops []Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}

		path, err := f.path(op.Key)
		if err != nil {
			return err
		}

		if op.Delete {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("kv: delete %s: %w", op.Key, err)
			}
			continue
		}

		if err := writeFileAtomic(path, op.Value); err != nil {
			return fmt.Errorf("kv: write %s: %w", op.Key, err)
		}
	}
	return nil
}

func (f *File) Close() error { return nil }

// Path returns the file holding key.
func (f *File) Path(key string) (string, error) {
	return f.path(key)
}

// path maps key to a file name. Keys are escaped so separators like ':' and '/' are safe on every platform.
// File names stay under common filesystem limits for keys of any length.
func (f *File) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.dir, fileName(key)), nil
}

func fileName(key string) string {
	name := url.QueryEscape(key)
	if len(name) > maxNameLen {
		sum := sha256.Sum256([]byte(key))
		name = hashedPrefix + hex.EncodeToString(sum[:])
	}
	return name + fileExt
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + "." + uuid.NewString()[:8] + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
