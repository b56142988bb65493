// package kv defines the key-value engines behind the flat storage backend.
package kv

import (
	"context"
	"fmt"
)

// Store is a persistent map from string keys to byte values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error) // Get returns the value and whether the key exists
	Set(ctx context.Context, key string, value []byte) error   // Set stores value under key
	Delete(ctx context.Context, key string) error              // Delete removes key; a missing key is not an error
	Batch(ctx context.Context, ops []Op) error                 // Batch applies ops in order
	Close() error                                              // Close releases the engine
}

// Op is a single write in a [Store.Batch]. Delete takes precedence over Value.
type Op struct {
	Key    string
	Value  []byte
	Delete bool
}

// SetOp returns an [Op] storing value under key.
func SetOp(key string, value []byte) Op {
	return Op{Key: key, Value: value}
}

// DeleteOp returns an [Op] removing key.
func DeleteOp(key string) Op {
	return Op{Key: key, Delete: true}
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("kv: empty key")
	}
	return nil
}
